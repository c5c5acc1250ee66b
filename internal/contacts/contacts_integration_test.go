package contacts_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ContactDesk/CD-Backend/internal/auth"
	"github.com/ContactDesk/CD-Backend/internal/contacts"
	"github.com/ContactDesk/CD-Backend/internal/db"
	"github.com/ContactDesk/CD-Backend/internal/profile"
	"github.com/ContactDesk/CD-Backend/internal/views"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var dbAvailable bool
var testServer *httptest.Server

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env.local")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		os.Exit(m.Run())
	}

	db.Connect(databaseURL)
	dbAvailable = true

	if err := views.Init(); err != nil {
		panic(err)
	}
	auth.Init(0)
	profile.Init()
	contacts.Init()

	r := chi.NewRouter()
	auth.RegisterRoutes(r)
	contacts.RegisterRoutes(r, time.Hour)

	testServer = httptest.NewServer(r)
	defer testServer.Close()

	os.Exit(m.Run())
}

func createUser(t *testing.T, fname, lname string) auth.User {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	username := fmt.Sprintf("contuser_%s", uuid.New().String()[:8])
	hashed, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}

	user := auth.User{
		UserID:         uuid.New().String(),
		Username:       username,
		HashedPassword: string(hashed),
		FName:          fname,
		LName:          lname,
		Email:          username,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	t.Cleanup(func() {
		var conts []contacts.Contact
		db.DB.Where("user_id = ?", user.UserID).Find(&conts)
		for _, c := range conts {
			db.DB.Where("contact_id = ?", c.ID).Delete(&profile.Address{})
			db.DB.Where("contact_id = ?", c.ID).Delete(&profile.Phone{})
		}
		db.DB.Where("user_id = ?", user.UserID).Delete(&contacts.Contact{})
		db.DB.Where("user_id = ?", user.UserID).Delete(&auth.Session{})
		db.DB.Where("user_id = ?", user.UserID).Delete(&auth.User{})
	})

	return user
}

func loginAs(t *testing.T, user auth.User) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New: %v", err)
	}
	client := &http.Client{Jar: jar}

	body := readBody(t, postJSON(t, client, "/login", map[string]string{
		"user": user.Username, "pass": "TestPass123!",
	}))
	if !strings.Contains(body, "Login Successful") {
		t.Fatalf("login failed: %s", body)
	}
	return client
}

func postJSON(t *testing.T, client *http.Client, path string, payload any) *http.Response {
	t.Helper()
	body, _ := json.Marshal(payload)
	resp, err := client.Post(testServer.URL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func TestAddContactAndList(t *testing.T) {
	user := createUser(t, "Owner", "One")
	client := loginAs(t, user)

	body := readBody(t, postJSON(t, client, "/cont_addcontacts", map[string]string{
		"fname": "Clara", "lname": "Vance", "bio": "Prefers email",
	}))
	if !strings.Contains(body, `"status":"OK"`) {
		t.Fatalf("add contact failed: %s", body)
	}

	resp := postJSON(t, client, "/contacts", nil)
	listBody := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("contacts page failed: %d %s", resp.StatusCode, listBody)
	}

	var page struct {
		Script string `json:"script"`
		Style  string `json:"style"`
		Layout string `json:"layout"`
	}
	if err := json.Unmarshal([]byte(listBody), &page); err != nil {
		t.Fatalf("invalid contacts JSON: %s", listBody)
	}
	if page.Script != "contacts.js" || page.Style != "contacts.css" {
		t.Errorf("unexpected assets: %+v", page)
	}
	if !strings.Contains(page.Layout, "Clara Vance") {
		t.Errorf("expected contact in rendered list, got: %s", page.Layout)
	}
}

// TestContactListIsPerOwner verifies one user's contacts never leak into
// another user's list.
func TestContactListIsPerOwner(t *testing.T) {
	userA := createUser(t, "Owner", "A")
	userB := createUser(t, "Owner", "B")
	clientA := loginAs(t, userA)
	clientB := loginAs(t, userB)

	readBody(t, postJSON(t, clientA, "/cont_addcontacts", map[string]string{
		"fname": "OnlyFor", "lname": "OwnerA", "bio": "",
	}))

	listBody := readBody(t, postJSON(t, clientB, "/contacts", nil))
	if strings.Contains(listBody, "OnlyFor OwnerA") {
		t.Error("another user's contact appeared in the list")
	}
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	marker := uuid.New().String()[:6]
	target := createUser(t, "ZqAli"+marker, "Match")
	control := createUser(t, "ZqBob"+marker, "Control")

	keyword := strings.ToLower("zqali" + marker)
	resp := postJSON(t, http.DefaultClient, "/cont_sendKeyword", map[string]string{"keyword": keyword})
	body := readBody(t, resp)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search failed: %d %s", resp.StatusCode, body)
	}

	var results []struct {
		User struct {
			ID    string `json:"id"`
			FName string `json:"fname"`
			LName string `json:"lname"`
		} `json:"user"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal([]byte(body), &results); err != nil {
		t.Fatalf("invalid search JSON: %s", body)
	}

	foundTarget := false
	for _, res := range results {
		if res.User.ID == control.UserID {
			t.Error("control user matched despite not containing the keyword")
		}
		if res.User.ID == target.UserID {
			foundTarget = true
			if res.Name != target.FName+" "+target.LName {
				t.Errorf("unexpected display name %q", res.Name)
			}
			if res.Email != target.Email {
				t.Errorf("unexpected email %q", res.Email)
			}
		}
		haystack := strings.ToLower(res.Name + " " + res.Email)
		if !strings.Contains(haystack, keyword) {
			t.Errorf("result %q %q does not contain keyword %q", res.Name, res.Email, keyword)
		}
	}
	if !foundTarget {
		t.Error("expected the uppercase-named user to match a lowercase keyword")
	}
}

// TestContactSubRecordsRequireOwnership verifies the contact address/phone
// routes act on the session user and refuse contacts owned by someone else.
func TestContactSubRecordsRequireOwnership(t *testing.T) {
	owner := createUser(t, "Real", "Owner")
	intruder := createUser(t, "Not", "Owner")
	ownerClient := loginAs(t, owner)
	intruderClient := loginAs(t, intruder)

	cont := contacts.Contact{UserID: owner.UserID, FName: "Held", LName: "Contact"}
	if err := db.DB.Create(&cont).Error; err != nil {
		t.Fatalf("failed to create contact: %v", err)
	}

	// Someone else's session cannot attach records to it.
	body := readBody(t, postJSON(t, intruderClient, "/cont_addaddress", map[string]any{
		"cont_id": cont.ID, "address": "999 Stolen Ave",
	}))
	if !strings.Contains(body, `"status":"NOK"`) {
		t.Fatalf("expected NOK for foreign contact, got: %s", body)
	}

	var count int64
	db.DB.Model(&profile.Address{}).Where("contact_id = ?", cont.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected no address rows after rejected insert, got %d", count)
	}

	// The owner can.
	body = readBody(t, postJSON(t, ownerClient, "/cont_addaddress", map[string]any{
		"cont_id": cont.ID, "address": "1 Legit Way",
	}))
	if !strings.Contains(body, `"status":"OK"`) {
		t.Fatalf("expected OK for owned contact, got: %s", body)
	}

	db.DB.Model(&profile.Address{}).Where("contact_id = ?", cont.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one address row, got %d", count)
	}

	body = readBody(t, postJSON(t, ownerClient, "/cont_addphone", map[string]any{
		"cont_id": cont.ID, "phone": "604-555-0199", "type": "home",
	}))
	if !strings.Contains(body, `"status":"OK"`) {
		t.Fatalf("expected OK for owned contact phone, got: %s", body)
	}
}

func TestAddContactWithAccount(t *testing.T) {
	owner := createUser(t, "Linker", "User")
	account := createUser(t, "Linked", "Account")
	client := loginAs(t, owner)

	body := readBody(t, postJSON(t, client, "/cont_addcontactswithaccount", map[string]any{
		"cont_info": map[string]string{
			"id":    account.UserID,
			"fname": account.FName,
			"lname": account.LName,
		},
	}))
	if !strings.Contains(body, `"status":"OK"`) {
		t.Fatalf("expected OK envelope, got: %s", body)
	}

	var cont contacts.Contact
	if err := db.DB.First(&cont, "user_id = ? AND fname = ?", owner.UserID, account.FName).Error; err != nil {
		t.Fatalf("linked contact not found: %v", err)
	}
	if cont.AccountID == nil || *cont.AccountID != account.UserID {
		t.Errorf("expected account link to %q, got %v", account.UserID, cont.AccountID)
	}
}

func TestAddContactWithAccountMissingRef(t *testing.T) {
	owner := createUser(t, "NoRef", "User")
	client := loginAs(t, owner)

	body := readBody(t, postJSON(t, client, "/cont_addcontactswithaccount", map[string]any{
		"cont_info": map[string]string{"fname": "Ghost"},
	}))
	if !strings.Contains(body, `"status":"NOK"`) {
		t.Errorf("expected NOK when the account reference is missing, got: %s", body)
	}
}
