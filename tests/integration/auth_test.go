package integration

import (
	"net/http"
	"testing"
)

func TestAuth_RegisterLoginProfile(t *testing.T) {
	app := setupApp(t)

	// Register
	rec := app.request("POST", "/api/v1/auth/register",
		`{"username":"alice","email":"alice@test.com","password":"password123","about_me":"I plan things"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["token"] == nil || result["token"] == "" {
		t.Fatal("expected a token in the register response")
	}

	// Login
	rec = app.request("POST", "/api/v1/auth/login",
		`{"email":"alice@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	token := parseJSON(t, rec)["token"].(string)

	// Profile
	rec = app.request("GET", "/api/v1/profile", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	if user["username"] != "alice" {
		t.Errorf("expected username alice, got %v", user["username"])
	}
	if user["about_me"] != "I plan things" {
		t.Errorf("expected about_me to round-trip, got %v", user["about_me"])
	}
}

func TestAuth_RejectsBadCredentials(t *testing.T) {
	app := setupApp(t)
	app.registerUser(t, "bob", "bob@test.com")

	rec := app.request("POST", "/api/v1/auth/login",
		`{"email":"bob@test.com","password":"wrongpassword"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuth_RejectsDuplicateEmail(t *testing.T) {
	app := setupApp(t)
	app.registerUser(t, "carol", "carol@test.com")

	rec := app.request("POST", "/api/v1/auth/register",
		`{"username":"carol2","email":"carol@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuth_ProtectedRoutesRequireToken(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/profile", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/groups", "", "garbage-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a bad token, got %d", rec.Code)
	}
}
