package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"paiefacile/internal/app/server"
	"paiefacile/internal/platform/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	// Tests run from the package directory; migrations live at the
	// repository root.
	_, thisFile, _, _ := runtime.Caller(0)
	repoRoot := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "..")

	return config.Config{
		DatabaseURL:       dbURL,
		JWTSecret:         "test-secret",
		Environment:       "test",
		UploadsDir:        t.TempDir(),
		MigrationsDir:     filepath.Join(repoRoot, "migrations"),
		SeedAdminEmail:    "admin@paiefacile.com",
		SeedAdminPassword: "admin123",
		RunMigrations:     true,
		RunSeed:           true,
		MaxBodyBytes:      1048576,
	}
}

func postJSON(t *testing.T, client *http.Client, url, token string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestPayrollJourney(t *testing.T) {
	cfg := testConfig(t)

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	client := ts.Client()

	// Login with the seeded admin account.
	resp := postJSON(t, client, ts.URL+"/api/login", "", map[string]string{
		"email":    cfg.SeedAdminEmail,
		"password": cfg.SeedAdminPassword,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	var loginResp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	decodeBody(t, resp, &loginResp)
	if loginResp.Token == "" {
		t.Fatal("login: expected a token")
	}
	if loginResp.User.Email != cfg.SeedAdminEmail {
		t.Fatalf("login: expected user email %s, got %s", cfg.SeedAdminEmail, loginResp.User.Email)
	}

	// A placeholder code must be replaced by a generated sequential one.
	cin := fmt.Sprintf("%d", time.Now().UnixNano()%100000000)
	resp = postJSON(t, client, ts.URL+"/api/employees", loginResp.Token, map[string]any{
		"code":          "TEMP",
		"nom":           "Ben Salah",
		"prenom":        "Amira",
		"cin":           cin,
		"type_contrat":  "CDI",
		"poste":         "Comptable",
		"date_embauche": "2023-02-01",
	})
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		t.Fatalf("create employee: unexpected status %d", resp.StatusCode)
	}
	var employee struct {
		ID   string `json:"id"`
		Code string `json:"code"`
	}
	decodeBody(t, resp, &employee)
	if !strings.HasPrefix(employee.Code, "EMP-") {
		t.Fatalf("expected generated employee code, got %q", employee.Code)
	}

	// A partial update must leave the unsent fields untouched.
	putReq, err := http.NewRequest(http.MethodPut, ts.URL+"/api/employees/"+employee.ID,
		strings.NewReader(`{"service":"IT"}`))
	if err != nil {
		t.Fatalf("build update request: %v", err)
	}
	putReq.Header.Set("Content-Type", "application/json")
	putReq.Header.Set("Authorization", "Bearer "+loginResp.Token)
	putResp, err := client.Do(putReq)
	if err != nil {
		t.Fatalf("PUT employee: %v", err)
	}
	if putResp.StatusCode != http.StatusOK {
		t.Fatalf("PUT employee: expected 200, got %d", putResp.StatusCode)
	}
	var updatedEmp struct {
		Code    string `json:"code"`
		Nom     string `json:"nom"`
		CIN     string `json:"cin"`
		Service string `json:"service"`
	}
	decodeBody(t, putResp, &updatedEmp)
	if updatedEmp.Service != "IT" {
		t.Fatalf("expected service updated, got %q", updatedEmp.Service)
	}
	if updatedEmp.Nom != "Ben Salah" || updatedEmp.CIN != cin || updatedEmp.Code != employee.Code {
		t.Fatalf("partial update must not blank other fields, got %+v", updatedEmp)
	}

	// First salary for a month succeeds, the second conflicts.
	salaryPayload := map[string]any{
		"employee_id": employee.ID,
		"year":        2024,
		"month":       4,
		"salaire":     900,
		"prime":       50,
		"absence":     2,
	}
	resp = postJSON(t, client, ts.URL+"/api/salaries", loginResp.Token, salaryPayload)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		t.Fatalf("create salary: unexpected status %d", resp.StatusCode)
	}
	var salary struct {
		ID       string `json:"id"`
		Employee *struct {
			Code string `json:"code"`
		} `json:"employee"`
	}
	decodeBody(t, resp, &salary)
	if salary.Employee == nil || salary.Employee.Code != employee.Code {
		t.Fatal("expected salary response to embed its employee")
	}

	resp = postJSON(t, client, ts.URL+"/api/salaries", loginResp.Token, salaryPayload)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate salary: expected 409, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// The payslip endpoint must answer with a PDF attachment.
	resp = postJSON(t, client, ts.URL+"/api/generate-payslip", loginResp.Token, map[string]string{
		"salaryId": salary.ID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("generate payslip: expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("generate payslip: expected application/pdf, got %q", ct)
	}
	pdf, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read payslip: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("generate payslip: response is not a PDF document")
	}

	// Deletes are idempotent: a second delete of the same resource is a 200.
	for _, target := range []string{
		ts.URL + "/api/salaries/" + salary.ID,
		ts.URL + "/api/salaries/" + salary.ID,
		ts.URL + "/api/employees/" + employee.ID,
	} {
		req, err := http.NewRequest(http.MethodDelete, target, nil)
		if err != nil {
			t.Fatalf("build delete request: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+loginResp.Token)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("DELETE %s: %v", target, err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("DELETE %s: expected 200, got %d", target, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestCompanyProfileJourney(t *testing.T) {
	cfg := testConfig(t)

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	client := ts.Client()

	resp := postJSON(t, client, ts.URL+"/api/company", "", map[string]string{
		"nom":              "PaieFacile Test SARL",
		"adresse":          "12 rue de Carthage",
		"ville":            "Tunis",
		"matricule_fiscal": "1234567/A/M/000",
		"cnss_employeur":   "987654",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save company: expected 200, got %d", resp.StatusCode)
	}
	var saved struct {
		ID  string `json:"id"`
		Nom string `json:"nom"`
	}
	decodeBody(t, resp, &saved)
	if saved.Nom != "PaieFacile Test SARL" {
		t.Fatalf("save company: unexpected name %q", saved.Nom)
	}

	// A second save updates the single profile row instead of adding one.
	resp = postJSON(t, client, ts.URL+"/api/company", "", map[string]string{
		"nom": "PaieFacile Test SARL (modifiée)",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update company: expected 200, got %d", resp.StatusCode)
	}
	var updated struct {
		ID      string `json:"id"`
		Nom     string `json:"nom"`
		Adresse string `json:"adresse"`
		Ville   string `json:"ville"`
	}
	decodeBody(t, resp, &updated)
	if updated.ID != saved.ID {
		t.Fatalf("expected company profile to stay a single row, got ids %s and %s", saved.ID, updated.ID)
	}
	if updated.Adresse != "12 rue de Carthage" || updated.Ville != "Tunis" {
		t.Fatalf("partial save must keep unsent profile fields, got %+v", updated)
	}

	getResp, err := client.Get(ts.URL + "/api/company")
	if err != nil {
		t.Fatalf("GET company: %v", err)
	}
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("GET company: expected 200, got %d", getResp.StatusCode)
	}
	var fetched struct {
		Nom string `json:"nom"`
	}
	decodeBody(t, getResp, &fetched)
	if fetched.Nom != "PaieFacile Test SARL (modifiée)" {
		t.Fatalf("GET company: unexpected name %q", fetched.Nom)
	}
}
