package corehandler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"paiefacile/internal/domain/core"
)

func TestEmployeePayloadAppliesOnlyPresentFields(t *testing.T) {
	existing := core.Employee{
		Code:         "EMP-001",
		Nom:          "Ben Salah",
		Prenom:       "Amine",
		CIN:          "09812345",
		TypeContrat:  core.ContractCDI,
		Service:      "Finance",
		Poste:        "Comptable",
		Nationalite:  "tunisienne",
		DateEmbauche: "2022-03-01",
		IDType:       "CIN",
	}

	service := "IT"
	payload := employeePayload{Service: &service}

	merged := existing
	payload.applyTo(&merged)

	if merged.Service != "IT" {
		t.Fatalf("expected service updated, got %q", merged.Service)
	}
	if merged.Nom != "Ben Salah" || merged.Prenom != "Amine" || merged.CIN != "09812345" {
		t.Fatal("expected untouched identity fields to keep their values")
	}
	if merged.Code != "EMP-001" {
		t.Fatalf("expected code preserved, got %q", merged.Code)
	}
	if merged.DateEmbauche != "2022-03-01" || merged.TypeContrat != core.ContractCDI {
		t.Fatal("expected untouched contract fields to keep their values")
	}
}

func TestEmployeePayloadExplicitEmptyClearsField(t *testing.T) {
	existing := core.Employee{Service: "Finance"}

	empty := ""
	payload := employeePayload{Service: &empty}

	merged := existing
	payload.applyTo(&merged)

	if merged.Service != "" {
		t.Fatalf("an explicit empty value must clear the field, got %q", merged.Service)
	}
}

func TestCompanyPayloadAppliesOnlyPresentFields(t *testing.T) {
	existing := core.Company{
		Nom:           "PaieFacile SARL",
		Adresse:       "12 Rue de Carthage",
		Ville:         "Tunis",
		LogoURL:       "http://localhost:3000/uploads/logo.png",
		CNSSEmployeur: "123456-78",
		RIB:           "08 006 0123456789 72",
	}

	nom := "PaieFacile SARL (modifiée)"
	payload := companyPayload{Nom: &nom}

	merged := existing
	payload.applyTo(&merged)

	if merged.Nom != nom {
		t.Fatalf("expected nom updated, got %q", merged.Nom)
	}
	if merged.Adresse != "12 Rue de Carthage" || merged.LogoURL != "http://localhost:3000/uploads/logo.png" {
		t.Fatal("expected unsent fields to keep their stored values")
	}
	if merged.CNSSEmployeur != "123456-78" || merged.RIB != "08 006 0123456789 72" {
		t.Fatal("expected registration fields to keep their stored values")
	}
}

func TestUpdateEmployeeRejectsBadHireDate(t *testing.T) {
	h := NewHandler(nil)

	req := httptest.NewRequest(http.MethodPut, "/employees/some-id",
		strings.NewReader(`{"date_embauche":"pas une date"}`))
	rec := httptest.NewRecorder()
	h.handleUpdateEmployee(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unparseable hire date, got %d", rec.Code)
	}
}

func TestCreateEmployeeRejectsBadHireDate(t *testing.T) {
	h := NewHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/employees",
		strings.NewReader(`{"code":"EMP-009","nom":"X","prenom":"Y","cin":"1","type_contrat":"CDI","poste":"Dev","date_embauche":"31/02/2024"}`))
	rec := httptest.NewRecorder()
	h.handleCreateEmployee(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unparseable hire date, got %d", rec.Code)
	}
}
