package corehandler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"paiefacile/internal/domain/core"
	"paiefacile/internal/transport/http/api"
	"paiefacile/internal/transport/http/shared"
)

type Handler struct {
	Store *core.Store
}

func NewHandler(store *core.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Put("/{employeeID}", h.handleUpdateEmployee)
		r.Delete("/{employeeID}", h.handleDeleteEmployee)
	})
	r.Route("/company", func(r chi.Router) {
		r.Get("/", h.handleGetCompany)
		r.Post("/", h.handleUpsertCompany)
	})
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		log.Printf("list employees failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Failed to fetch employees")
		return
	}
	api.JSON(w, employees)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload core.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// The client posts a placeholder when it wants a server-assigned code.
	if payload.Code == "" || payload.Code == core.CodePlaceholder {
		code, err := h.Store.NextCode(r.Context(), core.EntityEmployee)
		if err != nil {
			log.Printf("employee code generation failed: %v", err)
			api.Error(w, http.StatusInternalServerError, "Failed to create employee")
			return
		}
		payload.Code = code
	}
	if payload.Nationalite == "" {
		payload.Nationalite = "tunisienne"
	}
	if payload.IDType == "" {
		payload.IDType = "CIN"
	}
	if _, err := shared.ParseDate(payload.DateEmbauche); err != nil {
		api.Error(w, http.StatusBadRequest, "date_embauche must be a valid date")
		return
	}

	emp, err := h.Store.CreateEmployee(r.Context(), payload)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			api.Error(w, http.StatusConflict, "Un employé avec ce code ou ce CIN existe déjà")
			return
		}
		log.Printf("create employee failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Failed to create employee")
		return
	}
	api.JSON(w, emp)
}

// employeePayload distinguishes absent fields from empty ones so a
// partial update only touches the keys the client actually sent.
type employeePayload struct {
	Code         *string `json:"code"`
	Nom          *string `json:"nom"`
	Prenom       *string `json:"prenom"`
	CIN          *string `json:"cin"`
	TypeContrat  *string `json:"type_contrat"`
	Service      *string `json:"service"`
	Poste        *string `json:"poste"`
	Nationalite  *string `json:"nationalite"`
	DateEmbauche *string `json:"date_embauche"`
	IDType       *string `json:"id_type"`
	IDDate       *string `json:"id_date"`
	IDPlace      *string `json:"id_place"`
}

func (p employeePayload) applyTo(emp *core.Employee) {
	setIfPresent(p.Code, &emp.Code)
	setIfPresent(p.Nom, &emp.Nom)
	setIfPresent(p.Prenom, &emp.Prenom)
	setIfPresent(p.CIN, &emp.CIN)
	setIfPresent(p.TypeContrat, &emp.TypeContrat)
	setIfPresent(p.Service, &emp.Service)
	setIfPresent(p.Poste, &emp.Poste)
	setIfPresent(p.Nationalite, &emp.Nationalite)
	setIfPresent(p.DateEmbauche, &emp.DateEmbauche)
	setIfPresent(p.IDType, &emp.IDType)
	setIfPresent(p.IDDate, &emp.IDDate)
	setIfPresent(p.IDPlace, &emp.IDPlace)
}

func setIfPresent(src *string, dst *string) {
	if src != nil {
		*dst = *src
	}
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if payload.DateEmbauche != nil {
		if _, err := shared.ParseDate(*payload.DateEmbauche); err != nil {
			api.Error(w, http.StatusBadRequest, "date_embauche must be a valid date")
			return
		}
	}

	// Partial update: fetch the stored row and overlay only the fields
	// the payload carries, then write the merged row back.
	existing, err := h.Store.GetEmployee(r.Context(), employeeID)
	if errors.Is(err, core.ErrEmployeeNotFound) {
		api.Error(w, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		log.Printf("fetch employee for update failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	merged := *existing
	payload.applyTo(&merged)

	emp, err := h.Store.UpdateEmployee(r.Context(), employeeID, merged)
	if errors.Is(err, core.ErrEmployeeNotFound) {
		api.Error(w, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		log.Printf("update employee failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Failed to update employee")
		return
	}
	api.JSON(w, emp)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if err := h.Store.DeleteEmployee(r.Context(), employeeID); err != nil {
		log.Printf("delete employee failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Failed to delete employee")
		return
	}
	api.JSON(w, map[string]string{"message": "Employee deleted"})
}

func (h *Handler) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := h.Store.GetCompany(r.Context())
	if errors.Is(err, core.ErrCompanyNotFound) {
		// The client treats "no company yet" as null, not an error.
		api.JSON(w, nil)
		return
	}
	if err != nil {
		log.Printf("get company failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Failed to fetch company")
		return
	}
	api.JSON(w, company)
}

type companyPayload struct {
	Nom             *string `json:"nom"`
	Adresse         *string `json:"adresse"`
	Ville           *string `json:"ville"`
	LogoURL         *string `json:"logo_url"`
	CNSSEmployeur   *string `json:"cnss_employeur"`
	RIB             *string `json:"rib"`
	MatriculeFiscal *string `json:"matricule_fiscal"`
	Banque          *string `json:"banque"`
	CCB             *string `json:"ccb"`
	Capital         *string `json:"capital"`
	Telephone       *string `json:"telephone"`
}

func (p companyPayload) applyTo(c *core.Company) {
	setIfPresent(p.Nom, &c.Nom)
	setIfPresent(p.Adresse, &c.Adresse)
	setIfPresent(p.Ville, &c.Ville)
	setIfPresent(p.LogoURL, &c.LogoURL)
	setIfPresent(p.CNSSEmployeur, &c.CNSSEmployeur)
	setIfPresent(p.RIB, &c.RIB)
	setIfPresent(p.MatriculeFiscal, &c.MatriculeFiscal)
	setIfPresent(p.Banque, &c.Banque)
	setIfPresent(p.CCB, &c.CCB)
	setIfPresent(p.Capital, &c.Capital)
	setIfPresent(p.Telephone, &c.Telephone)
}

func (h *Handler) handleUpsertCompany(w http.ResponseWriter, r *http.Request) {
	var payload companyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// Saving settings merges into the existing profile; fields the
	// client did not send keep their stored values.
	var merged core.Company
	existing, err := h.Store.GetCompany(r.Context())
	if err != nil && !errors.Is(err, core.ErrCompanyNotFound) {
		log.Printf("fetch company for save failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Failed to save company settings")
		return
	}
	if existing != nil {
		merged = *existing
	}
	payload.applyTo(&merged)

	company, err := h.Store.UpsertCompany(r.Context(), merged)
	if err != nil {
		log.Printf("upsert company failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Failed to save company settings")
		return
	}
	api.JSON(w, company)
}
