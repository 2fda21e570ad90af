package payrollhandler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"paiefacile/internal/domain/payroll"
	"paiefacile/internal/transport/http/api"
	"paiefacile/internal/transport/http/shared"
)

type Handler struct {
	Store *payroll.Store
}

func NewHandler(store *payroll.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/salaries", func(r chi.Router) {
		r.Get("/", h.handleListSalaries)
		r.Post("/", h.handleCreateSalary)
		r.Put("/{salaryID}", h.handleUpdateSalary)
		r.Delete("/{salaryID}", h.handleDeleteSalary)
	})
}

// salaryPayload tolerates numbers arriving as JSON numbers or strings;
// the form client is not strict about it.
type salaryPayload struct {
	EmployeeID string `json:"employee_id"`
	Year       any    `json:"year"`
	Month      any    `json:"month"`
	Salaire    any    `json:"salaire"`
	Prime      any    `json:"prime"`
	Absence    any    `json:"absence"`
	Avance     any    `json:"avance"`
	DateAvance string `json:"date_avance"`
}

func (h *Handler) handleListSalaries(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))

	salaries, err := h.Store.ListSalaries(r.Context(), year, month)
	if err != nil {
		log.Printf("list salaries failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Failed to fetch salaries")
		return
	}
	api.JSON(w, salaries)
}

func (h *Handler) handleCreateSalary(w http.ResponseWriter, r *http.Request) {
	var payload salaryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	year, yearOK := shared.CoerceInt(payload.Year)
	month, monthOK := shared.CoerceInt(payload.Month)
	salaire, salaireOK := shared.CoerceFloat(payload.Salaire)
	if payload.EmployeeID == "" || !yearOK || !monthOK || !salaireOK {
		api.Error(w, http.StatusBadRequest, "employee_id, year, month and salaire are required")
		return
	}

	sal := payroll.Salary{
		EmployeeID: payload.EmployeeID,
		Year:       year,
		Month:      month,
		Salaire:    salaire,
		DateAvance: payload.DateAvance,
	}
	sal.Prime, _ = shared.CoerceFloat(payload.Prime)
	sal.Absence, _ = shared.CoerceInt(payload.Absence)
	sal.Avance, _ = shared.CoerceFloat(payload.Avance)

	created, err := h.Store.CreateSalary(r.Context(), sal)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			api.Error(w, http.StatusConflict, "Un salaire existe déjà pour cet employé ce mois-ci")
			return
		}
		log.Printf("create salary failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Failed to create salary")
		return
	}
	api.JSON(w, created)
}

func (h *Handler) handleUpdateSalary(w http.ResponseWriter, r *http.Request) {
	salaryID := chi.URLParam(r, "salaryID")

	var payload salaryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// Partial update: start from the stored row and overlay whatever
	// fields the payload actually carries.
	existing, err := h.Store.GetSalary(r.Context(), salaryID)
	if errors.Is(err, payroll.ErrSalaryNotFound) {
		api.Error(w, http.StatusNotFound, "Salary not found")
		return
	}
	if err != nil {
		log.Printf("fetch salary for update failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Failed to update salary")
		return
	}

	sal := *existing
	if payload.EmployeeID != "" {
		sal.EmployeeID = payload.EmployeeID
	}
	if year, ok := shared.CoerceInt(payload.Year); ok {
		sal.Year = year
	}
	if month, ok := shared.CoerceInt(payload.Month); ok {
		sal.Month = month
	}
	if salaire, ok := shared.CoerceFloat(payload.Salaire); ok {
		sal.Salaire = salaire
	}
	if prime, ok := shared.CoerceFloat(payload.Prime); ok {
		sal.Prime = prime
	}
	if absence, ok := shared.CoerceInt(payload.Absence); ok {
		sal.Absence = absence
	}
	if avance, ok := shared.CoerceFloat(payload.Avance); ok {
		sal.Avance = avance
	}
	if payload.DateAvance != "" {
		sal.DateAvance = payload.DateAvance
	}

	updated, err := h.Store.UpdateSalary(r.Context(), salaryID, sal)
	if errors.Is(err, payroll.ErrSalaryNotFound) {
		api.Error(w, http.StatusNotFound, "Salary not found")
		return
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			api.Error(w, http.StatusConflict, "Un salaire existe déjà pour cet employé ce mois-ci")
			return
		}
		log.Printf("update salary failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Failed to update salary")
		return
	}
	api.JSON(w, updated)
}

func (h *Handler) handleDeleteSalary(w http.ResponseWriter, r *http.Request) {
	salaryID := chi.URLParam(r, "salaryID")
	if err := h.Store.DeleteSalary(r.Context(), salaryID); err != nil {
		log.Printf("delete salary failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Failed to delete salary")
		return
	}
	api.JSON(w, map[string]string{"message": "Salary deleted"})
}
