package documentshandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"paiefacile/internal/domain/core"
	"paiefacile/internal/domain/documents"
	"paiefacile/internal/domain/payroll"
	"paiefacile/internal/transport/http/api"
)

type Handler struct {
	CoreStore    *core.Store
	PayrollStore *payroll.Store
	UploadsDir   string
}

func NewHandler(coreStore *core.Store, payrollStore *payroll.Store, uploadsDir string) *Handler {
	return &Handler{CoreStore: coreStore, PayrollStore: payrollStore, UploadsDir: uploadsDir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/generate-payslip", h.handleGeneratePayslip)
	r.Post("/generate-work-certificate", h.handleGenerateWorkCertificate)
	r.Post("/generate-internship-certificate", h.handleGenerateInternshipCertificate)
}

// company is optional on every document; a missing profile renders as
// blank fields, never an error.
func (h *Handler) companyOrNil(r *http.Request) *core.Company {
	company, err := h.CoreStore.GetCompany(r.Context())
	if err != nil {
		if !errors.Is(err, core.ErrCompanyNotFound) {
			log.Printf("company lookup for document failed: %v", err)
		}
		return nil
	}
	return company
}

func servePDF(w http.ResponseWriter, filename string, render func(*bytes.Buffer) error) {
	// Render fully before touching the response so a failure stays a
	// clean JSON 500 instead of a truncated PDF stream.
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		log.Printf("pdf generation failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Erreur lors de la génération du PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("pdf write failed: %v", err)
	}
}

type payslipPayload struct {
	SalaryID string `json:"salaryId"`
}

func (h *Handler) handleGeneratePayslip(w http.ResponseWriter, r *http.Request) {
	var payload payslipPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	salary, err := h.PayrollStore.GetSalary(r.Context(), payload.SalaryID)
	if errors.Is(err, payroll.ErrSalaryNotFound) || (err == nil && salary.Employee == nil) {
		api.Error(w, http.StatusNotFound, "Salaire ou employé non trouvé")
		return
	}
	if err != nil {
		log.Printf("salary lookup for payslip failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Erreur lors de la génération du PDF")
		return
	}

	data := documents.PayslipData{
		Salary:     *salary,
		Employee:   *salary.Employee,
		Company:    h.companyOrNil(r),
		Calc:       payroll.Compute(salary.Year, salary.Month, salary.Salaire, salary.Prime, salary.Absence, salary.Avance),
		UploadsDir: h.UploadsDir,
	}

	servePDF(w, "bulletin-"+salary.Employee.Code+".pdf", func(buf *bytes.Buffer) error {
		return documents.RenderPayslip(buf, data)
	})
}

type workCertificatePayload struct {
	EmployeeID   string `json:"employeeId"`
	IsCurrent    bool   `json:"isCurrent"`
	IssuanceDate string `json:"issuanceDate"`
	Ville        string `json:"ville"`
	Departement  string `json:"departement"`
	DateFin      string `json:"dateFin"`
	Civilite     string `json:"civilite"`
}

func (h *Handler) handleGenerateWorkCertificate(w http.ResponseWriter, r *http.Request) {
	var payload workCertificatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	emp, err := h.CoreStore.GetEmployee(r.Context(), payload.EmployeeID)
	if errors.Is(err, core.ErrEmployeeNotFound) {
		api.Error(w, http.StatusNotFound, "Employé non trouvé")
		return
	}
	if err != nil {
		log.Printf("employee lookup for certificate failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Erreur lors de la génération de l'attestation")
		return
	}

	data := documents.CertificateData{
		Employee:     *emp,
		Company:      h.companyOrNil(r),
		IsCurrent:    payload.IsCurrent,
		IssuanceDate: payload.IssuanceDate,
		Ville:        payload.Ville,
		Departement:  payload.Departement,
		DateFin:      payload.DateFin,
		Civilite:     payload.Civilite,
		UploadsDir:   h.UploadsDir,
	}

	servePDF(w, "attestation-travail-"+emp.Code+".pdf", func(buf *bytes.Buffer) error {
		return documents.RenderWorkCertificate(buf, data)
	})
}

type internshipCertificatePayload struct {
	EmployeeID   string `json:"employeeId"`
	DateDebut    string `json:"dateDebut"`
	DateFin      string `json:"dateFin"`
	IssuanceDate string `json:"issuanceDate"`
	Ville        string `json:"ville"`
	Departement  string `json:"departement"`
	Civilite     string `json:"civilite"`
}

func (h *Handler) handleGenerateInternshipCertificate(w http.ResponseWriter, r *http.Request) {
	var payload internshipCertificatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	emp, err := h.CoreStore.GetEmployee(r.Context(), payload.EmployeeID)
	if errors.Is(err, core.ErrEmployeeNotFound) {
		api.Error(w, http.StatusNotFound, "Stagiaire non trouvé")
		return
	}
	if err != nil {
		log.Printf("employee lookup for certificate failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Erreur lors de la génération de l'attestation")
		return
	}

	data := documents.CertificateData{
		Employee:     *emp,
		Company:      h.companyOrNil(r),
		IssuanceDate: payload.IssuanceDate,
		Ville:        payload.Ville,
		Departement:  payload.Departement,
		DateDebut:    payload.DateDebut,
		DateFin:      payload.DateFin,
		Civilite:     payload.Civilite,
		UploadsDir:   h.UploadsDir,
	}

	servePDF(w, "attestation-stage-"+emp.Code+".pdf", func(buf *bytes.Buffer) error {
		return documents.RenderInternshipCertificate(buf, data)
	})
}
