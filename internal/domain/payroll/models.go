package payroll

import (
	"time"

	"paiefacile/internal/domain/core"
)

// Salary is one pay record per employee per calendar month.
type Salary struct {
	ID         string         `json:"id"`
	EmployeeID string         `json:"employee_id"`
	Year       int            `json:"year"`
	Month      int            `json:"month"`
	Salaire    float64        `json:"salaire"`
	Prime      float64        `json:"prime"`
	Absence    int            `json:"absence"`
	Avance     float64        `json:"avance"`
	DateAvance string         `json:"date_avance"`
	Employee   *core.Employee `json:"employee,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
