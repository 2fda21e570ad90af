package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"paiefacile/internal/domain/core"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const salaryColumns = `
    s.id, s.employee_id, s.year, s.month,
    s.salaire, s.prime, s.absence, s.avance,
    COALESCE(s.date_avance, ''),
    s.created_at, s.updated_at,
    e.id, e.code, e.nom, e.prenom, e.cin, e.type_contrat,
    COALESCE(e.service, ''),
    e.poste,
    COALESCE(e.nationalite, 'tunisienne'),
    e.date_embauche,
    COALESCE(e.id_type, 'CIN'),
    COALESCE(e.id_date, ''),
    COALESCE(e.id_place, ''),
    e.created_at, e.updated_at`

func scanSalary(row pgx.Row) (*Salary, error) {
	var sal Salary
	var emp core.Employee
	err := row.Scan(
		&sal.ID, &sal.EmployeeID, &sal.Year, &sal.Month,
		&sal.Salaire, &sal.Prime, &sal.Absence, &sal.Avance,
		&sal.DateAvance, &sal.CreatedAt, &sal.UpdatedAt,
		&emp.ID, &emp.Code, &emp.Nom, &emp.Prenom, &emp.CIN, &emp.TypeContrat,
		&emp.Service, &emp.Poste, &emp.Nationalite, &emp.DateEmbauche,
		&emp.IDType, &emp.IDDate, &emp.IDPlace,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sal.Employee = &emp
	return &sal, nil
}

// ListSalaries returns salary rows with their employee embedded, newest
// first, optionally filtered by year and month (zero means no filter).
func (s *Store) ListSalaries(ctx context.Context, year, month int) ([]Salary, error) {
	query := `
    SELECT` + salaryColumns + `
    FROM salaries s
    JOIN employees e ON s.employee_id = e.id`
	args := []any{}
	where := ""
	if year != 0 {
		args = append(args, year)
		where += fmt.Sprintf(" AND s.year = $%d", len(args))
	}
	if month != 0 {
		args = append(args, month)
		where += fmt.Sprintf(" AND s.month = $%d", len(args))
	}
	if where != "" {
		query += " WHERE 1=1" + where
	}
	query += " ORDER BY s.created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Salary{}
	for rows.Next() {
		sal, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sal)
	}
	return out, rows.Err()
}

func (s *Store) GetSalary(ctx context.Context, salaryID string) (*Salary, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+salaryColumns+`
    FROM salaries s
    JOIN employees e ON s.employee_id = e.id
    WHERE s.id = $1
  `, salaryID)

	sal, err := scanSalary(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSalaryNotFound
	}
	return sal, err
}

// CreateSalary inserts the record. The unique constraint on
// (employee_id, year, month) is the duplicate-month guard; a violation
// surfaces as a pgconn error with code 23505.
func (s *Store) CreateSalary(ctx context.Context, sal Salary) (*Salary, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO salaries (employee_id, year, month, salaire, prime, absence, avance, date_avance)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `,
		sal.EmployeeID, sal.Year, sal.Month, sal.Salaire, sal.Prime, sal.Absence,
		sal.Avance, nullIfEmpty(sal.DateAvance),
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return s.GetSalary(ctx, id)
}

func (s *Store) UpdateSalary(ctx context.Context, salaryID string, sal Salary) (*Salary, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE salaries
    SET employee_id = $1,
        year = $2,
        month = $3,
        salaire = $4,
        prime = $5,
        absence = $6,
        avance = $7,
        date_avance = $8,
        updated_at = now()
    WHERE id = $9
  `,
		sal.EmployeeID, sal.Year, sal.Month, sal.Salaire, sal.Prime, sal.Absence,
		sal.Avance, nullIfEmpty(sal.DateAvance), salaryID,
	)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrSalaryNotFound
	}
	return s.GetSalary(ctx, salaryID)
}

// DeleteSalary is idempotent, matching the employee delete behavior.
func (s *Store) DeleteSalary(ctx context.Context, salaryID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM salaries WHERE id = $1", salaryID)
	return err
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
