package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    id, code, nom, prenom, cin, type_contrat,
    COALESCE(service, ''),
    poste,
    COALESCE(nationalite, 'tunisienne'),
    date_embauche,
    COALESCE(id_type, 'CIN'),
    COALESCE(id_date, ''),
    COALESCE(id_place, ''),
    created_at, updated_at`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.Code, &emp.Nom, &emp.Prenom, &emp.CIN, &emp.TypeContrat,
		&emp.Service, &emp.Poste, &emp.Nationalite, &emp.DateEmbauche,
		&emp.IDType, &emp.IDDate, &emp.IDPlace,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    ORDER BY created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, employeeID)

	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	return emp, err
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO employees (code, nom, prenom, cin, type_contrat, service, poste,
      nationalite, date_embauche, id_type, id_date, id_place)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    RETURNING`+employeeColumns+`
  `,
		emp.Code, emp.Nom, emp.Prenom, emp.CIN, emp.TypeContrat,
		nullIfEmpty(emp.Service), emp.Poste, emp.Nationalite, emp.DateEmbauche,
		emp.IDType, nullIfEmpty(emp.IDDate), nullIfEmpty(emp.IDPlace),
	)
	return scanEmployee(row)
}

func (s *Store) UpdateEmployee(ctx context.Context, employeeID string, emp Employee) (*Employee, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET code = $1,
        nom = $2,
        prenom = $3,
        cin = $4,
        type_contrat = $5,
        service = $6,
        poste = $7,
        nationalite = $8,
        date_embauche = $9,
        id_type = $10,
        id_date = $11,
        id_place = $12,
        updated_at = now()
    WHERE id = $13
  `,
		emp.Code, emp.Nom, emp.Prenom, emp.CIN, emp.TypeContrat,
		nullIfEmpty(emp.Service), emp.Poste, emp.Nationalite, emp.DateEmbauche,
		emp.IDType, nullIfEmpty(emp.IDDate), nullIfEmpty(emp.IDPlace),
		employeeID,
	)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrEmployeeNotFound
	}
	return s.GetEmployee(ctx, employeeID)
}

// DeleteEmployee is idempotent: deleting an unknown id is not an error.
func (s *Store) DeleteEmployee(ctx context.Context, employeeID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", employeeID)
	return err
}

const companyColumns = `
    id, nom,
    COALESCE(adresse, ''),
    COALESCE(ville, ''),
    COALESCE(logo_url, ''),
    COALESCE(cnss_employeur, ''),
    COALESCE(rib, ''),
    COALESCE(matricule_fiscal, ''),
    COALESCE(banque, ''),
    COALESCE(ccb, ''),
    COALESCE(capital, ''),
    COALESCE(telephone, ''),
    created_at, updated_at`

func scanCompany(row pgx.Row) (*Company, error) {
	var c Company
	err := row.Scan(
		&c.ID, &c.Nom, &c.Adresse, &c.Ville, &c.LogoURL, &c.CNSSEmployeur,
		&c.RIB, &c.MatriculeFiscal, &c.Banque, &c.CCB, &c.Capital, &c.Telephone,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCompany returns the first (and only meaningful) company row.
func (s *Store) GetCompany(ctx context.Context) (*Company, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+companyColumns+`
    FROM companies
    ORDER BY created_at
    LIMIT 1
  `)
	c, err := scanCompany(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	return c, err
}

// UpsertCompany updates the first existing row or inserts one, keeping the
// table a singleton at write time.
func (s *Store) UpsertCompany(ctx context.Context, c Company) (*Company, error) {
	existing, err := s.GetCompany(ctx)
	if err != nil && !errors.Is(err, ErrCompanyNotFound) {
		return nil, err
	}

	if existing != nil {
		cmd, err := s.DB.Exec(ctx, `
      UPDATE companies
      SET nom = $1, adresse = $2, ville = $3, logo_url = $4, cnss_employeur = $5,
          rib = $6, matricule_fiscal = $7, banque = $8, ccb = $9, capital = $10,
          telephone = $11, updated_at = now()
      WHERE id = $12
    `,
			c.Nom, nullIfEmpty(c.Adresse), nullIfEmpty(c.Ville), nullIfEmpty(c.LogoURL),
			nullIfEmpty(c.CNSSEmployeur), nullIfEmpty(c.RIB), nullIfEmpty(c.MatriculeFiscal),
			nullIfEmpty(c.Banque), nullIfEmpty(c.CCB), nullIfEmpty(c.Capital),
			nullIfEmpty(c.Telephone), existing.ID,
		)
		if err != nil {
			return nil, err
		}
		if cmd.RowsAffected() == 0 {
			return nil, ErrCompanyNotFound
		}
		return s.GetCompany(ctx)
	}

	row := s.DB.QueryRow(ctx, `
    INSERT INTO companies (nom, adresse, ville, logo_url, cnss_employeur, rib,
      matricule_fiscal, banque, ccb, capital, telephone)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    RETURNING`+companyColumns+`
  `,
		c.Nom, nullIfEmpty(c.Adresse), nullIfEmpty(c.Ville), nullIfEmpty(c.LogoURL),
		nullIfEmpty(c.CNSSEmployeur), nullIfEmpty(c.RIB), nullIfEmpty(c.MatriculeFiscal),
		nullIfEmpty(c.Banque), nullIfEmpty(c.CCB), nullIfEmpty(c.Capital),
		nullIfEmpty(c.Telephone),
	)
	return scanCompany(row)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash
    FROM users
    WHERE email = $1
  `, email).Scan(&user.ID, &user.Email, &user.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(ctx, "SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role", user.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		user.Roles = append(user.Roles, role)
	}
	return &user, rows.Err()
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
