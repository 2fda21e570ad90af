package core

import "time"

// Employee field names follow the client's wire format (French, snake_case).
type Employee struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Nom          string    `json:"nom"`
	Prenom       string    `json:"prenom"`
	CIN          string    `json:"cin"`
	TypeContrat  string    `json:"type_contrat"`
	Service      string    `json:"service"`
	Poste        string    `json:"poste"`
	Nationalite  string    `json:"nationalite"`
	DateEmbauche string    `json:"date_embauche"`
	IDType       string    `json:"id_type"`
	IDDate       string    `json:"id_date"`
	IDPlace      string    `json:"id_place"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Company struct {
	ID              string    `json:"id"`
	Nom             string    `json:"nom"`
	Adresse         string    `json:"adresse"`
	Ville           string    `json:"ville"`
	LogoURL         string    `json:"logo_url"`
	CNSSEmployeur   string    `json:"cnss_employeur"`
	RIB             string    `json:"rib"`
	MatriculeFiscal string    `json:"matricule_fiscal"`
	Banque          string    `json:"banque"`
	CCB             string    `json:"ccb"`
	Capital         string    `json:"capital"`
	Telephone       string    `json:"telephone"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Roles        []string
}

const (
	ContractCDI       = "CDI"
	ContractCDD       = "CDD"
	ContractStage     = "STAGE"
	ContractFreelance = "FREELANCE"
	ContractInterim   = "INTERIM"
	ContractSIVP      = "SIVP"
	ContractVerbal    = "VERBAL"
)

var ContractTypes = []string{
	ContractCDI, ContractCDD, ContractStage, ContractFreelance,
	ContractInterim, ContractSIVP, ContractVerbal,
}

// CodePlaceholder is what the client sends when it wants the server to
// assign the next employee code.
const CodePlaceholder = "TEMP"
