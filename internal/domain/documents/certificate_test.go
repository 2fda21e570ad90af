package documents

import (
	"strings"
	"testing"

	"paiefacile/internal/domain/core"
)

func joinSegments(segments []segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

func testEmployee() core.Employee {
	return core.Employee{
		Code:         "EMP-001",
		Nom:          "Ben Salah",
		Prenom:       "Amine",
		CIN:          "09812345",
		TypeContrat:  core.ContractCDI,
		Poste:        "Développeur",
		Nationalite:  "tunisienne",
		DateEmbauche: "2022-03-01",
		IDType:       "CIN",
		IDDate:       "2015-06-10",
		IDPlace:      "Tunis",
	}
}

func testCompany() core.Company {
	return core.Company{
		Nom:             "PaieFacile SARL",
		Adresse:         "12 Rue de Carthage",
		Ville:           "Tunis",
		CNSSEmployeur:   "123456-78",
		RIB:             "08 006 0123456789 72",
		MatriculeFiscal: "1234567/A/M/000",
		Banque:          "BIAT",
		CCB:             "99887766",
		Capital:         "10.000 DT",
		Telephone:       "+216 71 000 000",
	}
}

func TestWorkCertificateBodyCurrent(t *testing.T) {
	data := CertificateData{
		Employee:  testEmployee(),
		IsCurrent: true,
		Civilite:  "Monsieur",
	}
	text := joinSegments(workCertificateBody(data, "PaieFacile SARL", "15/05/2024"))

	if !strings.Contains(text, "occupe actuellement le poste de Développeur") {
		t.Fatalf("expected present-tense wording, got %q", text)
	}
	if !strings.Contains(text, "depuis le 01/03/2022") {
		t.Fatalf("expected hire date clause, got %q", text)
	}
	if strings.Contains(text, " au 15/05/2024") {
		t.Fatalf("current employment must not mention an end date, got %q", text)
	}
	if !strings.Contains(text, "Mr. BEN SALAH Amine") {
		t.Fatalf("expected civilite and uppercased last name, got %q", text)
	}
}

func TestWorkCertificateBodyPast(t *testing.T) {
	data := CertificateData{
		Employee: testEmployee(),
		DateFin:  "2024-02-29",
		Civilite: "Madame",
	}
	text := joinSegments(workCertificateBody(data, "PaieFacile SARL", "15/05/2024"))

	if !strings.Contains(text, "a effectué une mission") {
		t.Fatalf("expected past-tense wording, got %q", text)
	}
	if !strings.Contains(text, "du 01/03/2022 au 29/02/2024") {
		t.Fatalf("expected hire and end dates, got %q", text)
	}
	if !strings.Contains(text, "Mme ") {
		t.Fatalf("expected Mme for non-Monsieur civilite, got %q", text)
	}
}

func TestWorkCertificateBodyPastFallsBackToIssuanceDate(t *testing.T) {
	data := CertificateData{Employee: testEmployee()}
	text := joinSegments(workCertificateBody(data, "PaieFacile SARL", "15/05/2024"))

	if !strings.Contains(text, " au 15/05/2024") {
		t.Fatalf("expected issuance date as mission end, got %q", text)
	}
}

func TestWorkCertificateBodyDepartmentClause(t *testing.T) {
	data := CertificateData{
		Employee:    testEmployee(),
		IsCurrent:   true,
		Departement: "Informatique",
	}
	text := joinSegments(workCertificateBody(data, "PaieFacile SARL", "15/05/2024"))

	if !strings.Contains(text, "dans le département Informatique") {
		t.Fatalf("expected department clause, got %q", text)
	}

	data.Departement = ""
	text = joinSegments(workCertificateBody(data, "PaieFacile SARL", "15/05/2024"))
	if strings.Contains(text, "département") {
		t.Fatalf("expected no department clause, got %q", text)
	}
}

func TestWorkCertificateBodyIdentityDefaults(t *testing.T) {
	emp := testEmployee()
	emp.Nationalite = ""
	emp.IDType = ""
	emp.IDDate = ""
	emp.IDPlace = ""
	text := joinSegments(workCertificateBody(CertificateData{Employee: emp, IsCurrent: true}, "X", "01/01/2024"))

	for _, want := range []string{"tunisienne", "titulaire du CIN", "délivré le (date)", "à (lieu)"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in body, got %q", want, text)
		}
	}
}

func TestInternshipCertificateBody(t *testing.T) {
	data := CertificateData{
		Employee:  testEmployee(),
		DateDebut: "2024-01-15",
		DateFin:   "2024-04-15",
	}
	text := joinSegments(internshipCertificateBody(data, "PaieFacile SARL"))

	if !strings.Contains(text, "a effectué un stage au sein de notre entreprise du 15/01/2024 au 15/04/2024") {
		t.Fatalf("expected stage wording with date range, got %q", text)
	}
}

func TestInternshipCertificateBodyDefaultsToHireDate(t *testing.T) {
	data := CertificateData{Employee: testEmployee(), DateFin: "2024-04-15"}
	text := joinSegments(internshipCertificateBody(data, "PaieFacile SARL"))

	if !strings.Contains(text, "du 01/03/2022 au 15/04/2024") {
		t.Fatalf("expected hire date as default start, got %q", text)
	}
}

func TestCiviliteShort(t *testing.T) {
	if got := civiliteShort("Monsieur"); got != "Mr." {
		t.Fatalf("civiliteShort(Monsieur) = %q", got)
	}
	if got := civiliteShort("Madame"); got != "Mme" {
		t.Fatalf("civiliteShort(Madame) = %q", got)
	}
	if got := civiliteShort(""); got != "Mme" {
		t.Fatalf("civiliteShort(empty) = %q", got)
	}
}
