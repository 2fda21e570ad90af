package documents

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"paiefacile/internal/domain/core"
)

// CertificateData drives both certificate variants. DateDebut is only
// meaningful for the internship certificate; IsCurrent and DateFin only
// for the work certificate.
type CertificateData struct {
	Employee     core.Employee
	Company      *core.Company
	IsCurrent    bool
	IssuanceDate string
	Ville        string
	Departement  string
	DateDebut    string
	DateFin      string
	Civilite     string
	UploadsDir   string
}

// segment is a run of prose with a single style; the certificate body is
// a list of them so the wording can be assembled and tested without a PDF.
type segment struct {
	Text string
	Bold bool
	Size float64
}

const (
	certBodySize = 13
	certNameSize = 14
	certLineGap  = 18
)

// Certificate sheet geometry, A4 portrait in points.
var certificateLayout = struct {
	logo          cell
	companyMF     cell
	companyBanque cell
	companyCCB    cell
	headerRuleY   float64
	titleY        float64
	bodyY         float64
	closingY      float64
	issuedY       float64
	signatureY    float64
	footerRuleY   float64
	footerY       float64
	marginX       float64
	bodyWidth     float64
	pageWidth     float64
}{
	logo:          cell{X: 50, Y: 50, W: 80},
	companyMF:     cell{X: 420, Y: 50, W: 130, Style: "B", Size: 9},
	companyBanque: cell{X: 420, Y: 68, W: 130, Style: "B", Size: 9},
	companyCCB:    cell{X: 420, Y: 86, W: 130, Style: "B", Size: 9},
	headerRuleY:   130,
	titleY:        180,
	bodyY:         300,
	closingY:      430,
	issuedY:       550,
	signatureY:    630,
	footerRuleY:   740,
	footerY:       750,
	marginX:       50,
	bodyWidth:     500,
	pageWidth:     595,
}

func civiliteShort(civilite string) string {
	if civilite == "Monsieur" {
		return "Mr."
	}
	return "Mme"
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// identityIntro is the clause both certificates share: who the employer
// is and who the person is, down to the identity document.
func identityIntro(emp core.Employee, companyNom, civilite string) []segment {
	docDate := "(date)"
	if emp.IDDate != "" {
		docDate = FormatDateFR(emp.IDDate)
	}
	return []segment{
		{Text: "Nous, "},
		{Text: companyNom, Bold: true},
		{Text: ", attestons par la présente que "},
		{Text: civiliteShort(civilite) + " " + upperFR(emp.Nom) + " " + emp.Prenom, Bold: true, Size: certNameSize},
		{Text: ", de nationalité "},
		{Text: orDefault(emp.Nationalite, "tunisienne"), Bold: true},
		{Text: ", titulaire du "},
		{Text: orDefault(emp.IDType, "CIN"), Bold: true},
		{Text: " n° "},
		{Text: emp.CIN, Bold: true},
		{Text: ", délivré le "},
		{Text: docDate, Bold: true},
		{Text: " à "},
		{Text: orDefault(emp.IDPlace, "(lieu)") + ", ", Bold: true},
	}
}

// workCertificateBody branches on whether the employment is current:
// present-tense wording with the hire date only, or past-tense wording
// with the hire date and the mission end date.
func workCertificateBody(data CertificateData, companyNom, issuedOn string) []segment {
	emp := data.Employee
	body := identityIntro(emp, companyNom, data.Civilite)
	hireDate := FormatDateFR(emp.DateEmbauche)

	if data.IsCurrent {
		body = append(body,
			segment{Text: "occupe actuellement le poste de "},
			segment{Text: emp.Poste, Bold: true},
		)
		if data.Departement != "" {
			body = append(body,
				segment{Text: " dans le département "},
				segment{Text: data.Departement, Bold: true},
			)
		}
		body = append(body,
			segment{Text: " au sein de notre entreprise depuis le "},
			segment{Text: hireDate, Bold: true},
		)
		return body
	}

	missionEnd := issuedOn
	if data.DateFin != "" {
		missionEnd = FormatDateFR(data.DateFin)
	}
	body = append(body,
		segment{Text: "a effectué une mission au sein de notre entreprise en tant que "},
		segment{Text: emp.Poste, Bold: true},
	)
	if data.Departement != "" {
		body = append(body,
			segment{Text: " dans le département "},
			segment{Text: data.Departement, Bold: true},
		)
	}
	body = append(body,
		segment{Text: " du "},
		segment{Text: hireDate, Bold: true},
		segment{Text: " au "},
		segment{Text: missionEnd, Bold: true},
	)
	return body
}

// internshipCertificateBody always covers an explicit start/end range,
// defaulting to the hire date and today.
func internshipCertificateBody(data CertificateData, companyNom string) []segment {
	emp := data.Employee
	body := identityIntro(emp, companyNom, data.Civilite)

	start := FormatDateFR(orDefault(data.DateDebut, emp.DateEmbauche))
	end := TodayFR()
	if data.DateFin != "" {
		end = FormatDateFR(data.DateFin)
	}

	body = append(body,
		segment{Text: "a effectué un stage au sein de notre entreprise du "},
		segment{Text: start, Bold: true},
		segment{Text: " au "},
		segment{Text: end, Bold: true},
	)
	if data.Departement != "" {
		body = append(body,
			segment{Text: ", dans le département "},
			segment{Text: data.Departement, Bold: true},
		)
	} else {
		body = append(body, segment{Text: "."})
	}
	return body
}

// RenderWorkCertificate writes the A4 attestation de travail to w.
func RenderWorkCertificate(w io.Writer, data CertificateData) error {
	// An explicit issuance date prints as dd/mm/yyyy; the fallback is
	// the long French form ("15 mai 2024").
	issuedOn := TodayLongFR()
	if data.IssuanceDate != "" {
		issuedOn = FormatDateFR(data.IssuanceDate)
	}
	var companyNom string
	if data.Company != nil {
		companyNom = data.Company.Nom
	}
	body := workCertificateBody(data, companyNom, issuedOn)
	return renderCertificate(w, data, "ATTESTATION DE TRAVAIL", body, issuedOn)
}

// RenderInternshipCertificate writes the A4 attestation de stage to w.
func RenderInternshipCertificate(w io.Writer, data CertificateData) error {
	issuedOn := TodayLongFR()
	if data.IssuanceDate != "" {
		issuedOn = FormatDateFR(data.IssuanceDate)
	}
	var companyNom string
	if data.Company != nil {
		companyNom = data.Company.Nom
	}
	body := internshipCertificateBody(data, companyNom)
	return renderCertificate(w, data, "ATTESTATION DE STAGE", body, issuedOn)
}

func renderCertificate(w io.Writer, data CertificateData, title string, body []segment, issuedOn string) error {
	pdf := gofpdf.New("P", "pt", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	l := certificateLayout
	pdf.SetMargins(l.marginX, 50, l.marginX)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	var company core.Company
	if data.Company != nil {
		company = *data.Company
	}

	// Header: logo left, company identifiers right, accent rule.
	drawLogo(pdf, data.UploadsDir, company.LogoURL, l.logo.X, l.logo.Y, l.logo.W)
	drawCell(pdf, tr, l.companyMF, "MF : "+company.MatriculeFiscal)
	drawCell(pdf, tr, l.companyBanque, "BANQUE : "+company.Banque)
	drawCell(pdf, tr, l.companyCCB, "CCB : "+company.CCB)
	pdf.SetDrawColor(26, 176, 226)
	pdf.SetLineWidth(1)
	pdf.Line(0, l.headerRuleY, l.pageWidth, l.headerRuleY)
	pdf.SetDrawColor(0, 0, 0)

	drawCell(pdf, tr, cell{X: l.marginX, Y: l.titleY, W: l.bodyWidth, Style: "B", Size: 24, Align: "C"}, title)

	// Body paragraph: flowing text with per-segment styling.
	pdf.SetXY(l.marginX, l.bodyY)
	for _, seg := range body {
		size := seg.Size
		if size == 0 {
			size = certBodySize
		}
		style := ""
		if seg.Bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, size)
		pdf.Write(certLineGap, tr(seg.Text))
	}

	pdf.SetFont("Helvetica", "", certBodySize)
	pdf.SetXY(l.marginX, l.closingY)
	pdf.MultiCell(l.bodyWidth, certLineGap, tr("Nous délivrons la présente attestation pour servir et valoir ce que de droit."), "", "J", false)

	ville := data.Ville
	if ville == "" {
		ville = company.Ville
	}
	drawCell(pdf, tr, cell{X: 0, Y: l.issuedY, W: l.pageWidth - 65, Size: 12, Align: "R"}, "Fait à "+ville+", le "+issuedOn)
	drawCell(pdf, tr, cell{X: 0, Y: l.signatureY, W: l.pageWidth - 65, Style: "B", Size: 12, Align: "R"}, "Cachet & Signature")

	// Sticky footer with the accent rule and the company registration line.
	pdf.SetDrawColor(26, 176, 226)
	pdf.Line(0, l.footerRuleY-10, l.pageWidth, l.footerRuleY-10)
	pdf.SetDrawColor(0, 0, 0)
	drawCell(pdf, tr, cell{X: l.marginX, Y: l.footerY, W: l.bodyWidth, Style: "B", Size: 9, Align: "C"}, "S.A.R.L Au capital de "+company.Capital)
	drawCell(pdf, tr, cell{X: l.marginX, Y: l.footerY + 12, W: l.bodyWidth, Size: 8, Align: "C"}, "Siège Social : "+company.Adresse+", "+company.Ville)
	if company.Telephone != "" {
		drawCell(pdf, tr, cell{X: l.marginX, Y: l.footerY + 24, W: l.bodyWidth, Size: 8, Align: "C"}, "( Tél ) : "+company.Telephone)
	}

	return pdf.Output(w)
}
