package documents

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"paiefacile/internal/domain/payroll"
)

func checkPDF(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output does not start with %%PDF header")
	}
	if buf.Len() < 1000 {
		t.Fatalf("suspiciously small PDF: %d bytes", buf.Len())
	}
}

func TestRenderPayslip(t *testing.T) {
	sal := payroll.Salary{
		Year: 2024, Month: 4,
		Salaire: 900, Prime: 50, Absence: 2, Avance: 120,
		DateAvance: "2024-04-10",
	}
	data := PayslipData{
		Salary:     sal,
		Employee:   testEmployee(),
		Company:    nil, // no company profile yet; must still render
		Calc:       payroll.Compute(sal.Year, sal.Month, sal.Salaire, sal.Prime, sal.Absence, sal.Avance),
		UploadsDir: t.TempDir(),
	}

	var buf bytes.Buffer
	if err := RenderPayslip(&buf, data); err != nil {
		t.Fatalf("render payslip: %v", err)
	}
	checkPDF(t, &buf)
}

func TestRenderPayslipWithoutOptionalRows(t *testing.T) {
	sal := payroll.Salary{Year: 2024, Month: 4, Salaire: 1300}
	data := PayslipData{
		Salary:     sal,
		Employee:   testEmployee(),
		Calc:       payroll.Compute(sal.Year, sal.Month, sal.Salaire, 0, 0, 0),
		UploadsDir: t.TempDir(),
	}

	var buf bytes.Buffer
	if err := RenderPayslip(&buf, data); err != nil {
		t.Fatalf("render payslip: %v", err)
	}
	checkPDF(t, &buf)
}

func TestRenderWorkCertificate(t *testing.T) {
	data := CertificateData{
		Employee:     testEmployee(),
		IsCurrent:    true,
		IssuanceDate: "2024-05-15",
		Ville:        "Tunis",
		Civilite:     "Monsieur",
		UploadsDir:   t.TempDir(),
	}

	var buf bytes.Buffer
	if err := RenderWorkCertificate(&buf, data); err != nil {
		t.Fatalf("render work certificate: %v", err)
	}
	checkPDF(t, &buf)
}

func TestRenderInternshipCertificate(t *testing.T) {
	data := CertificateData{
		Employee:   testEmployee(),
		DateDebut:  "2024-01-15",
		DateFin:    "2024-04-15",
		UploadsDir: t.TempDir(),
	}

	var buf bytes.Buffer
	if err := RenderInternshipCertificate(&buf, data); err != nil {
		t.Fatalf("render internship certificate: %v", err)
	}
	checkPDF(t, &buf)
}

// A logo URL pointing at a file that is not a valid image must not sink
// the document.
func TestRenderSkipsBrokenLogo(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "logo.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatalf("write broken logo: %v", err)
	}
	company := testCompany()
	company.LogoURL = "http://localhost:3000/uploads/logo.png"

	data := CertificateData{
		Employee:   testEmployee(),
		Company:    &company,
		IsCurrent:  true,
		UploadsDir: dir,
	}

	var buf bytes.Buffer
	if err := RenderWorkCertificate(&buf, data); err != nil {
		t.Fatalf("render with missing logo file: %v", err)
	}
	checkPDF(t, &buf)
}
