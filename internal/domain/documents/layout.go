// Package documents renders the three French-language PDF documents
// (payslip, work certificate, internship certificate) with gofpdf.
// All coordinates are PostScript points on fixed page sizes; every
// position lives in the layout tables below rather than in the drawing
// code.
package documents

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// cell is one absolutely positioned piece of text.
type cell struct {
	X, Y  float64
	W     float64 // 0 means no box, left-aligned free text
	Style string  // "" regular, "B" bold
	Size  float64
	Align string // "L", "C", "R"
}

const cellHeight = 10

func drawCell(pdf *gofpdf.Fpdf, tr func(string) string, c cell, text string) {
	pdf.SetFont("Helvetica", c.Style, c.Size)
	if c.W == 0 {
		pdf.Text(c.X, c.Y+c.Size, tr(text))
		return
	}
	pdf.SetXY(c.X, c.Y)
	pdf.CellFormat(c.W, cellHeight, tr(text), "", 0, c.Align, false, 0, "")
}

var monthsFR = [...]string{
	"", "Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// MonthFR returns the French month name, or "" for an out-of-range month.
func MonthFR(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthsFR[month]
}

// FormatDateFR renders an ISO date (YYYY-MM-DD, optionally RFC3339) as
// dd/mm/yyyy. Unparseable input is returned unchanged so a hand-typed
// date still shows up on the document.
func FormatDateFR(value string) string {
	if value == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format("02/01/2006")
		}
	}
	return value
}

// TodayFR is the current date as dd/mm/yyyy.
func TodayFR() string {
	return time.Now().Format("02/01/2006")
}

// TodayLongFR is the current date in the long French form the
// certificates use when no issuance date is given, e.g. "15 mai 2024".
func TodayLongFR() string {
	now := time.Now()
	return itoa(now.Day()) + " " + strings.ToLower(MonthFR(int(now.Month()))) + " " + itoa(now.Year())
}

func itoa(value int) string {
	return strconv.Itoa(value)
}

func upperFR(value string) string {
	return strings.ToUpper(value)
}

// localLogoPath maps a stored logo URL back to a file under uploadsDir.
// Only URLs pointing at /uploads/ are considered; a missing file yields
// "" so the document renders without a logo instead of failing.
func localLogoPath(uploadsDir, logoURL string) string {
	if logoURL == "" || !strings.Contains(logoURL, "/uploads/") {
		return ""
	}
	parts := strings.Split(logoURL, "/uploads/")
	name := filepath.Base(parts[len(parts)-1])
	if name == "" || name == "." || name == "/" {
		return ""
	}
	path := filepath.Join(uploadsDir, name)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func drawLogo(pdf *gofpdf.Fpdf, uploadsDir, logoURL string, x, y, w float64) {
	path := localLogoPath(uploadsDir, logoURL)
	if path == "" {
		return
	}
	imageType := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if imageType == "jpeg" {
		imageType = "jpg"
	}
	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	pdf.ImageOptions(path, x, y, w, 0, false, opts, 0, "")
	// A corrupt image would poison the whole document; clear the error
	// and keep rendering without the logo.
	if pdf.Err() {
		pdf.ClearError()
	}
}
