package documents

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"paiefacile/internal/domain/core"
	"paiefacile/internal/domain/payroll"
)

// PayslipData is everything the payslip needs: the salary row with its
// employee, the (possibly absent) company profile, and the computed pay
// figures for the month.
type PayslipData struct {
	Salary     payroll.Salary
	Employee   core.Employee
	Company    *core.Company
	Calc       payroll.Computation
	UploadsDir string
}

// Payslip sheet geometry, A5 portrait in points.
var payslipLayout = struct {
	logo                 cell
	companyName          cell
	companyCNSS          cell
	companyRIB           cell
	companyAddress       cell
	title                cell
	period               cell
	employeeBox          [4]float64 // x, y, w, h
	matriculeLabel       cell
	matriculeValue       cell
	nameLabel            cell
	nameValue            cell
	cinLabel             cell
	cinValue             cell
	serviceLabel         cell
	serviceValue         cell
	hireLabel            cell
	hireValue            cell
	posteLabel           cell
	posteValue           cell
	baseLabel            cell
	baseValue            cell
	contractLabel        cell
	contractValue        cell
	tableTop, tableH     float64
	tableCols            [7]float64
	headerRowH, rowH     float64
	footerBox1           [4]float64
	footerBox2           [4]float64
	footerBox3           [4]float64
	netBoxX, netBoxW     float64
	netLabelH, netValueH float64
}{
	logo:           cell{X: 25, Y: 20, W: 55},
	companyName:    cell{X: 85, Y: 20, Style: "B", Size: 11},
	companyCNSS:    cell{X: 85, Y: 34, Size: 7},
	companyRIB:     cell{X: 85, Y: 42, Size: 7},
	companyAddress: cell{X: 85, Y: 50, Size: 7},
	title:          cell{X: 250, Y: 20, W: 150, Style: "B", Size: 11, Align: "R"},
	period:         cell{X: 250, Y: 40, W: 150, Style: "B", Size: 9, Align: "R"},
	employeeBox:    [4]float64{20, 70, 380, 60},
	matriculeLabel: cell{X: 30, Y: 78, Style: "B", Size: 8},
	matriculeValue: cell{X: 80, Y: 78, Size: 8},
	nameLabel:      cell{X: 30, Y: 90, Style: "B", Size: 8},
	nameValue:      cell{X: 105, Y: 90, Size: 8},
	cinLabel:       cell{X: 30, Y: 102, Style: "B", Size: 8},
	cinValue:       cell{X: 105, Y: 102, Size: 8},
	serviceLabel:   cell{X: 210, Y: 78, Style: "B", Size: 8},
	serviceValue:   cell{X: 250, Y: 78, Size: 8},
	hireLabel:      cell{X: 210, Y: 90, Style: "B", Size: 8},
	hireValue:      cell{X: 255, Y: 90, Size: 8},
	posteLabel:     cell{X: 210, Y: 102, Style: "B", Size: 8},
	posteValue:     cell{X: 245, Y: 102, Size: 8},
	baseLabel:      cell{X: 320, Y: 90, Style: "B", Size: 8},
	baseValue:      cell{X: 350, Y: 90, Size: 8},
	contractLabel:  cell{X: 320, Y: 102, Style: "B", Size: 8},
	contractValue:  cell{X: 360, Y: 102, Size: 8},
	tableTop:       135,
	tableH:         350,
	tableCols:      [7]float64{20, 60, 190, 235, 275, 335, 400},
	headerRowH:     15,
	rowH:           12,
	footerBox1:     [4]float64{20, 493, 70, 45},
	footerBox2:     [4]float64{90, 493, 70, 45},
	footerBox3:     [4]float64{160, 493, 150, 45},
	netBoxX:        320,
	netBoxW:        80,
	netLabelH:      20,
	netValueH:      25,
}

var payslipTableHeaders = [6]string{"CODE", "LIBELLÉ", "MONT.", "NBR", "SAL/PRIME", "RETENUE"}

// RenderPayslip writes the A5 payslip PDF to w.
func RenderPayslip(w io.Writer, data PayslipData) error {
	pdf := gofpdf.New("P", "pt", "A5", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	l := payslipLayout
	emp := data.Employee
	sal := data.Salary
	calc := data.Calc

	// Header: logo, company identity, title, period.
	var company core.Company
	if data.Company != nil {
		company = *data.Company
	}
	drawLogo(pdf, data.UploadsDir, company.LogoURL, l.logo.X, l.logo.Y, l.logo.W)
	drawCell(pdf, tr, l.companyName, company.Nom)
	drawCell(pdf, tr, l.companyCNSS, "CNSS Employeur : "+company.CNSSEmployeur)
	drawCell(pdf, tr, l.companyRIB, "R.I.B : "+company.RIB)
	drawCell(pdf, tr, l.companyAddress, "Adresse : "+company.Adresse+" "+company.Ville)
	drawCell(pdf, tr, l.title, "BULLETIN DE PAIE")
	drawCell(pdf, tr, l.period, "Mois : "+MonthFR(sal.Month)+" "+itoa(sal.Year))

	// Employee identity box.
	pdf.Rect(l.employeeBox[0], l.employeeBox[1], l.employeeBox[2], l.employeeBox[3], "D")
	drawCell(pdf, tr, l.matriculeLabel, "Matricule :")
	drawCell(pdf, tr, l.matriculeValue, emp.Code)
	drawCell(pdf, tr, l.nameLabel, "Nom & prénoms :")
	drawCell(pdf, tr, l.nameValue, upperFR(emp.Nom+" "+emp.Prenom))
	drawCell(pdf, tr, l.cinLabel, "N° CIN/Passeport :")
	drawCell(pdf, tr, l.cinValue, emp.CIN)
	drawCell(pdf, tr, l.serviceLabel, "Service :")
	drawCell(pdf, tr, l.serviceValue, emp.Service)
	drawCell(pdf, tr, l.hireLabel, "Dat.Emb. :")
	drawCell(pdf, tr, l.hireValue, emp.DateEmbauche)
	drawCell(pdf, tr, l.posteLabel, "Emploi :")
	drawCell(pdf, tr, l.posteValue, emp.Poste)
	drawCell(pdf, tr, l.baseLabel, "Sal.B :")
	drawCell(pdf, tr, l.baseValue, payroll.FormatAmount(sal.Salaire))
	drawCell(pdf, tr, l.contractLabel, "Contrat :")
	drawCell(pdf, tr, l.contractValue, emp.TypeContrat)

	// Pay table frame.
	cols := l.tableCols
	pdf.Rect(cols[0], l.tableTop, cols[6]-cols[0], l.tableH, "D")
	pdf.Line(cols[0], l.tableTop+l.headerRowH, cols[6], l.tableTop+l.headerRowH)
	for _, x := range cols {
		pdf.Line(x, l.tableTop, x, l.tableTop+l.tableH)
	}
	for i, header := range payslipTableHeaders {
		drawCell(pdf, tr, cell{
			X: cols[i], Y: l.tableTop + 4, W: cols[i+1] - cols[i],
			Style: "B", Size: 8, Align: "C",
		}, header)
	}

	// Table rows. The base pay row is always present; prime and avance
	// rows appear only when their amounts are positive.
	rowY := l.tableTop + l.headerRowH + 5
	drawPayslipRow(pdf, tr, cols, rowY, payslipRow{
		code: "SAL_B", label: "SALAIRE DE BASE",
		amount: payroll.FormatAmount(calc.DailyRate),
		count:  itoa(calc.WorkedDays),
		credit: payroll.FormatAmount(calc.BasePay),
	})

	if sal.Prime > 0 {
		rowY += l.rowH
		drawPayslipRow(pdf, tr, cols, rowY, payslipRow{
			code: "PRIME", label: "PRIMES ET INDEMNITÉS",
			credit: payroll.FormatAmount(sal.Prime),
		})
	}

	if sal.Avance > 0 {
		rowY += l.rowH
		dateLabel := FormatDateFR(sal.DateAvance)
		if dateLabel == "" {
			dateLabel = TodayFR()
		}
		drawPayslipRow(pdf, tr, cols, rowY, payslipRow{
			code: "AV_SAL", label: "AVANCE SUR SALAIRE " + dateLabel,
			debit: payroll.FormatAmount(sal.Avance),
		})
	}

	// The historical layout labels this row BRUT while showing the net
	// figure; kept as-is for document compatibility.
	rowY += l.rowH
	drawPayslipRow(pdf, tr, cols, rowY, payslipRow{
		bold: true, code: "BRUT", label: "SALAIRE BRUT",
		credit: payroll.FormatAmount(calc.NetTotal),
	})

	// Footer boxes.
	footerY := l.tableTop + l.tableH + 8
	pdf.Rect(l.footerBox1[0], footerY, l.footerBox1[2], l.footerBox1[3], "D")
	pdf.Rect(l.footerBox2[0], footerY, l.footerBox2[2], l.footerBox2[3], "D")
	pdf.Rect(l.footerBox3[0], footerY, l.footerBox3[2], l.footerBox3[3], "D")

	drawCell(pdf, tr, cell{X: 25, Y: footerY + 4, Size: 6}, "Tot.B1: 0.000")
	drawCell(pdf, tr, cell{X: 25, Y: footerY + 14, Size: 6}, "CG. pris mois : 0.000")
	drawCell(pdf, tr, cell{X: 25, Y: footerY + 24, Size: 6}, "Absence : "+itoa(sal.Absence))
	drawCell(pdf, tr, cell{X: 25, Y: footerY + 34, Size: 6}, "Nb.H/J Theo : "+itoa(calc.TotalWorkingDays))
	drawCell(pdf, tr, cell{X: 95, Y: footerY + 4, Size: 6}, "T.R.IR:")
	drawCell(pdf, tr, cell{X: 165, Y: footerY + 4, Size: 6}, "Mode paiement : Espèce")
	drawCell(pdf, tr, cell{X: 165, Y: footerY + 14, Size: 6}, "Sur RIB :")
	drawCell(pdf, tr, cell{X: 165, Y: footerY + 32, Size: 6}, "Signature :")

	// Net pay box.
	pdf.Rect(l.netBoxX, footerY, l.netBoxW, l.netLabelH, "D")
	drawCell(pdf, tr, cell{X: l.netBoxX, Y: footerY + 4, W: l.netBoxW, Style: "B", Size: 8, Align: "C"}, "Net à payer")
	pdf.Rect(l.netBoxX, footerY+l.netLabelH, l.netBoxW, l.netValueH, "D")
	drawCell(pdf, tr, cell{X: l.netBoxX, Y: footerY + l.netLabelH + 8, W: l.netBoxW, Style: "B", Size: 10, Align: "C"}, payroll.FormatAmount(calc.NetTotal))

	drawCell(pdf, tr, cell{X: cols[5], Y: footerY + 50, W: cols[6] - cols[5], Size: 7, Align: "R"}, TodayFR())

	return pdf.Output(w)
}

type payslipRow struct {
	bold   bool
	code   string
	label  string
	amount string // MONT. column
	count  string // NBR column
	credit string // SAL/PRIME column
	debit  string // RETENUE column
}

func drawPayslipRow(pdf *gofpdf.Fpdf, tr func(string) string, cols [7]float64, y float64, row payslipRow) {
	style := ""
	if row.bold {
		style = "B"
	}
	drawCell(pdf, tr, cell{X: cols[0] + 2, Y: y, Style: style, Size: 8}, row.code)
	drawCell(pdf, tr, cell{X: cols[1] + 2, Y: y, Style: style, Size: 8}, row.label)
	if row.amount != "" {
		drawCell(pdf, tr, cell{X: cols[2] + 2, Y: y, W: cols[3] - cols[2] - 4, Style: style, Size: 8, Align: "R"}, row.amount)
	}
	if row.count != "" {
		drawCell(pdf, tr, cell{X: cols[3] + 2, Y: y, W: cols[4] - cols[3] - 4, Style: style, Size: 8, Align: "C"}, row.count)
	}
	if row.credit != "" {
		drawCell(pdf, tr, cell{X: cols[4] + 2, Y: y, W: cols[5] - cols[4] - 4, Style: style, Size: 8, Align: "R"}, row.credit)
	}
	if row.debit != "" {
		drawCell(pdf, tr, cell{X: cols[5] + 2, Y: y, W: cols[6] - cols[5] - 4, Style: style, Size: 8, Align: "R"}, row.debit)
	}
}
