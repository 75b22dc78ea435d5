package document

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/performance"
)

// EmployeeHeader identifies the employee on a rendered document.
type EmployeeHeader struct {
	Name     string
	Code     string
	Unit     string
	Position string
}

type TranscriptData struct {
	Employee    EmployeeHeader
	Year        int
	Scorecard   performance.Scorecard
	Signatory   string
	GeneratedAt time.Time
}

var (
	headerFill   = [3]int{68, 114, 196}
	categoryFill = [3]int{221, 235, 247}
)

// column widths in mm; they add up to the A4 printable width
var transcriptCols = []float64{10, 100, 22, 22, 26}

// RenderTranscript writes the yearly transcript as a PDF.
func RenderTranscript(w io.Writer, data TranscriptData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr("TRANSKRIP MUTABA'AH"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Tahun %d", data.Year), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 11)
	for _, line := range [][2]string{
		{"Nama", data.Employee.Name},
		{"NIP", data.Employee.Code},
		{"Unit", data.Employee.Unit},
		{"Jabatan", data.Employee.Position},
	} {
		pdf.CellFormat(30, 7, line[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, tr(": "+line[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.SetTextColor(255, 255, 255)
	for i, title := range []string{"No", "Kegiatan", "Capaian", "Target", "Persentase"} {
		pdf.CellFormat(transcriptCols[i], 8, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)

	for _, cat := range data.Scorecard.Categories {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(categoryFill[0], categoryFill[1], categoryFill[2])
		label := fmt.Sprintf("%s  (nilai %d, %s / %s)", cat.Category, cat.Score, cat.Grade, cat.GradePoint.StringFixed(1))
		pdf.CellFormat(sum(transcriptCols), 7, tr(label), "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for i, a := range cat.Activities {
			pdf.CellFormat(transcriptCols[0], 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
			pdf.CellFormat(transcriptCols[1], 7, tr(a.Title), "1", 0, "L", false, 0, "")
			pdf.CellFormat(transcriptCols[2], 7, fmt.Sprintf("%d", a.Achieved), "1", 0, "C", false, 0, "")
			pdf.CellFormat(transcriptCols[3], 7, fmt.Sprintf("%d", a.Target), "1", 0, "C", false, 0, "")
			pdf.CellFormat(transcriptCols[4], 7, fmt.Sprintf("%d%%", a.Percentage), "1", 1, "C", false, 0, "")
		}
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(50, 7, "Indeks Komposit", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, ": "+data.Scorecard.CompositeIndex.StringFixed(2), "", 1, "L", false, 0, "")
	pdf.CellFormat(50, 7, "Predikat", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr(": "+string(data.Scorecard.Predicate)), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(50, 7, "Bulan disetujui", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf(": %d dari 12", len(data.Scorecard.CountedMonths)), "", 1, "L", false, 0, "")
	pdf.Ln(12)

	signX := 120.0
	pdf.SetX(signX)
	pdf.CellFormat(0, 6, "Dicetak "+data.GeneratedAt.Format("02-01-2006"), "", 1, "L", false, 0, "")
	pdf.SetX(signX)
	pdf.CellFormat(0, 6, "Mengetahui,", "", 1, "L", false, 0, "")
	pdf.Ln(18)
	pdf.SetX(signX)
	pdf.SetFont("Arial", "BU", 10)
	signatory := data.Signatory
	if signatory == "" {
		signatory = "(.............................)"
	}
	pdf.CellFormat(0, 6, tr(signatory), "", 1, "L", false, 0, "")

	return pdf.Output(w)
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
