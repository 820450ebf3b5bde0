package services

import (
	"bytes"
	"fmt"
	"time"

	"fleetops/internal/ledger"
	"fleetops/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// SettlementSlip renders the ledger of one person with the duties behind it.
// The filename is derived from the person and range.
func SettlementSlip(rep LedgerReport, duties []DutyView, generated time.Time) ([]byte, string, error) {
	var person ledger.Ledger
	if len(rep.People) > 0 {
		person = rep.People[0]
	}
	name := safe(person.PersonName, rep.Scope)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Settlement Slip", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SETTLEMENT SLIP")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Name      : %s", name),
		fmt.Sprintf("Person ID : %s", safe(rep.Scope, "-")),
		fmt.Sprintf("Period    : %s to %s", safe(rep.Range.From, "start"), safe(rep.Range.To, "today")),
		fmt.Sprintf("Duties    : %d (%.1f km)", rep.DutyCount, rep.TotalKM),
		fmt.Sprintf("Gross     : %s", utils.FormatRupees(rep.Gross)),
		fmt.Sprintf("Advances  : %s (%d)", utils.FormatRupees(rep.Advances), rep.AdvanceCount),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 9, fmt.Sprintf("Net Payable : %s", utils.FormatRupees(rep.Net)))
	pdf.Ln(12)

	if len(duties) > 0 {
		widths := []float64{28, 32, 24, 24, 22, 30}
		pdf.SetFont("Helvetica", "B", 10)
		for i, h := range []string{"Date", "Vehicle", "In", "Out", "KM", "Wage"} {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
		for _, d := range duties {
			out := "-"
			if d.PunchOut != nil {
				out = safe(d.PunchOut.Time, "-")
			}
			cells := []string{
				d.Date, safe(d.Vehicle, "-"), safe(d.PunchIn.Time, "-"), out,
				fmt.Sprintf("%.1f", d.TotalKM), utils.FormatMoney(d.DailyWage.Float()),
			}
			for i, c := range cells {
				pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, fmt.Sprintf("Generated %s. Net is gross wages minus advances and may be negative.",
		utils.FormatDateTime(generated)), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("slip-%s-%s.pdf", utils.SafeFilenamePart(name), utils.SafeFilenamePart(rep.Range.To))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
