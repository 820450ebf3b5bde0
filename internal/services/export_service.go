package services

import (
	"bytes"
	"fmt"

	"fleetops/internal/dutykey"
	"fleetops/internal/ledger"

	"github.com/xuri/excelize/v2"
)

var (
	LedgerSheetHeader  = []string{"Person ID", "Name", "Duties", "Gross", "Advances", "Advance Count", "Net"}
	DutySheetHeader    = []string{"Date", "Driver", "Vehicle", "Punch In", "Punch Out", "Total KM", "Daily Wage", "Fuel", "Toll/Parking", "Pick Up", "Drop"}
	OutsideSheetHeader = []string{"Date", "Car Number", "Model", "Owner", "Property", "Duty", "Drop Location", "Amount"}
)

const (
	ledgerSheet  = "Ledger"
	dutySheet    = "Duties"
	outsideSheet = "Outside Duties"
)

// LedgerWorkbook writes one row per person, a totals row and the duty list.
func LedgerWorkbook(rep LedgerReport, duties []DutyView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	header, err := headerStyle(f)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(rep.People)+1)
	for _, p := range rep.People {
		rows = append(rows, ledgerRow(p))
	}
	rows = append(rows, []any{"", "Total", rep.DutyCount, rep.Gross, rep.Advances, rep.AdvanceCount, rep.Net})
	if err := writeSheet(f, ledgerSheet, LedgerSheetHeader, rows, header); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(dutySheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	dutyRows := make([][]any, 0, len(duties))
	for _, d := range duties {
		out := ""
		if d.PunchOut != nil {
			out = d.PunchOut.Time
		}
		dutyRows = append(dutyRows, []any{
			d.Date, driverLabel(d.Driver.Name(), d.Driver.ID()), d.Vehicle, d.PunchIn.Time, out,
			d.TotalKM, d.DailyWage.Float(), d.FuelAmount.Float(), d.ParkingAmount.Float(),
			d.PickUpLocation, d.DropLocation,
		})
	}
	if err := writeSheet(f, dutySheet, DutySheetHeader, dutyRows, header); err != nil {
		return nil, err
	}
	return workbookBytes(f)
}

// OutsideDutiesWorkbook writes one row per outside duty, in list order.
func OutsideDutiesWorkbook(views []OutsideDutyView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", outsideSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	header, err := headerStyle(f)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(views))
	for _, v := range views {
		rows = append(rows, []any{
			v.DisplayDate, dutykey.KeyOf(v.OutsideDuty).Plate, v.Model, v.OwnerName, v.Property,
			v.DutyType, v.DropLocation, v.DutyAmount.Float(),
		})
	}
	if err := writeSheet(f, outsideSheet, OutsideSheetHeader, rows, header); err != nil {
		return nil, err
	}
	return workbookBytes(f)
}

func ledgerRow(p ledger.Ledger) []any {
	return []any{p.PersonID, p.PersonName, p.DutyCount, p.Gross, p.Advances, p.AdvanceCount, p.Net}
}

func driverLabel(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

func headerStyle(f *excelize.File) (int, error) {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return 0, fmt.Errorf("create header style: %w", err)
	}
	return style, nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any, style int) error {
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return nil
}

func workbookBytes(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
