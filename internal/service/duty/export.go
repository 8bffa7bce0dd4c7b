package duty

import (
	"bytes"
	"fmt"

	"github.com/fleetdesk/fleet-backend-go/internal/domain/duty"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const tripSheetName = "Trip Sheets"

var tripSheetHeaders = []string{
	"Session ID", "Driver ID", "Vehicle", "Start Time", "End Time",
	"Start Odometer", "End Odometer", "Distance", "Start Fuel", "End Fuel", "Fuel Consumed",
}

// writeTripSheets renders completed sessions as one worksheet, newest first.
func writeTripSheets(branchName string, sessions []duty.Session) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(tripSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	lastCol := colName(len(tripSheetHeaders) - 1)
	f.SetColWidth(tripSheetName, "A", "B", 38)
	f.SetColWidth(tripSheetName, "C", "C", 14)
	f.SetColWidth(tripSheetName, "D", "E", 22)
	f.SetColWidth(tripSheetName, "F", lastCol, 14)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	// Title
	f.SetCellValue(tripSheetName, "A1", fmt.Sprintf("%s - completed trip sheets", branchName))
	f.MergeCell(tripSheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(tripSheetName, "A1", "A1", headerStyle)

	// Header
	for i, h := range tripSheetHeaders {
		f.SetCellValue(tripSheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(tripSheetName, "A2", cell(lastCol, 2), headerStyle)

	row := 3
	for _, s := range sessions {
		values := []interface{}{
			s.ID,
			s.DriverID,
			s.VehicleID,
			s.StartTime.Format("2006-01-02 15:04"),
			"",
			s.StartOdometer.InexactFloat64(),
			floatOrBlank(s.EndOdometer),
			floatOrBlank(s.Distance),
			s.StartFuel.InexactFloat64(),
			floatOrBlank(s.EndFuel),
			floatOrBlank(s.FuelConsumed),
		}
		if s.EndTime != nil {
			values[4] = s.EndTime.Format("2006-01-02 15:04")
		}
		for i, v := range values {
			f.SetCellValue(tripSheetName, cell(colName(i), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func floatOrBlank(d *decimal.Decimal) interface{} {
	if d == nil {
		return ""
	}
	return d.InexactFloat64()
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
