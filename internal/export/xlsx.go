// Package export renders work sessions as an XLSX workbook for download.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/profitrider/backend/internal/model"
)

const sheetName = "Sessions"

var headers = []string{
	"Date", "Start", "End", "Duration (h)", "Platform ID", "Orders",
	"Distance (km)", "Gross Earnings", "Tips", "Total Earnings",
	"Fuel", "Rent", "Depreciation", "Other", "Platform Fees", "Application Fee",
	"Tax Estimate", "Net Profit", "Profit/h", "Profit/km", "Profit/Order",
}

// SessionsXLSX writes one row per session, raw inputs first, derived fields
// after, in the same order the dashboard presents them.
func SessionsXLSX(w io.Writer, sessions []model.WorkSession) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for rowIdx, s := range sessions {
		platform := ""
		if s.Platform != nil {
			platform = fmt.Sprintf("%d", *s.Platform)
		}

		values := []any{
			s.Date.Format(time.DateOnly),
			s.StartTime.String(),
			s.EndTime.String(),
			s.DurationHours.InexactFloat64(),
			platform,
			s.TotalOrders,
			s.TotalDistanceKm.InexactFloat64(),
			s.GrossEarnings.InexactFloat64(),
			s.Tips.InexactFloat64(),
			s.TotalEarnings.InexactFloat64(),
			s.FuelCost.InexactFloat64(),
			s.VehicleRent.InexactFloat64(),
			s.DepreciationCost.InexactFloat64(),
			s.OtherExpenses.InexactFloat64(),
			s.PlatformFees.InexactFloat64(),
			s.ApplicationFee.InexactFloat64(),
			s.TaxEstimate.InexactFloat64(),
			s.NetProfit.InexactFloat64(),
			s.ProfitPerHour.InexactFloat64(),
			s.ProfitPerKm.InexactFloat64(),
			s.ProfitPerOrder.InexactFloat64(),
		}

		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	_, err = f.WriteTo(w)
	return err
}
