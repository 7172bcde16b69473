// Package export renders jobs as spreadsheet quotes.
package export

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"glassquote/internal/models"
)

const quoteSheet = "Quote"

var lineHeader = []string{"Description", "Quantity", "Sq Ft", "Unit Price", "Subtotal"}

// JobQuote writes a one-sheet workbook with the job header, one row per
// itemized cost and the pricing totals.
func JobQuote(job models.Job) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(quoteSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(quoteSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to find sheet: %w", err)
	}
	f.SetActiveSheet(index)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	moneyFmt := "$#,##0.00"
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	header := [][2]any{
		{"Job Number", job.JobNumber},
		{"Customer", job.Customer.Name},
		{"Phone", models.FormatPhoneNumber(job.Customer.Phone)},
		{"Address", job.Customer.Address},
		{"Status", string(job.Status)},
		{"Created", job.CreatedAt.Format("2006-01-02")},
	}
	for i, kv := range header {
		if err := setRow(f, i+1, kv[0], kv[1]); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(quoteSheet, "A1", fmt.Sprintf("A%d", len(header)), bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	headerRow := len(header) + 2
	titles := make([]any, len(lineHeader))
	for i, title := range lineHeader {
		titles[i] = title
	}
	if err := setRow(f, headerRow, titles...); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(quoteSheet, cell(1, headerRow), cell(len(lineHeader), headerRow), bold); err != nil {
		return nil, fmt.Errorf("failed to style line header: %w", err)
	}

	row := headerRow + 1
	for _, item := range job.Pricing.ItemizedCosts {
		if err := setRow(f, row, item.Description, item.Quantity, item.SquareFeet, item.UnitPrice, item.Subtotal); err != nil {
			return nil, err
		}
		row++
	}
	if row > headerRow+1 {
		if err := f.SetCellStyle(quoteSheet, cell(4, headerRow+1), cell(5, row-1), money); err != nil {
			return nil, fmt.Errorf("failed to style lines: %w", err)
		}
	}

	p := job.Pricing
	totals := [][2]any{
		{"Subtotal", p.Subtotal},
		{"Discount", p.Discount},
		{fmt.Sprintf("Tax (%s%%)", formatPercent(p.TaxRate)), p.Tax},
		{"Total", p.Total},
	}
	row++
	for _, kv := range totals {
		if err := f.SetCellValue(quoteSheet, cell(4, row), kv[0]); err != nil {
			return nil, fmt.Errorf("failed to set totals: %w", err)
		}
		if err := f.SetCellValue(quoteSheet, cell(5, row), kv[1]); err != nil {
			return nil, fmt.Errorf("failed to set totals: %w", err)
		}
		if err := f.SetCellStyle(quoteSheet, cell(5, row), cell(5, row), money); err != nil {
			return nil, fmt.Errorf("failed to style totals: %w", err)
		}
		row++
	}
	if err := f.SetCellStyle(quoteSheet, cell(4, row-1), cell(4, row-1), bold); err != nil {
		return nil, fmt.Errorf("failed to style total: %w", err)
	}

	for col, width := range []float64{48, 10, 10, 14, 14} {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(quoteSheet, name, name, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	buf := new(bytes.Buffer)
	if _, err := f.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func setRow(f *excelize.File, row int, values ...any) error {
	for i, v := range values {
		if err := f.SetCellValue(quoteSheet, cell(i+1, row), v); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell(i+1, row), err)
		}
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func formatPercent(rate float64) string {
	return decimal.NewFromFloat(rate).Shift(2).String()
}
