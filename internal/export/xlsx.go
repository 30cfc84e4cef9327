package export

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/xuri/excelize/v2"

	"expenses/internal/core"
	"expenses/internal/report"
)

const (
	storeWorkbook = "workbook"

	sheetExpenses = "Expenses"
	sheetSummary  = "Summary"
)

// XLSX renders the workbook: one sheet with every expense, one with the
// per-category summary and a bar chart of the totals.
func XLSX(expenses []core.Expense) ([]byte, error) {
	xlsx := excelize.NewFile()
	defer xlsx.Close()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "expenses",
		DocSecurity: 2,
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	if err := xlsx.SetSheetName(sheet, sheetExpenses); err != nil {
		return nil, err
	}
	if err := writeExpensesSheet(xlsx, expenses); err != nil {
		return nil, err
	}

	if _, err := xlsx.NewSheet(sheetSummary); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(xlsx, report.Summarize(expenses)); err != nil {
		return nil, err
	}

	xlsx.SetActiveSheet(0)

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteXLSX renders the workbook to path.
func WriteXLSX(path string, expenses []core.Expense) error {
	data, err := XLSX(expenses)
	if err != nil {
		return core.NewWriteError(storeWorkbook, path, fmt.Errorf("render workbook: %w", err))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return core.NewWriteError(storeWorkbook, path, err)
	}
	return nil
}

func writeExpensesSheet(xlsx *excelize.File, expenses []core.Expense) error {
	sheet := sheetExpenses

	_ = xlsx.SetColWidth(sheet, "A", "A", 20)
	_ = xlsx.SetColWidth(sheet, "B", "C", 12)
	_ = xlsx.SetColWidth(sheet, "D", "D", 40)

	header, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), thickBorder("bottom")))
	money, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), amountFormat()))

	for i, h := range []string{"Category", "Amount", "Date", "Notes"} {
		_ = xlsx.SetCellValue(sheet, cell('A'+rune(i), 1), h)
	}
	_ = xlsx.SetCellStyle(sheet, cell('A', 1), cell('D', 1), header)

	row := 2
	for _, e := range expenses {
		_ = xlsx.SetCellValue(sheet, cell('A', row), e.Category)
		_ = xlsx.SetCellFloat(sheet, cell('B', row), e.Amount.Float(), -1, 64)
		_ = xlsx.SetCellValue(sheet, cell('C', row), e.Date)
		if e.Notes != "" {
			_ = xlsx.SetCellValue(sheet, cell('D', row), e.Notes)
		}
		row++
	}
	if row > 2 {
		_ = xlsx.SetCellStyle(sheet, cell('B', 2), cell('B', row-1), money)
	}

	return xlsx.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeSummarySheet(xlsx *excelize.File, s report.Summary) error {
	sheet := sheetSummary

	_ = xlsx.SetColWidth(sheet, "A", "A", 20)
	_ = xlsx.SetColWidth(sheet, "B", "C", 12)

	header, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), thickBorder("bottom")))
	money, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), amountFormat()))
	total, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), amountFormat(), thickBorder("top")))

	_ = xlsx.SetCellValue(sheet, "A1", "Category")
	_ = xlsx.SetCellValue(sheet, "B1", "Count")
	_ = xlsx.SetCellValue(sheet, "C1", "Total")
	_ = xlsx.SetCellStyle(sheet, "A1", "C1", header)

	if s.Empty {
		_ = xlsx.SetCellValue(sheet, "A2", "No expenses recorded")
		return nil
	}

	counts := make(map[string]int, len(s.Frequency))
	for _, cc := range s.Frequency {
		counts[cc.Name] = cc.Count
	}

	row := 2
	for _, ca := range s.ByCategory {
		_ = xlsx.SetCellValue(sheet, cell('A', row), ca.Name)
		_ = xlsx.SetCellInt(sheet, cell('B', row), counts[ca.Name])
		_ = xlsx.SetCellFloat(sheet, cell('C', row), ca.Amount.Float(), -1, 64)
		row++
	}
	last := row - 1
	_ = xlsx.SetCellStyle(sheet, "C2", cell('C', last), money)

	_ = xlsx.SetCellValue(sheet, cell('A', row), "Total")
	_ = xlsx.SetCellInt(sheet, cell('B', row), s.Count)
	_ = xlsx.SetCellFloat(sheet, cell('C', row), s.Total.Float(), -1, 64)
	_ = xlsx.SetCellStyle(sheet, cell('A', row), cell('C', row), total)

	return xlsx.AddChart(sheet, "E2", &excelize.Chart{
		Type: excelize.Bar,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$C$1", sheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheet, last),
			Values:     fmt.Sprintf("%s!$C$2:$C$%d", sheet, last),
		}},
		Title:    []excelize.RichTextRun{{Text: "Spending by category"}},
		Legend:   excelize.ChartLegend{Position: "none"},
		PlotArea: excelize.ChartPlotArea{ShowVal: true},
	})
}

func cell(col rune, row int) string {
	return fmt.Sprintf("%c%d", col, row)
}

func defaultStyle() *excelize.Style {
	return &excelize.Style{
		// solid white
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#FFFFFF"},
			Pattern: 1,
		},
	}
}

func amountFormat() *excelize.Style {
	fmt := "#,##0.00"
	return &excelize.Style{
		CustomNumFmt: &fmt,
	}
}

func fontBold() *excelize.Style {
	return &excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	}
}

func thickBorder(where ...string) *excelize.Style {
	s := &excelize.Style{}
	for _, w := range where {
		s.Border = append(s.Border, excelize.Border{
			Type:  w,
			Color: "#000000",
			Style: 2,
		})
	}
	return s
}

func mergeStyles(ext ...*excelize.Style) *excelize.Style {
	if len(ext) == 0 {
		return nil
	}
	for _, e := range ext[1:] {
		_ = mergo.Merge(ext[0], e, mergo.WithOverride)
	}
	return ext[0]
}
