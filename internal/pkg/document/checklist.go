package document

import (
	"fmt"
	"io"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/activity"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/performance"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/progress"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
	"github.com/xuri/excelize/v2"
)

type ChecklistData struct {
	Employee EmployeeHeader
	Month    calendar.MonthKey
	Groups   []activity.CategoryGroup
	Weeks    []calendar.WeekBucket
	Sheet    progress.Sheet
	// Scores holds the monthly result per activity id.
	Scores map[string]performance.ActivityScore
}

const (
	checkMark     = "✓"
	firstDayCol   = 3
	headerRow     = 5
	dayRow        = 6
	firstDataRow  = 7
	activityWidth = 40
)

// RenderChecklist writes the monthly checklist as an XLSX workbook: one row
// per activity and one column per day, grouped under week headers.
func RenderChecklist(w io.Writer, data ChecklistData) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := data.Month.String()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    borders(),
	})
	if err != nil {
		return err
	}
	categoryStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    borders(),
	})
	if err != nil {
		return err
	}

	days := data.Month.Days()
	lastDayCol := firstDayCol + days - 1
	totalCol := lastDayCol + 1
	pctCol := lastDayCol + 2

	set := func(col, row int, v any) {
		_ = f.SetCellValue(sheetName, cellName(col, row), v)
	}

	set(1, 1, "CEKLIS MUTABA'AH BULANAN")
	_ = f.MergeCell(sheetName, "A1", cellName(pctCol, 1))
	_ = f.SetCellStyle(sheetName, "A1", cellName(pctCol, 1), headerStyle)
	_ = f.SetRowHeight(sheetName, 1, 25)
	set(1, 2, fmt.Sprintf("Nama: %s (%s)", data.Employee.Name, data.Employee.Code))
	set(1, 3, fmt.Sprintf("Bulan: %s    Unit: %s", data.Month, data.Employee.Unit))

	set(1, headerRow, "Kegiatan")
	set(2, headerRow, "Target")
	_ = f.MergeCell(sheetName, cellName(1, headerRow), cellName(1, dayRow))
	_ = f.MergeCell(sheetName, cellName(2, headerRow), cellName(2, dayRow))
	for _, week := range data.Weeks {
		if len(week.Days) == 0 {
			continue
		}
		from := firstDayCol + week.Days[0] - 1
		to := firstDayCol + week.Days[len(week.Days)-1] - 1
		set(from, headerRow, fmt.Sprintf("Pekan %d", week.WeekIndex))
		if to > from {
			_ = f.MergeCell(sheetName, cellName(from, headerRow), cellName(to, headerRow))
		}
	}
	for day := 1; day <= days; day++ {
		set(firstDayCol+day-1, dayRow, day)
	}
	set(totalCol, headerRow, "Total")
	set(pctCol, headerRow, "Persentase")
	_ = f.MergeCell(sheetName, cellName(totalCol, headerRow), cellName(totalCol, dayRow))
	_ = f.MergeCell(sheetName, cellName(pctCol, headerRow), cellName(pctCol, dayRow))
	_ = f.SetCellStyle(sheetName, cellName(1, headerRow), cellName(pctCol, dayRow), headerStyle)

	month := data.Month.String()
	row := firstDataRow
	for _, group := range data.Groups {
		set(1, row, group.Category)
		_ = f.MergeCell(sheetName, cellName(1, row), cellName(pctCol, row))
		_ = f.SetCellStyle(sheetName, cellName(1, row), cellName(pctCol, row), categoryStyle)
		row++

		for _, a := range group.Activities {
			score := data.Scores[a.ID]
			set(1, row, a.Title)
			set(2, row, score.Target)
			for day := 1; day <= days; day++ {
				if data.Sheet.Has(month, calendar.DayKey(day), a.ID) {
					set(firstDayCol+day-1, row, checkMark)
				}
			}
			set(totalCol, row, score.Achieved)
			set(pctCol, row, fmt.Sprintf("%d%%", score.Percentage))
			_ = f.SetCellStyle(sheetName, cellName(2, row), cellName(pctCol, row), cellStyle)
			row++
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", activityWidth)
	_ = f.SetColWidth(sheetName, "B", "B", 8)
	_ = f.SetColWidth(sheetName, colName(firstDayCol), colName(lastDayCol), 4)
	_ = f.SetColWidth(sheetName, colName(totalCol), colName(pctCol), 11)
	_ = f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      2,
		YSplit:      dayRow,
		TopLeftCell: cellName(firstDayCol, firstDataRow),
		ActivePane:  "bottomRight",
	})

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func colName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}

func borders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#BFBFBF", Style: 1},
		{Type: "right", Color: "#BFBFBF", Style: 1},
		{Type: "top", Color: "#BFBFBF", Style: 1},
		{Type: "bottom", Color: "#BFBFBF", Style: 1},
	}
}
