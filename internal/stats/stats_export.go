package stats

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Monthly Stats"

var exportHeaders = []string{
	"Employee Number",
	"Employee Name",
	"Department",
	"Normal",
	"Late",
	"Absent",
	"Leave",
	"Total",
}

// writeWorkbook lays out one title row, one header row and one row per
// employee, in the order rows are given.
func writeWorkbook(year, month int, rows []MonthlyStat) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	f.SetColWidth(SheetName, "A", "A", 16)
	f.SetColWidth(SheetName, "B", "C", 24)
	f.SetColWidth(SheetName, "D", "H", 10)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	lastCol := colName(len(exportHeaders) - 1)
	f.SetCellValue(SheetName, "A1", fmt.Sprintf("Attendance %04d-%02d", year, month))
	f.MergeCell(SheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(SheetName, "A1", "A1", headerStyle)

	for i, h := range exportHeaders {
		f.SetCellValue(SheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(SheetName, "A2", cell(lastCol, 2), headerStyle)

	for i, r := range rows {
		row := i + 3
		dept := ""
		if r.DeptName != nil {
			dept = *r.DeptName
		}
		values := []any{
			r.EmployeeNumber,
			r.EmployeeName,
			dept,
			r.NormalDays,
			r.LateDays,
			r.AbsentDays,
			r.LeaveDays,
			r.TotalRecords,
		}
		for c, v := range values {
			f.SetCellValue(SheetName, cell(colName(c), row), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
