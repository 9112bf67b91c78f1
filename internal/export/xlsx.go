package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpggio/coursegrid/internal/domain/lecture"
	"github.com/xuri/excelize/v2"
)

// SheetName returns the worksheet name of the i-th exported table.
func SheetName(i int) string {
	return fmt.Sprintf("시간표 %d", i+1)
}

// XLSX writes one worksheet per table: days across, time slots down, and the
// lecture title with its room in every cell the schedule covers.
func (s *Service) XLSX(tables []Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerateFailed, err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerateFailed, err)
	}

	for i, tbl := range tables {
		sheet := SheetName(i)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrGenerateFailed, err)
		}
		if err := writeSheet(f, sheet, tbl, headerStyle, cellStyle); err != nil {
			return nil, fmt.Errorf("%w: table %s: %w", ErrGenerateFailed, tbl.ID, err)
		}
	}
	if len(tables) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrGenerateFailed, err)
		}
		if idx, err := f.GetSheetIndex(SheetName(0)); err == nil && idx >= 0 {
			f.SetActiveSheet(idx)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("writing xlsx failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrGenerateFailed, err)
	}
	s.logger.Info("xlsx exported", "tables", len(tables), "bytes", buf.Len())
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, tbl Table, headerStyle, cellStyle int) error {
	days := lecture.Days()

	if err := f.SetColWidth(sheet, "A", "A", 14); err != nil {
		return err
	}
	last := colName(len(days) + 1)
	if err := f.SetColWidth(sheet, "B", last, 18); err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, "A1", tbl.ID); err != nil {
		return err
	}
	for i, day := range days {
		if err := f.SetCellValue(sheet, cell(i+2, 1), day); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", cell(len(days)+1, 1), headerStyle); err != nil {
		return err
	}
	for _, slot := range lecture.Slots() {
		if err := f.SetCellValue(sheet, cell(1, slot.ID+1), slot.Label); err != nil {
			return err
		}
	}

	texts := make(map[string][]string)
	for _, sc := range tbl.Schedules {
		col := lecture.DayIndex(sc.Day)
		if col < 0 {
			continue
		}
		for _, slot := range sc.Range {
			if slot < 1 || slot > lecture.SlotCount() {
				continue
			}
			ref := cell(col+2, slot+1)
			texts[ref] = append(texts[ref], cellText(sc))
		}
	}
	for ref, lines := range texts {
		if err := f.SetCellValue(sheet, ref, strings.Join(lines, "\n")); err != nil {
			return err
		}
	}
	return f.SetCellStyle(sheet, "B2", cell(len(days)+1, lecture.SlotCount()+1), cellStyle)
}

func colName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
