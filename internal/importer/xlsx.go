package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook читает xlsx-файл и возвращает таблицу ячеек
// выбранного листа.
//
// Политика выбора листа: предпочитается лист, в названии которого
// встречается маркер сценария ("сценарий"/"scenario", без учёта
// регистра), иначе берётся первый лист книги.
func ReadWorkbook(r io.Reader, pats Patterns) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(selectSheet(sheets, pats))
	if err != nil {
		return nil, fmt.Errorf("read sheet rows: %w", err)
	}
	return rows, nil
}

// selectSheet выбирает лист со сценарием.
func selectSheet(sheets []string, pats Patterns) string {
	for _, name := range sheets {
		lower := strings.ToLower(name)
		for _, marker := range pats.SheetMarkers {
			if strings.Contains(lower, strings.ToLower(marker)) {
				return name
			}
		}
	}
	return sheets[0]
}
