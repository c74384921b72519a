package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ssareport/internal/progress"
	"ssareport/pkg/models"
)

// LoadExcel reads an .xlsx/.xlsm export. The report header sits on the
// second row by default (the first row carries the export banner), so data
// starts at cfg.Data.HeaderRow+1.
func (l *Loader) LoadExcel(path string) ([]models.ServiceOrder, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open export %s: %w", path, err)
	}
	defer f.Close()

	sheet := l.cfg.Data.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("export %s has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	start := l.cfg.Data.HeaderRow + 1
	if start >= len(rows) {
		l.log.Warn().Str("file", path).Msg("export has no data rows")
		return []models.ServiceOrder{}, nil
	}

	spinner := progress.NewSpinner(fmt.Sprintf("Reading %s...", path))
	orders := make([]models.ServiceOrder, 0, len(rows)-start)
	for i, row := range rows[start:] {
		if isEmptyRow(row) {
			continue
		}
		orders = append(orders, l.orderFromRow(row, start+i+1))
		spinner.Tick()
	}
	spinner.Finish()

	l.log.Info().Str("file", path).Int("orders", len(orders)).Msg("export loaded")
	return orders, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
