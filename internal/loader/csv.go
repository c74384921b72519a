package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"ssareport/pkg/models"
)

// LoadCSV reads a delimited export with the same positional layout as the
// spreadsheet form.
func (l *Loader) LoadCSV(path string) ([]models.ServiceOrder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = rune(l.cfg.Data.Delimiter[0])
	r.FieldsPerRecord = -1 // exports pad trailing columns inconsistently

	var orders []models.ServiceOrder
	rowNum := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s row %d: %w", path, rowNum+1, err)
		}
		rowNum++
		if rowNum <= l.cfg.Data.HeaderRow+1 {
			continue
		}
		if isEmptyRow(row) {
			continue
		}
		orders = append(orders, l.orderFromRow(row, rowNum))
	}

	if orders == nil {
		orders = []models.ServiceOrder{}
	}
	l.log.Info().Str("file", path).Int("orders", len(orders)).Msg("export loaded")
	return orders, nil
}
