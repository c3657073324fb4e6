package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"entregas/internal/domain"
)

// SheetName is the worksheet holding the ledger.
const SheetName = "Caderno"

// WriteXLSX renders deliveries as a single-sheet workbook. Valor is stored as
// a number so spreadsheet formulas work on it.
func WriteXLSX(out io.Writer, deliveries []domain.Delivery) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	for i, h := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return err
		}
	}

	for i := range deliveries {
		d := &deliveries[i]
		row := deliveryToRow(d)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		values[0] = d.ID
		values[5] = d.Amount.InexactFloat64()

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
