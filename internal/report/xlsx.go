package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-ocr/internal/invoice"
)

const xlsxSheet = "Invoice"

func renderXLSX(rec *invoice.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	write := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(xlsxSheet, cell, v)
	}

	if err := write(1, 1, "Field"); err != nil {
		return nil, err
	}
	if err := write(2, 1, "Value"); err != nil {
		return nil, err
	}
	for i, fld := range rec.Fields() {
		row := i + 2
		if err := write(1, row, Label(fld.Key)); err != nil {
			return nil, err
		}
		// values stay strings: "1,250.00" and "0042" must not be coerced
		if err := write(2, row, fld.Value); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(xlsxSheet, "A", "A", 18)
	_ = f.SetColWidth(xlsxSheet, "B", "B", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
