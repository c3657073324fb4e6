package export

import (
	"encoding/csv"
	"io"

	"entregas/internal/domain"
)

// BOM makes Excel on Windows read the file as UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter wraps csv.Writer for exporting deliveries.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteDeliveries converts a batch of deliveries to rows and writes them.
func (w *CSVWriter) WriteDeliveries(deliveries []domain.Delivery) error {
	for i := range deliveries {
		if err := w.csv.Write(deliveryToRow(&deliveries[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// WriteCSV writes the BOM, the header and every delivery.
func WriteCSV(out io.Writer, deliveries []domain.Delivery) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewCSVWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteDeliveries(deliveries); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
