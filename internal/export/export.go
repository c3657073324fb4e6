// Package export renders the ledger as downloadable spreadsheets.
package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"entregas/internal/domain"
)

// Format is a ledger export format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// columns is the header row shared by every format.
var columns = []string{
	"ID",
	"Nome",
	"Endereço",
	"Telefone",
	"Produto",
	"Valor",
	"Data",
	"Fiado",
}

// ParseFormat maps a query value to a Format. An empty value means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidFormat, s)
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Write renders deliveries to w in format f.
func Write(w io.Writer, f Format, deliveries []domain.Delivery) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, deliveries)
	case FormatXLSX:
		return WriteXLSX(w, deliveries)
	}
	return fmt.Errorf("%w: %q", domain.ErrInvalidFormat, string(f))
}

func deliveryToRow(d *domain.Delivery) []string {
	return []string{
		fmt.Sprintf("%d", d.ID),
		d.Name,
		d.Address,
		d.Phone,
		d.Product,
		d.Amount.StringFixed(2),
		d.Date.Format("2006-01-02"),
		formatBool(d.OnCredit),
	}
}

func formatBool(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a tenant name for use in Content-Disposition.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "caderno"
	}
	return s
}

// BuildFilename returns {tenant}_caderno_{YYYY-MM-DD}.{ext}.
func BuildFilename(tenant string, day time.Time, f Format) string {
	return fmt.Sprintf("%s_caderno_%s.%s", SanitizeFilename(tenant), day.Format("2006-01-02"), f)
}
