package importer

import (
	"strings"
	"unicode"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/importer"
)

// fieldKeywords are matched against normalized headers, most specific first.
var fieldKeywords = map[importer.Field][]string{
	importer.FieldEmployeeID: {"employeeid", "empid", "id"},
	importer.FieldDate:       {"date", "day"},
	importer.FieldClockIn:    {"in", "start", "entry"},
	importer.FieldClockOut:   {"out", "end", "exit"},
}

// AutoMap guesses a column for every field from the header names. Fields
// are resolved in canonical order; each takes the first free column whose
// normalized header equals a keyword, falling back to the first free column
// containing one. A column is never bound twice.
func AutoMap(headers []string) importer.ColumnMapping {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	mapping := importer.ColumnMapping{}
	for _, field := range importer.Fields {
		if col, ok := matchColumn(normalized, mapping, fieldKeywords[field]); ok {
			_ = mapping.Bind(field, col)
		}
	}
	return mapping
}

func matchColumn(headers []string, mapping importer.ColumnMapping, keywords []string) (int, bool) {
	for _, kw := range keywords {
		for col, h := range headers {
			if h == kw && isFree(mapping, col) {
				return col, true
			}
		}
	}
	for _, kw := range keywords {
		for col, h := range headers {
			if h != "" && strings.Contains(h, kw) && isFree(mapping, col) {
				return col, true
			}
		}
	}
	return -1, false
}

func isFree(mapping importer.ColumnMapping, col int) bool {
	_, bound := mapping.FieldFor(col)
	return !bound
}

// normalizeHeader lowercases h and drops everything but letters and digits.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// applyBindings returns mapping with the requested overrides applied. Every
// mentioned field is released first so that two fields can swap columns in
// one request; a negative column leaves the field unbound.
func applyBindings(mapping importer.ColumnMapping, bindings map[importer.Field]int, width int) (importer.ColumnMapping, error) {
	next := mapping.Clone()
	for field := range bindings {
		if !field.IsValid() {
			return nil, importer.ErrUnknownField
		}
		next.Unbind(field)
	}

	for _, field := range importer.Fields {
		col, ok := bindings[field]
		if !ok || col < 0 {
			continue
		}
		if col >= width {
			return nil, importer.ErrColumnOutOfRange
		}
		if err := next.Bind(field, col); err != nil {
			return nil, err
		}
	}
	return next, nil
}
