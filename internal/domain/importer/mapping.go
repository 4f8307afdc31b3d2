package importer

// ColumnMapping binds canonical fields to zero-based column indices.
// A column can back at most one field.
type ColumnMapping map[Field]int

func (m ColumnMapping) Column(f Field) (int, bool) {
	col, ok := m[f]
	return col, ok
}

// FieldFor returns the field bound to column, if any.
func (m ColumnMapping) FieldFor(column int) (Field, bool) {
	for f, col := range m {
		if col == column {
			return f, true
		}
	}
	return "", false
}

func (m ColumnMapping) Bind(f Field, column int) error {
	if !f.IsValid() {
		return ErrUnknownField
	}
	if column < 0 {
		return ErrColumnOutOfRange
	}
	if other, ok := m.FieldFor(column); ok && other != f {
		return ErrColumnAlreadyBound
	}
	m[f] = column
	return nil
}

func (m ColumnMapping) Unbind(f Field) {
	delete(m, f)
}

// Missing lists unbound fields in canonical order.
func (m ColumnMapping) Missing() []Field {
	var missing []Field
	for _, f := range Fields {
		if _, ok := m[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

func (m ColumnMapping) IsComplete() bool {
	return len(m.Missing()) == 0
}

func (m ColumnMapping) Clone() ColumnMapping {
	out := make(ColumnMapping, len(m))
	for f, col := range m {
		out[f] = col
	}
	return out
}
