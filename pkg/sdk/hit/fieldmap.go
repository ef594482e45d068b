package hit

import "strings"

// FieldMap is an ordered set of protocol parameters for one hit.
// Keys are unique; merging an existing key replaces its value in place.
type FieldMap struct {
	keys   []string
	values map[string]string
}

// NewFieldMap creates a FieldMap holding fields.
func NewFieldMap(fields ...Field) *FieldMap {
	m := &FieldMap{values: make(map[string]string, len(fields))}
	m.Merge(fields...)
	return m
}

// Merge inserts or overwrites each field, converting values to strings.
func (m *FieldMap) Merge(fields ...Field) {
	if m.values == nil {
		m.values = make(map[string]string, len(fields))
	}
	for _, f := range fields {
		if _, exists := m.values[f.Key]; !exists {
			m.keys = append(m.keys, f.Key)
		}
		m.values[f.Key] = stringify(f.Value)
	}
}

// Get returns the value stored for key.
func (m *FieldMap) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *FieldMap) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

func (m *FieldMap) Len() int {
	return len(m.keys)
}

// String serializes the map as key=value pairs joined with '&', without
// escaping.
func (m *FieldMap) String() string {
	return m.join(func(s string) string { return s })
}

// Encode serializes the map like String but percent-encodes keys and values.
func (m *FieldMap) Encode() string {
	return m.join(escape)
}

func (m *FieldMap) join(esc func(string) string) string {
	var b strings.Builder
	for i, k := range m.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(esc(k))
		b.WriteByte('=')
		b.WriteString(esc(m.values[k]))
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

// escape percent-encodes s, leaving the encodeURIComponent unreserved set
// (A-Z a-z 0-9 - _ . ! ~ * ' ( )) untouched.
func escape(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			buf = append(buf, c)
			continue
		}
		buf = append(buf, '%', upperhex[c>>4], upperhex[c&15])
	}
	return string(buf)
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
