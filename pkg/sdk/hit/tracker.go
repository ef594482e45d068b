package hit

// Tracker holds the parameters of a single hit until it is serialized.
// The zero value is an empty hit ready to use.
type Tracker struct {
	fields *FieldMap
}

// NewTracker creates a Tracker from free-form fields.
func NewTracker(fields ...Field) *Tracker {
	return &Tracker{fields: NewFieldMap(fields...)}
}

// Append merges fields into the hit and returns the same Tracker.
func (t *Tracker) Append(fields ...Field) *Tracker {
	t.Fields().Merge(fields...)
	return t
}

// Fields exposes the underlying FieldMap.
func (t *Tracker) Fields() *FieldMap {
	if t.fields == nil {
		t.fields = NewFieldMap()
	}
	return t.fields
}

// Body returns the encoded wire line for this hit.
func (t *Tracker) Body() string {
	if t.fields == nil {
		return ""
	}
	return t.fields.Encode()
}
