package go_facturacom

import "strings"

// Record is a schema-less snapshot of a remote resource (a CFDI or a
// customer) hydrated from an API envelope.
//
// Field names are case-insensitive and stored lowercase, top-level and
// nested alike; nested JSON objects are wrapped as child Records so their
// fields stay key-accessible under the same rules. Values inside JSON
// arrays are kept as decoded.
//
// Refresh re-hydrates in place: fields missing from the new payload are
// cleared to nil (the key stays, its value becomes nil) so stale values
// never survive a reload. The parent back-reference is the one thing a
// refresh never touches.
type Record struct {
	parent *Record
	fields map[string]any
}

// NewRecord hydrates a Record from a decoded JSON object.
// A nil input yields an empty record.
func NewRecord(params map[string]any) *Record {
	r := &Record{fields: map[string]any{}}
	r.Refresh(params)
	return r
}

// Refresh re-hydrates the record from a new payload.
func (r *Record) Refresh(params map[string]any) {
	if r.fields == nil {
		r.fields = map[string]any{}
	}

	normalized := make(map[string]any, len(params))
	for key, value := range params {
		normalized[strings.ToLower(key)] = value
	}

	// Wipe stale fields: anything the new payload doesn't mention goes to nil.
	for key := range r.fields {
		if _, ok := normalized[key]; !ok {
			r.fields[key] = nil
		}
	}

	for key, value := range normalized {
		r.fields[key] = r.wrap(value)
	}
}

// wrap converts nested JSON objects into child Records.
func (r *Record) wrap(value any) any {
	switch v := value.(type) {
	case map[string]any:
		child := &Record{parent: r, fields: map[string]any{}}
		child.Refresh(v)
		return child
	case Params:
		return r.wrap(map[string]any(v))
	default:
		return value
	}
}

// Get returns the value stored under a field name (case-insensitive).
// The second result reports whether the field is present at all; a present
// field may still hold nil after a refresh wiped it.
func (r *Record) Get(key string) (any, bool) {
	if r == nil || r.fields == nil {
		return nil, false
	}
	v, ok := r.fields[strings.ToLower(key)]
	return v, ok
}

// GetString returns the field value rendered as a string, or "" when the
// field is absent or nil.
func (r *Record) GetString(key string) string {
	v, ok := r.Get(key)
	if !ok || v == nil {
		return ""
	}
	return anyToString(v)
}

// GetRecord returns a nested object field as a child Record.
func (r *Record) GetRecord(key string) (*Record, bool) {
	v, ok := r.Get(key)
	if !ok {
		return nil, false
	}
	child, ok := v.(*Record)
	return child, ok
}

// Set stores a field (name normalized to lowercase, objects wrapped).
func (r *Record) Set(key string, value any) {
	if r.fields == nil {
		r.fields = map[string]any{}
	}
	r.fields[strings.ToLower(key)] = r.wrap(value)
}

// UID returns the server-assigned identifier, if the record carries one.
// Instance-level operations (cancel, email, update) address records by it.
func (r *Record) UID() string {
	return r.GetString("uid")
}

// ID returns the id field preserved verbatim from the hydration input.
func (r *Record) ID() any {
	v, _ := r.Get("id")
	return v
}

// Parent returns the record this one is nested inside, if any.
func (r *Record) Parent() *Record {
	if r == nil {
		return nil
	}
	return r.parent
}

// Fields returns a shallow copy of the field map.
func (r *Record) Fields() map[string]any {
	if r == nil || r.fields == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}

// Len reports the number of fields, wiped ones included.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.fields)
}
