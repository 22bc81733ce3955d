package records

import (
	"encoding/json"
	"fmt"
)

// Disposition is the lifecycle status of a record.
type Disposition string

const (
	DispositionOpen   Disposition = "open"
	DispositionClosed Disposition = "closed"
)

// Color values the shaper cares about.
const (
	ColorRed    = "red"
	ColorBlue   = "blue"
	ColorYellow = "yellow"
)

// PageItems is the number of records in one page.
const PageItems = 10

var primaryColors = []string{ColorRed, ColorBlue, ColorYellow}

// IsPrimaryColor reports whether color is red, blue or yellow.
func IsPrimaryColor(color string) bool {
	for _, c := range primaryColors {
		if c == color {
			return true
		}
	}
	return false
}

// Record is one item of the /records collection.
//
// Fields other than id, color and disposition are kept verbatim in Extra
// and written back out by MarshalJSON. The records endpoint serves integer
// ids; a record with a non-numeric id fails to decode.
type Record struct {
	ID          int
	Color       string
	Disposition Disposition
	Extra       map[string]json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return errNullRecord
	}

	var out Record
	if raw, ok := fields["id"]; ok {
		if err := json.Unmarshal(raw, &out.ID); err != nil {
			return fmt.Errorf("record id: %w", err)
		}
		delete(fields, "id")
	}
	if raw, ok := fields["color"]; ok {
		if err := json.Unmarshal(raw, &out.Color); err != nil {
			return fmt.Errorf("record color: %w", err)
		}
		delete(fields, "color")
	}
	if raw, ok := fields["disposition"]; ok {
		if err := json.Unmarshal(raw, &out.Disposition); err != nil {
			return fmt.Errorf("record disposition: %w", err)
		}
		delete(fields, "disposition")
	}
	if len(fields) > 0 {
		out.Extra = fields
	}

	*r = out
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.fields())
}

func (r Record) fields() map[string]any {
	m := make(map[string]any, len(r.Extra)+3)
	for k, v := range r.Extra {
		m[k] = v
	}
	m["id"] = r.ID
	m["color"] = r.Color
	m["disposition"] = r.Disposition
	return m
}

// OpenRecord is a record with disposition "open", annotated with whether
// its color is primary.
type OpenRecord struct {
	Record
	IsPrimary bool
}

// MarshalJSON implements json.Marshaler.
func (o OpenRecord) MarshalJSON() ([]byte, error) {
	m := o.Record.fields()
	m["isPrimary"] = o.IsPrimary
	return json.Marshal(m)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OpenRecord) UnmarshalJSON(data []byte) error {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	var primary bool
	if raw, ok := rec.Extra["isPrimary"]; ok {
		if err := json.Unmarshal(raw, &primary); err != nil {
			return fmt.Errorf("record isPrimary: %w", err)
		}
		delete(rec.Extra, "isPrimary")
		if len(rec.Extra) == 0 {
			rec.Extra = nil
		}
	}

	*o = OpenRecord{Record: rec, IsPrimary: primary}
	return nil
}

// Options selects the page and colors to retrieve.
type Options struct {
	// Page is 1-indexed. Zero means page 1.
	Page int

	// Colors filters the result set. Empty means all colors.
	Colors []string
}

func (o Options) page() int {
	if o.Page < 1 {
		return 1
	}
	return o.Page
}

// Result is the client-facing summary of one page.
type Result struct {
	PreviousPage       *int         `json:"previousPage"`
	NextPage           *int         `json:"nextPage"`
	IDs                []int        `json:"ids"`
	Open               []OpenRecord `json:"open"`
	ClosedPrimaryCount int          `json:"closedPrimaryCount"`
}
