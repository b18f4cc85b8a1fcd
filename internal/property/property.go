// Package property holds the static field descriptors that list views use to
// label, filter and render their columns.
package property

import (
	"errors"
	"fmt"

	"github.com/rflorenc/cloud-resource-workbench/internal/enumor"
)

// FieldType is the value type of a described field.
type FieldType string

const (
	DatetimeField FieldType = "datetime"
	EnumField     FieldType = "enum"
	UserField     FieldType = "user"
	StringField   FieldType = "string"
	NumberField   FieldType = "number"
	BoolField     FieldType = "bool"
)

// SearchMeta overrides how a field is searched.
type SearchMeta struct {
	Op enumor.QueryOp `json:"op"`
}

// DisplayMeta overrides how a field is rendered.
type DisplayMeta struct {
	Appearance string `json:"appearance"`
}

// Meta is the optional per-field rendering and search configuration.
type Meta struct {
	Search  *SearchMeta  `json:"search,omitempty"`
	Display *DisplayMeta `json:"display,omitempty"`
}

// FieldDescriptor describes one displayable and filterable column.
type FieldDescriptor struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Type   FieldType       `json:"type"`
	Index  int             `json:"index"`
	Option []enumor.Option `json:"option,omitempty"`
	Meta   *Meta           `json:"meta,omitempty"`
}

// SearchOp returns the operator a plain search on this field uses.
func (f FieldDescriptor) SearchOp() enumor.QueryOp {
	if f.Meta != nil && f.Meta.Search != nil && f.Meta.Search.Op != "" {
		return f.Meta.Search.Op
	}
	switch f.Type {
	case EnumField, UserField:
		return enumor.In
	case DatetimeField:
		return enumor.GreaterEqual
	default:
		return enumor.Equal
	}
}

// Appearance returns the display appearance hint, or "" when unset.
func (f FieldDescriptor) Appearance() string {
	if f.Meta == nil || f.Meta.Display == nil {
		return ""
	}
	return f.Meta.Display.Appearance
}

// OptionLabel maps a raw value to its option label. Values outside the
// option set are returned unchanged.
func (f FieldDescriptor) OptionLabel(value string) string {
	for _, o := range f.Option {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// HasOption reports whether value belongs to the option set.
func (f FieldDescriptor) HasOption(value string) bool {
	for _, o := range f.Option {
		if o.Value == value {
			return true
		}
	}
	return false
}

func (f FieldDescriptor) clone() FieldDescriptor {
	out := f
	if f.Option != nil {
		out.Option = make([]enumor.Option, len(f.Option))
		copy(out.Option, f.Option)
	}
	if f.Meta != nil {
		m := Meta{}
		if f.Meta.Search != nil {
			s := *f.Meta.Search
			m.Search = &s
		}
		if f.Meta.Display != nil {
			d := *f.Meta.Display
			m.Display = &d
		}
		out.Meta = &m
	}
	return out
}

// List is an ordered set of field descriptors. The order is the default
// display order.
type List []FieldDescriptor

// Lookup finds a descriptor by id.
func (l List) Lookup(id string) (FieldDescriptor, bool) {
	for _, f := range l {
		if f.ID == id {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// Validate checks that every id is set and unique and that option sets,
// when present, are not empty.
func (l List) Validate() error {
	seen := make(map[string]bool, len(l))
	var errs []error
	for i, f := range l {
		if f.ID == "" {
			errs = append(errs, fmt.Errorf("field %d: empty id", i))
			continue
		}
		if seen[f.ID] {
			errs = append(errs, fmt.Errorf("field %s: duplicate id", f.ID))
		}
		seen[f.ID] = true
		if f.Option != nil && len(f.Option) == 0 {
			errs = append(errs, fmt.Errorf("field %s: empty option set", f.ID))
		}
		if f.Meta != nil && f.Meta.Search != nil {
			if err := f.Meta.Search.Op.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("field %s: %w", f.ID, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (l List) clone() List {
	out := make(List, len(l))
	for i, f := range l {
		out[i] = f.clone()
	}
	return out
}
