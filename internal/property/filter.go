package property

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rflorenc/cloud-resource-workbench/internal/enumor"
)

// TimeLayout is the accepted datetime layout besides RFC 3339.
const TimeLayout = "2006-01-02 15:04:05"

// Rule is a single filter condition on one field.
type Rule struct {
	Field string         `json:"field"`
	Op    enumor.QueryOp `json:"op"`
	Value interface{}    `json:"value"`
}

// Filter combines rules with a logic operator. A nil or empty filter matches
// everything.
type Filter struct {
	Op    enumor.LogicOp `json:"op"`
	Rules []Rule         `json:"rules"`
}

// Record exposes the field values of a listed object.
// Supported value types are string, []string, time.Time, int and bool.
type Record interface {
	FieldValue(id string) (interface{}, bool)
}

var allowedOps = map[FieldType][]enumor.QueryOp{
	DatetimeField: {enumor.GreaterEqual, enumor.LessEqual},
	EnumField:     {enumor.Equal, enumor.NotEqual, enumor.In, enumor.JSONOverlaps},
	UserField:     {enumor.Equal, enumor.NotEqual, enumor.In},
	StringField:   {enumor.Equal, enumor.NotEqual, enumor.In},
	NumberField:   {enumor.Equal, enumor.NotEqual, enumor.In, enumor.GreaterEqual, enumor.LessEqual},
	BoolField:     {enumor.Equal, enumor.NotEqual},
}

// Validate checks the filter against the descriptors of the list it targets.
func (f *Filter) Validate(props List) error {
	if f == nil {
		return nil
	}
	switch f.Op {
	case "", enumor.And, enumor.Or:
	default:
		return fmt.Errorf("unsupported logic op: %s", f.Op)
	}

	var errs []error
	for i, r := range f.Rules {
		if err := r.validate(props); err != nil {
			errs = append(errs, fmt.Errorf("rule %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (r Rule) validate(props List) error {
	fd, ok := props.Lookup(r.Field)
	if !ok {
		return fmt.Errorf("unknown field: %q", r.Field)
	}
	if err := r.Op.Validate(); err != nil {
		return err
	}
	if !opAllowed(fd.Type, r.Op) {
		return fmt.Errorf("op %s is not allowed on %s field %s", r.Op, fd.Type, fd.ID)
	}

	switch r.Op {
	case enumor.In, enumor.JSONOverlaps:
		values, ok := stringSlice(r.Value)
		if !ok || len(values) == 0 {
			return fmt.Errorf("op %s on %s needs a non-empty string array", r.Op, fd.ID)
		}
		if fd.Type == EnumField {
			for _, v := range values {
				if !fd.HasOption(v) {
					return fmt.Errorf("%s is not an option of %s", v, fd.ID)
				}
			}
		}
	case enumor.GreaterEqual, enumor.LessEqual:
		if fd.Type == DatetimeField {
			if _, err := parseTime(r.Value); err != nil {
				return fmt.Errorf("field %s: %w", fd.ID, err)
			}
		} else if _, ok := toFloat(r.Value); !ok {
			return fmt.Errorf("op %s on %s needs a number", r.Op, fd.ID)
		}
	default:
		if r.Value == nil {
			return fmt.Errorf("field %s: value is required", fd.ID)
		}
		if fd.Type == EnumField {
			if s, ok := r.Value.(string); !ok || !fd.HasOption(s) {
				return fmt.Errorf("%v is not an option of %s", r.Value, fd.ID)
			}
		}
	}
	return nil
}

// Match evaluates the filter against rec. The filter must have been validated.
func (f *Filter) Match(rec Record) bool {
	if f == nil || len(f.Rules) == 0 {
		return true
	}
	if f.Op == enumor.Or {
		for _, r := range f.Rules {
			if r.match(rec) {
				return true
			}
		}
		return false
	}
	for _, r := range f.Rules {
		if !r.match(rec) {
			return false
		}
	}
	return true
}

func (r Rule) match(rec Record) bool {
	got, ok := rec.FieldValue(r.Field)
	if !ok {
		return false
	}

	// multi-valued fields match eq and in when any element does, and neq
	// only when no element equals the value
	have := values(got)
	switch r.Op {
	case enumor.Equal:
		return contains(have, scalarString(r.Value))
	case enumor.NotEqual:
		return !contains(have, scalarString(r.Value))
	case enumor.In, enumor.JSONOverlaps:
		want, _ := stringSlice(r.Value)
		for _, w := range want {
			if contains(have, w) {
				return true
			}
		}
		return false
	case enumor.GreaterEqual, enumor.LessEqual:
		return compare(got, r.Value, r.Op)
	}
	return false
}

func values(v interface{}) []string {
	if ss, ok := v.([]string); ok {
		return ss
	}
	return []string{scalarString(v)}
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func compare(got, want interface{}, op enumor.QueryOp) bool {
	var cmp int
	switch g := got.(type) {
	case time.Time:
		w, err := parseTime(want)
		if err != nil {
			return false
		}
		cmp = g.Compare(w)
	default:
		gf, ok1 := toFloat(got)
		wf, ok2 := toFloat(want)
		if !ok1 || !ok2 {
			return false
		}
		switch {
		case gf < wf:
			cmp = -1
		case gf > wf:
			cmp = 1
		}
	}
	if op == enumor.GreaterEqual {
		return cmp >= 0
	}
	return cmp <= 0
}

func opAllowed(t FieldType, op enumor.QueryOp) bool {
	for _, o := range allowedOps[t] {
		if o == op {
			return true
		}
	}
	return false
}

// stringSlice accepts both []string and the []interface{} produced by
// encoding/json.
func stringSlice(v interface{}) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []interface{}:
		out := make([]string, 0, len(s))
		for _, e := range s {
			str, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	}
	return nil, false
}

func scalarString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func parseTime(v interface{}) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			return ts, nil
		}
		ts, err := time.ParseInLocation(TimeLayout, t, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid datetime %q", t)
		}
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("invalid datetime %v", v)
}
