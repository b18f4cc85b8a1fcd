package property

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rflorenc/cloud-resource-workbench/internal/enumor"
)

type record map[string]interface{}

func (r record) FieldValue(id string) (interface{}, bool) {
	v, ok := r[id]
	return v, ok
}

func TestFilter_Validate(t *testing.T) {
	props := TaskProperties()
	tests := []struct {
		name    string
		filter  *Filter
		wantErr bool
	}{
		{"nil", nil, false},
		{"overlaps", &Filter{Rules: []Rule{{Field: "operations", Op: enumor.JSONOverlaps, Value: []interface{}{"bind_rs"}}}}, false},
		{"state in", &Filter{Op: enumor.And, Rules: []Rule{{Field: "state", Op: enumor.In, Value: []interface{}{"running", "failed"}}}}, false},
		{"time range", &Filter{Rules: []Rule{{Field: "created_at", Op: enumor.GreaterEqual, Value: "2024-01-01 00:00:00"}}}, false},
		{"unknown field", &Filter{Rules: []Rule{{Field: "vendor", Op: enumor.Equal, Value: "aws"}}}, true},
		{"bad logic op", &Filter{Op: "xor"}, true},
		{"op not allowed", &Filter{Rules: []Rule{{Field: "created_at", Op: enumor.In, Value: []interface{}{"x"}}}}, true},
		{"not an option", &Filter{Rules: []Rule{{Field: "state", Op: enumor.In, Value: []interface{}{"sleeping"}}}}, true},
		{"empty array", &Filter{Rules: []Rule{{Field: "source", Op: enumor.In, Value: []interface{}{}}}}, true},
		{"bad time", &Filter{Rules: []Rule{{Field: "created_at", Op: enumor.LessEqual, Value: "yesterday"}}}, true},
		{"missing value", &Filter{Rules: []Rule{{Field: "creator", Op: enumor.Equal}}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.filter.Validate(props)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFilter_Match(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := record{
		"created_at": created,
		"operations": []string{"create_listener", "bind_rs"},
		"source":     "api",
		"creator":    "alice",
		"state":      "running",
	}

	tests := []struct {
		name   string
		filter *Filter
		expect bool
	}{
		{"no rules", &Filter{}, true},
		{"overlap hit", &Filter{Rules: []Rule{{Field: "operations", Op: enumor.JSONOverlaps, Value: []interface{}{"bind_rs", "unbind_rs"}}}}, true},
		{"overlap miss", &Filter{Rules: []Rule{{Field: "operations", Op: enumor.JSONOverlaps, Value: []interface{}{"unbind_rs"}}}}, false},
		{"eq any operation", &Filter{Rules: []Rule{{Field: "operations", Op: enumor.Equal, Value: "bind_rs"}}}, true},
		{"eq no operation", &Filter{Rules: []Rule{{Field: "operations", Op: enumor.Equal, Value: "unbind_rs"}}}, false},
		{"in operations", &Filter{Rules: []Rule{{Field: "operations", Op: enumor.In, Value: []interface{}{"sync_resource", "create_listener"}}}}, true},
		{"neq present operation", &Filter{Rules: []Rule{{Field: "operations", Op: enumor.NotEqual, Value: "bind_rs"}}}, false},
		{"neq absent operation", &Filter{Rules: []Rule{{Field: "operations", Op: enumor.NotEqual, Value: "unbind_rs"}}}, true},
		{"in", &Filter{Rules: []Rule{{Field: "creator", Op: enumor.In, Value: []interface{}{"bob", "alice"}}}}, true},
		{"eq", &Filter{Rules: []Rule{{Field: "source", Op: enumor.Equal, Value: "api"}}}, true},
		{"neq", &Filter{Rules: []Rule{{Field: "source", Op: enumor.NotEqual, Value: "api"}}}, false},
		{"after", &Filter{Rules: []Rule{{Field: "created_at", Op: enumor.GreaterEqual, Value: "2024-02-01T00:00:00Z"}}}, true},
		{"before", &Filter{Rules: []Rule{{Field: "created_at", Op: enumor.LessEqual, Value: "2024-02-01T00:00:00Z"}}}, false},
		{"and", &Filter{Op: enumor.And, Rules: []Rule{
			{Field: "source", Op: enumor.Equal, Value: "api"},
			{Field: "state", Op: enumor.Equal, Value: "failed"},
		}}, false},
		{"or", &Filter{Op: enumor.Or, Rules: []Rule{
			{Field: "source", Op: enumor.Equal, Value: "excel"},
			{Field: "state", Op: enumor.Equal, Value: "running"},
		}}, true},
		{"missing field", &Filter{Rules: []Rule{{Field: "vendor", Op: enumor.Equal, Value: "aws"}}}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.filter.Match(rec))
		})
	}
}
