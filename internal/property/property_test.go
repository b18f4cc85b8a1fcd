package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rflorenc/cloud-resource-workbench/internal/enumor"
)

func TestTaskProperties_Valid(t *testing.T) {
	props := TaskProperties()
	require.NoError(t, props.Validate())

	seen := map[string]bool{}
	for _, f := range props {
		assert.NotEmpty(t, f.ID)
		assert.False(t, seen[f.ID], "duplicate id %s", f.ID)
		seen[f.ID] = true
		if f.Option != nil {
			assert.NotEmpty(t, f.Option, "field %s has an empty option set", f.ID)
		}
	}
}

func TestTaskProperties_Order(t *testing.T) {
	var ids []string
	for _, f := range TaskProperties() {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"created_at", "operations", "source", "creator", "state"}, ids)
}

func TestTaskProperties_IsCopy(t *testing.T) {
	props := TaskProperties()
	props[0].Name = "changed"
	props[1].Option[0].Label = "changed"
	props[1].Meta.Search.Op = enumor.Equal

	fresh := TaskProperties()
	assert.Equal(t, "Operation Time", fresh[0].Name)
	assert.NotEqual(t, "changed", fresh[1].Option[0].Label)
	assert.Equal(t, enumor.JSONOverlaps, fresh[1].SearchOp())
}

func TestFieldDescriptor_SearchOp(t *testing.T) {
	props := TaskProperties()
	tests := []struct {
		id     string
		expect enumor.QueryOp
	}{
		{TaskCreatedAt, enumor.GreaterEqual},
		{TaskOperations, enumor.JSONOverlaps},
		{TaskSource, enumor.In},
		{TaskCreator, enumor.In},
		{TaskState, enumor.In},
	}
	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			f, ok := props.Lookup(tc.id)
			require.True(t, ok)
			assert.Equal(t, tc.expect, f.SearchOp())
		})
	}
}

func TestFieldDescriptor_Display(t *testing.T) {
	props := TaskProperties()
	state, _ := props.Lookup(TaskState)
	assert.Equal(t, "status", state.Appearance())
	assert.Equal(t, "Failed", state.OptionLabel("failed"))
	assert.Equal(t, "unknown", state.OptionLabel("unknown"))

	creator, _ := props.Lookup(TaskCreator)
	assert.Equal(t, "", creator.Appearance())
}

func TestList_Validate(t *testing.T) {
	tests := []struct {
		name    string
		list    List
		wantErr bool
	}{
		{"ok", List{{ID: "a"}, {ID: "b"}}, false},
		{"empty id", List{{ID: ""}}, true},
		{"duplicate", List{{ID: "a"}, {ID: "a"}}, true},
		{"empty option", List{{ID: "a", Type: EnumField, Option: []enumor.Option{}}}, true},
		{"bad search op", List{{ID: "a", Meta: &Meta{Search: &SearchMeta{Op: "like"}}}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.list.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
