package panel

import (
	"strconv"

	"github.com/rflorenc/cloud-resource-workbench/internal/models"
)

const (
	BuiltinPlugin = "Built-in"
	SyncInterval  = "Sync interval: 20 min"
	// SwitchOff is the glyph of a switch in the off position.
	SwitchOff = "○──"
)

// Column is one column of the resource table.
type Column struct {
	Label    string
	Field    string
	Disabled bool
	render   func(row models.ResourceCount) string
}

// Render returns the cell text of row in this column.
func (c Column) Render(row models.ResourceCount) string {
	return c.render(row)
}

var columns = []Column{
	{
		Label: "Resource Name",
		Field: "type",
		render: func(row models.ResourceCount) string {
			return row.Type.DisplayName()
		},
	},
	{
		Label: "Plugin Type",
		render: func(models.ResourceCount) string {
			return BuiltinPlugin
		},
	},
	{
		Label: "Resource Count",
		Field: "count",
		render: func(row models.ResourceCount) string {
			return strconv.Itoa(row.Count)
		},
	},
	{
		Label:    "Accessed",
		Disabled: true,
		render: func(models.ResourceCount) string {
			return SwitchOff + " " + SyncInterval
		},
	},
}

// Columns returns the table columns in display order.
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}
