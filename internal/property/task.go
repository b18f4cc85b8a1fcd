package property

import "github.com/rflorenc/cloud-resource-workbench/internal/enumor"

// Task field ids.
const (
	TaskCreatedAt  = "created_at"
	TaskOperations = "operations"
	TaskSource     = "source"
	TaskCreator    = "creator"
	TaskState      = "state"
)

var taskProperties = List{
	{
		ID:    TaskCreatedAt,
		Name:  "Operation Time",
		Type:  DatetimeField,
		Index: 1,
	},
	{
		ID:     TaskOperations,
		Name:   "Task Type",
		Type:   EnumField,
		Index:  1,
		Option: enumor.TaskTypeOptions,
		Meta: &Meta{
			Search: &SearchMeta{Op: enumor.JSONOverlaps},
		},
	},
	{
		ID:     TaskSource,
		Name:   "Task Source",
		Type:   EnumField,
		Index:  1,
		Option: enumor.TaskSourceOptions,
	},
	{
		ID:    TaskCreator,
		Name:  "Operator",
		Type:  UserField,
		Index: 1,
	},
	{
		ID:     TaskState,
		Name:   "Task State",
		Type:   EnumField,
		Index:  1,
		Option: enumor.TaskStateOptions,
		Meta: &Meta{
			Display: &DisplayMeta{Appearance: "status"},
		},
	},
}

// TaskProperties returns the field descriptors of the task list view.
// The returned list is a copy and may be modified freely.
func TaskProperties() List {
	return taskProperties.clone()
}
