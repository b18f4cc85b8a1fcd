package enumor

import "fmt"

// TaskType is the operation a task performs.
type TaskType string

const (
	TaskSyncResource   TaskType = "sync_resource"
	TaskCreateClb      TaskType = "create_clb"
	TaskCreateListener TaskType = "create_listener"
	TaskBindRS         TaskType = "bind_rs"
	TaskUnbindRS       TaskType = "unbind_rs"
	TaskModifyRSWeight TaskType = "modify_rs_weight"
	TaskDeleteListener TaskType = "delete_listener"
)

// Validate the TaskType is valid or not.
func (t TaskType) Validate() error {
	for _, o := range TaskTypeOptions {
		if o.Value == string(t) {
			return nil
		}
	}
	return fmt.Errorf("unsupported task type: %s", t)
}

// TaskSource is where a task was submitted from.
type TaskSource string

const (
	TaskSourceAPI   TaskSource = "api"
	TaskSourceSops  TaskSource = "sops"
	TaskSourceExcel TaskSource = "excel"
)

// TaskState is the lifecycle state of a task.
type TaskState string

const (
	TaskRunning TaskState = "running"
	TaskSuccess TaskState = "success"
	TaskFailed  TaskState = "failed"
	TaskCancel  TaskState = "cancel"
)

// Finished reports whether the state is terminal.
func (s TaskState) Finished() bool {
	return s == TaskSuccess || s == TaskFailed || s == TaskCancel
}

// Option is one raw value and its label in an enumerated option set.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TaskTypeOptions lists the labels of every task type.
var TaskTypeOptions = []Option{
	{Value: string(TaskSyncResource), Label: "Sync Resources"},
	{Value: string(TaskCreateClb), Label: "Create Load Balancer"},
	{Value: string(TaskCreateListener), Label: "Create Listener"},
	{Value: string(TaskBindRS), Label: "Bind Backends"},
	{Value: string(TaskUnbindRS), Label: "Unbind Backends"},
	{Value: string(TaskModifyRSWeight), Label: "Modify Backend Weight"},
	{Value: string(TaskDeleteListener), Label: "Delete Listener"},
}

// TaskSourceOptions lists the labels of every task source.
var TaskSourceOptions = []Option{
	{Value: string(TaskSourceAPI), Label: "API"},
	{Value: string(TaskSourceSops), Label: "Standard Ops"},
	{Value: string(TaskSourceExcel), Label: "Excel Import"},
}

// TaskStateOptions lists the labels of every task state.
var TaskStateOptions = []Option{
	{Value: string(TaskRunning), Label: "Running"},
	{Value: string(TaskSuccess), Label: "Success"},
	{Value: string(TaskFailed), Label: "Failed"},
	{Value: string(TaskCancel), Label: "Cancelled"},
}
