package enumor

import "fmt"

// QueryOp is a filter rule operator.
type QueryOp string

const (
	Equal        QueryOp = "eq"
	NotEqual     QueryOp = "neq"
	In           QueryOp = "in"
	GreaterEqual QueryOp = "gte"
	LessEqual    QueryOp = "lte"
	JSONOverlaps QueryOp = "json_overlaps"
)

// Validate the QueryOp is valid or not.
func (op QueryOp) Validate() error {
	switch op {
	case Equal, NotEqual, In, GreaterEqual, LessEqual, JSONOverlaps:
	default:
		return fmt.Errorf("unsupported query op: %s", op)
	}
	return nil
}

// LogicOp joins filter rules.
type LogicOp string

const (
	And LogicOp = "and"
	Or  LogicOp = "or"
)
