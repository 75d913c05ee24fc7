package mutate

import (
	"errors"
	"fmt"
)

var ErrNoParent = errors.New("node has no parent")

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// InvalidOperationError is returned for structural edits the map does not allow,
// such as deleting or cutting the root node.
type InvalidOperationError struct {
	Op     string
	NodeID string
}

func (e InvalidOperationError) Error() string {
	switch e.Op {
	case "delete":
		return "the root node cannot be deleted"
	case "cut":
		return "the root node cannot be cut"
	default:
		return fmt.Sprintf("%s is not allowed on node %s", e.Op, e.NodeID)
	}
}
