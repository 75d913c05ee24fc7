package cli

import (
	"errors"
	"fmt"

	"mindit-cli/internal/mutate"
)

func errNotFound(kind, id string) error {
	return mutate.NotFoundError{Kind: kind, ID: id}
}

type usageError struct {
	flag string
	msg  string
}

func (e usageError) Error() string {
	return fmt.Sprintf("invalid --%s: %s", e.flag, e.msg)
}

// isNotFound reports whether err is a missing map or node.
func isNotFound(err error) bool {
	var nf mutate.NotFoundError
	return errors.As(err, &nf)
}
