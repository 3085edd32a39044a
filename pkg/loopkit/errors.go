package loopkit

import "go.llib.dev/frameless/pkg/errorkit"

const (
	// ErrInvalidArgument is returned when a loop is constructed from a nil or empty source.
	ErrInvalidArgument errorkit.Error = "loopkit: invalid argument"
	// ErrUnsupportedOperation is returned by the element removing operations.
	// A loop's element list is append only, apart from RemoveCurrent during a traversal.
	ErrUnsupportedOperation errorkit.Error = "loopkit: unsupported operation"
)

func errUnsupported(op string) error {
	return ErrUnsupportedOperation.F("%s is not supported, loops are append only", op)
}
