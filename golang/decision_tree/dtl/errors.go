package dtl

import "github.com/pkg/errors"

var (
	// ErrEmptyTable is raised when a tree is fitted on a table without rows.
	ErrEmptyTable = errors.New("empty table")
	// ErrNoSplit is raised when an impure node has no eligible split candidate.
	ErrNoSplit = errors.New("no split candidate")
	// ErrFeatureIndexOutOfRange is raised when a feature vector is shorter than a split column.
	ErrFeatureIndexOutOfRange = errors.New("feature index out of range")
	// ErrDimensionMismatch is raised when features and target disagree in shape.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

//HandleError panics when err is not nil. It is meant for plumbing code where
//a failed file operation leaves nothing sensible to continue with.
func HandleError(err error) {
	if err != nil {
		panic(errors.WithStack(err))
	}
}
