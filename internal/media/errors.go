package media

import (
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/dialogue-flow/internal/errs"
	"github.com/nguyentantai21042004/dialogue-flow/pkg/executor"
)

// ResourceError reports a failed local transcode or concatenation.
// Diagnostic carries the tool's stderr.
type ResourceError struct {
	Op         string
	Path       string
	Diagnostic string
	Err        error
}

func (e *ResourceError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	if e.Diagnostic != "" {
		msg += "\n" + e.Diagnostic
	}
	return msg
}

func (e *ResourceError) Unwrap() error { return e.Err }

func (e *ResourceError) Is(target error) bool { return target == errs.ErrResource }

func newResourceError(op, path string, err error) *ResourceError {
	re := &ResourceError{Op: op, Path: path, Err: err}
	var cmdErr *executor.CommandError
	if errors.As(err, &cmdErr) {
		re.Diagnostic = cmdErr.Stderr
		re.Err = cmdErr.Err
	}
	return re
}
