// Package errs holds the error kinds shared across the pipeline.
// Concrete errors in other packages match one of these through errors.Is.
package errs

import "errors"

var (
	// ErrStructural marks malformed or contract-violating upstream output.
	// Always fatal, never retried.
	ErrStructural = errors.New("structural error")

	// ErrTransientService marks a failed remote call for a single turn.
	ErrTransientService = errors.New("transient service error")

	// ErrResource marks a local transcode or concatenate failure.
	ErrResource = errors.New("resource error")

	// ErrEmptySequence is returned when there is nothing to assemble.
	ErrEmptySequence = errors.New("empty sequence")

	// ErrRetrieval marks a failed source video download.
	ErrRetrieval = errors.New("retrieval error")
)
