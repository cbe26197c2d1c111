package pipeline

import (
	"fmt"
)

// FormatError reports malformed user input such as --animate or --easing
// values. It is raised before any frame is captured.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid value %q: %s", e.Input, e.Reason)
}

// PreconditionError reports a failed pre-capture check, such as an
// unresolved encoder binary or a renderer that cannot animate.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

// CaptureError reports a failed frame capture. A single failed frame
// aborts the whole run.
type CaptureError struct {
	Frame int
	Err   error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture frame %d: %v", e.Frame, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// EncodingError reports a non-zero encoder process exit. StderrTail holds
// the last portion of the encoder's diagnostic stream to aid root-causing
// codec and container issues.
type EncodingError struct {
	ExitCode   int
	StderrTail string
	Err        error
}

func (e *EncodingError) Error() string {
	if e.StderrTail != "" {
		return fmt.Sprintf("encoder exited with code %d: %v\n%s", e.ExitCode, e.Err, e.StderrTail)
	}
	return fmt.Sprintf("encoder exited with code %d: %v", e.ExitCode, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// ResourceError reports a failure producing the final output file.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("output %s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
