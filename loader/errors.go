package loader

import (
	"errors"
	"fmt"
	"io"
)

// ErrTooManyErrors is reported once an ErrorCollector reaches MaxErrors.
var ErrTooManyErrors = errors.New("too many errors")

type ErrorCollector struct {
	// Errors collected so far, in the order they were added
	Errors []error

	// Max errors before loading stops
	// 0 => no limit
	MaxErrors int
}

func (f *ErrorCollector) HasErrors() bool {
	return len(f.Errors) > 0
}

// Full reports whether MaxErrors has been reached.
func (f *ErrorCollector) Full() bool {
	return f.MaxErrors > 0 && len(f.Errors) >= f.MaxErrors
}

func (f *ErrorCollector) PrintErrors(w io.Writer) {
	for _, err := range f.Errors {
		fmt.Fprintln(w, err)
	}
}

// AddErrors records errs, ignoring nils.  Errors past MaxErrors are dropped
// and ErrTooManyErrors is returned.
func (f *ErrorCollector) AddErrors(errs ...error) error {
	for _, err := range errs {
		if err == nil {
			continue
		}
		if f.Full() {
			return ErrTooManyErrors
		}
		f.Errors = append(f.Errors, err)
	}
	return nil
}

func (f *ErrorCollector) Errorf(format string, args ...any) error {
	return f.AddErrors(fmt.Errorf(format, args...))
}

// Err joins everything collected into a single error, or nil.
func (f *ErrorCollector) Err() error {
	return errors.Join(f.Errors...)
}
