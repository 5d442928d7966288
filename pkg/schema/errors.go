package schema

import "fmt"

// ValidationError is a single structural defect found in a document.
type ValidationError struct {
	Kind   string // what is wrong: "duplicate-id", "unknown-kind", ...
	Ref    string // the offending component or connector id
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Kind, e.Ref, e.Reason)
}

// AggregateError collects every defect found in one validation pass.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// ValidationErrors unwraps an AggregateError into its individual defects,
// or nil when err is anything else.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}
