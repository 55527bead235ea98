package skills

import "fmt"

// SynonymLoadError represents a failure to read or parse a synonym table.
type SynonymLoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *SynonymLoadError) Error() string {
	source := e.Source
	if source == "" {
		source = "(reader)"
	}
	if e.Cause != nil {
		return fmt.Sprintf("synonym table %s: %s: %v", source, e.Message, e.Cause)
	}
	return fmt.Sprintf("synonym table %s: %s", source, e.Message)
}

func (e *SynonymLoadError) Unwrap() error {
	return e.Cause
}
