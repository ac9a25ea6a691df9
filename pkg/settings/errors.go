package settings

import "fmt"

// ErrorKind classifies a ValidationError.
type ErrorKind int

const (
	// UnknownSetting means a key does not exist in the parameter catalog.
	UnknownSetting ErrorKind = iota
	// InvalidValue means a value is neither a number nor a legal Off token.
	InvalidValue
)

// ValidationError reports a problem in user-supplied settings. It is always
// raised locally, before any network call is made.
type ValidationError struct {
	Kind    ErrorKind
	Setting string
	Detail  string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case UnknownSetting:
		return fmt.Sprintf("settings: unknown setting %q", e.Setting)
	default:
		if e.Detail != "" {
			return fmt.Sprintf("settings: invalid value for %q: %s", e.Setting, e.Detail)
		}
		return fmt.Sprintf("settings: invalid value for %q", e.Setting)
	}
}

func unknownSetting(name string) *ValidationError {
	return &ValidationError{Kind: UnknownSetting, Setting: name}
}

func invalidValue(name, detail string) *ValidationError {
	return &ValidationError{Kind: InvalidValue, Setting: name, Detail: detail}
}
