package loader

import (
	"errors"
	"fmt"

	"hermannm.dev/enumnames"
)

type LoadErrorKind int8

const (
	SourceNotFound LoadErrorKind = iota + 1
	ParseFailure
)

var loadErrorKindNames = enumnames.NewMap(map[LoadErrorKind]string{
	SourceNotFound: "SOURCE_NOT_FOUND",
	ParseFailure:   "PARSE_FAILURE",
})

func (kind LoadErrorKind) String() string {
	return loadErrorKindNames.GetNameOrFallback(kind, "INVALID_LOAD_ERROR_KIND")
}

func (kind LoadErrorKind) MarshalJSON() ([]byte, error) {
	return loadErrorKindNames.MarshalToNameJSON(kind)
}

// Returned by Load when the source cannot produce a table at all. Rows that fail coercion
// are not errors; they are left out of the table.
type LoadError struct {
	Kind   LoadErrorKind
	Source string
	Cause  error
}

func (err *LoadError) Error() string {
	switch err.Kind {
	case SourceNotFound:
		return fmt.Sprintf("data source '%s' not found", err.Source)
	default:
		if err.Cause == nil {
			return fmt.Sprintf("failed to load data from '%s'", err.Source)
		}
		return fmt.Sprintf("failed to load data from '%s': %v", err.Source, err.Cause)
	}
}

func (err *LoadError) Unwrap() error {
	return err.Cause
}

func IsNotFound(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr) && loadErr.Kind == SourceNotFound
}

func IsParseFailure(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr) && loadErr.Kind == ParseFailure
}
