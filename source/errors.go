package source

import (
	"errors"
	"fmt"
)

// NetworkError reports a fetch that failed: transport error, bad status or unreadable body.
type NetworkError struct {
	URL    string
	Status int
	Cause  error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// ParseError reports a document that is structurally not what the site normally serves.
type ParseError struct {
	Stage string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause == nil {
		return "parse " + e.Stage
	}
	return fmt.Sprintf("parse %s: %v", e.Stage, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ExtractionError reports an element or pattern missing at a named hop of the resolution chain.
type ExtractionError struct {
	Hop   string
	Field string
	URL   string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: %s not found in %s", e.Hop, e.Field, e.URL)
}

func IsNetwork(err error) bool {
	var target *NetworkError
	return errors.As(err, &target)
}

func IsParse(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

func IsExtraction(err error) bool {
	var target *ExtractionError
	return errors.As(err, &target)
}
