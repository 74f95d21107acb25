// Package errors provides standardized error types and helpers for the Sanad codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a verse, surah, or resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrCorruptCorpus indicates the verse corpus is internally inconsistent
	ErrCorruptCorpus = errors.New("corrupt corpus")
	// ErrInvalidConfig indicates a configuration value is out of range
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrMalformedTag indicates a tagged quote span could not be parsed
	ErrMalformedTag = errors.New("malformed tag")
)

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "verse", "surah")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// RangeError represents a malformed verse range request.
// Raised when start > end or when either ayah falls outside the surah.
type RangeError struct {
	Surah   int    // Surah number requested
	Start   int    // First ayah requested
	End     int    // Last ayah requested
	Message string // Why the range is invalid
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range %d:%d-%d: %s", e.Surah, e.Start, e.End, e.Message)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidInput
}

// CorpusError represents an internally inconsistent corpus detected at
// index build time. A corrupt corpus cannot be safely served.
type CorpusError struct {
	Field   string // Field or invariant that failed (e.g., "id", "ordering")
	VerseID int    // Offending verse id, if known
	Message string // Human-readable error message
}

func (e *CorpusError) Error() string {
	if e.VerseID != 0 {
		return fmt.Sprintf("corpus inconsistency at verse %d: %s: %s", e.VerseID, e.Field, e.Message)
	}
	return fmt.Sprintf("corpus inconsistency: %s: %s", e.Field, e.Message)
}

func (e *CorpusError) Unwrap() error {
	return ErrCorruptCorpus
}

// ConfigError represents a configuration value rejected at construction time.
type ConfigError struct {
	Field   string // Configuration field name
	Value   string // Offending value
	Message string // Why it was rejected
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s=%s: %s", e.Field, e.Value, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// TagError represents a malformed tagged quote span. The processor skips
// the span and attaches the diagnostic rather than aborting the document.
type TagError struct {
	Format  string // Tag format being parsed (e.g., "xml", "markdown")
	Offset  int    // Byte offset of the span in the source text
	Message string // Error details
}

func (e *TagError) Error() string {
	return fmt.Sprintf("malformed %s tag at offset %d: %s", e.Format, e.Offset, e.Message)
}

func (e *TagError) Unwrap() error {
	return ErrMalformedTag
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "JSON", "SQLite", "manifest")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Helper functions for creating common errors

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewRange creates a RangeError
func NewRange(surah, start, end int, message string) *RangeError {
	return &RangeError{
		Surah:   surah,
		Start:   start,
		End:     end,
		Message: message,
	}
}

// NewCorpus creates a CorpusError
func NewCorpus(field string, verseID int, message string) *CorpusError {
	return &CorpusError{
		Field:   field,
		VerseID: verseID,
		Message: message,
	}
}

// NewConfig creates a ConfigError
func NewConfig(field, value, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewTag creates a TagError
func NewTag(format string, offset int, message string) *TagError {
	return &TagError{
		Format:  format,
		Offset:  offset,
		Message: message,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
