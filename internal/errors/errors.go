// Package errors provides standardized error handling for twilight.
// It defines the error kinds raised by the tree, pager and configuration
// layers together with helpers for consistent creation, wrapping and
// inspection of those errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Filesystem error kinds
	PathNotFound
	PathUnreadable
	InvalidPath
	// Tree addressing error kinds
	StaleIndex
	EmptyListing
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Action error kinds
	ActionFailed
)

// String returns a short name for the kind, used in log fields.
func (k ErrorKind) String() string {
	switch k {
	case PathNotFound:
		return "path_not_found"
	case PathUnreadable:
		return "path_unreadable"
	case InvalidPath:
		return "invalid_path"
	case StaleIndex:
		return "stale_index"
	case EmptyListing:
		return "empty_listing"
	case InvalidConfig:
		return "invalid_config"
	case ConfigNotFound:
		return "config_not_found"
	case ActionFailed:
		return "action_failed"
	default:
		return "unknown"
	}
}

// Common error values for comparisons with Is.
var (
	ErrEmptyListing = &ApplicationError{msg: "listing is empty", kind: EmptyListing}
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to filesystem access
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// IndexError is raised when a tree index cannot be resolved against the
// tree it is applied to.
type IndexError struct {
	ApplicationError
	index string
	depth int
}

// NewIndexError creates a stale index error. index is the printed form of
// the offending index and depth the level at which resolution failed.
func NewIndexError(index string, depth int) *IndexError {
	return &IndexError{
		ApplicationError: ApplicationError{
			msg:  "stale tree index",
			kind: StaleIndex,
		},
		index: index,
		depth: depth,
	}
}

// Error returns the index error message
func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: %s: offset out of range at depth %d", e.msg, e.index, e.depth)
}

// Index returns the printed index that failed to resolve
func (e *IndexError) Index() string {
	return e.index
}

// Depth returns the level at which resolution failed
func (e *IndexError) Depth() int {
	return e.depth
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// NewKind creates a new error of the given kind
func NewKind(kind ErrorKind, msg string, err error) error {
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: kind,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the first application error in err's chain
// that carries a known kind.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(interface{ Kind() ErrorKind }); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsPathNotFound checks if the error is a path not found error
func IsPathNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == PathNotFound
	}
	return false
}

// IsPathUnreadable checks if the error is a path unreadable error
func IsPathUnreadable(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == PathUnreadable
	}
	return false
}

// IsStaleIndex checks if the error is a stale index error
func IsStaleIndex(err error) bool {
	var indexErr *IndexError
	return errors.As(err, &indexErr)
}

// IsEmptyListing checks if the error reports an empty listing
func IsEmptyListing(err error) bool {
	return KindOf(err) == EmptyListing
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}
