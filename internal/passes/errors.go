package passes

import (
	"errors"
	"fmt"
)

// PassError represents a fatal or configuration error raised by a pass.
//
// Fatal errors abort the whole run: the module or the configuration is
// fundamentally incompatible with the requested transformation and no
// partial output is trustworthy. PassError carries structured fields naming
// the offending function, block, or option for diagnostics.
type PassError struct {
	// Code identifies the error category.
	Code PassErrorCode

	// Message is a human-readable description.
	Message string

	// Function names the affected function, when known.
	Function string

	// Block names the affected block, when known. May be empty even when
	// set deliberately: entry blocks have empty names.
	Block string

	// Option names the affected configuration option, when known.
	Option string
}

// PassErrorCode categorizes pass errors.
type PassErrorCode string

const (
	// ErrCodeMissingTerminator indicates a block without a terminator
	// instruction. The module is structurally malformed.
	ErrCodeMissingTerminator PassErrorCode = "MISSING_TERMINATOR"

	// ErrCodeHookNotFound indicates a required runtime hook routine is not
	// present in the module.
	ErrCodeHookNotFound PassErrorCode = "HOOK_NOT_FOUND"

	// ErrCodeROIBeginNotFound indicates the ROI entry function is missing
	// or has no body.
	ErrCodeROIBeginNotFound PassErrorCode = "ROI_BEGIN_NOT_FOUND"

	// ErrCodeROIMultiExit indicates the ROI entry function does not have
	// exactly one exit block.
	ErrCodeROIMultiExit PassErrorCode = "ROI_MULTI_EXIT"

	// ErrCodeMarkerNotFound indicates a configured marker block ID does not
	// correspond to any labeled block.
	ErrCodeMarkerNotFound PassErrorCode = "MARKER_NOT_FOUND"

	// ErrCodeNothingInstrumented indicates a pass that expected to
	// instrument at least one block instrumented none.
	ErrCodeNothingInstrumented PassErrorCode = "NOTHING_INSTRUMENTED"

	// ErrCodeSink indicates the descriptive-table sink could not be
	// written.
	ErrCodeSink PassErrorCode = "SINK_ERROR"

	// ErrCodeBadOption indicates a malformed, unknown, or unresolved
	// configuration option.
	ErrCodeBadOption PassErrorCode = "BAD_OPTION"
)

// Error implements the error interface.
func (e *PassError) Error() string {
	switch {
	case e.Function != "" && e.Block != "":
		return fmt.Sprintf("%s: %s (function=%s, block=%q)", e.Code, e.Message, e.Function, e.Block)
	case e.Function != "":
		return fmt.Sprintf("%s: %s (function=%s)", e.Code, e.Message, e.Function)
	case e.Option != "":
		return fmt.Sprintf("%s: %s (option=%s)", e.Code, e.Message, e.Option)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// ErrorCode extracts the PassErrorCode from an error chain. Returns the
// empty code when err is not a PassError.
func ErrorCode(err error) PassErrorCode {
	var pe *PassError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsOptionError reports whether err is a configuration-option error.
// Uses errors.As to handle wrapped errors.
func IsOptionError(err error) bool {
	return ErrorCode(err) == ErrCodeBadOption
}

// newOptionError creates a PassError for a configuration problem with the
// named option.
func newOptionError(option, message string) *PassError {
	return &PassError{Code: ErrCodeBadOption, Message: message, Option: option}
}

// newStructureError creates a fatal PassError for a block without a
// terminator.
func newStructureError(function, block string) *PassError {
	return &PassError{
		Code:     ErrCodeMissingTerminator,
		Message:  "block has no terminator instruction",
		Function: function,
		Block:    block,
	}
}

// newHookError creates a fatal PassError for a missing runtime hook.
func newHookError(hook string) *PassError {
	return &PassError{
		Code:     ErrCodeHookNotFound,
		Message:  "required hook routine not found in module",
		Function: hook,
	}
}
