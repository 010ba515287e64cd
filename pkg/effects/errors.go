package effects

import (
	"fmt"
	"regexp"
	"strconv"
)

// NotFoundError reports that an expected object change is absent.
type NotFoundError struct {
	Kind    string
	Pattern string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "object not found in transaction result"
	}
	kind := e.Kind
	if kind == "" {
		kind = "any"
	}
	return fmt.Sprintf("no %s object matching %q in transaction result", kind, e.Pattern)
}

// ExecutionError is a transaction the node executed with status failure.
type ExecutionError struct {
	Digest string
	// Raw is the node's error string.
	Raw string
	// AbortCode is set when the failure was a MoveAbort.
	AbortCode *uint64
	// Command is the index of the failing command, or -1.
	Command int
	Message string
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return "transaction failed"
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Digest != "" {
		return fmt.Sprintf("transaction %s failed: %s", e.Digest, e.Raw)
	}
	return fmt.Sprintf("transaction failed: %s", e.Raw)
}

// abortMessages maps contract abort codes to operator-facing text.
var abortMessages = map[uint64]string{
	1: "Sender is not authorized to access the Profile",
	2: "The object being received is not of the expected type.",
}

// AbortMessage returns the text for a known abort code.
func AbortMessage(code uint64) (string, bool) {
	message, ok := abortMessages[code]
	return message, ok
}

var abortPattern = regexp.MustCompile(`MoveAbort\(.*,\s*(\d+)\)\s+in command\s+(\d+)`)

func parseAbort(raw string) (*uint64, int) {
	match := abortPattern.FindStringSubmatch(raw)
	if match == nil {
		return nil, -1
	}
	code, err := strconv.ParseUint(match[1], 10, 64)
	if err != nil {
		return nil, -1
	}
	command, err := strconv.Atoi(match[2])
	if err != nil {
		command = -1
	}
	return &code, command
}
