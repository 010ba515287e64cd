package rpc

import "fmt"

// Error is a JSON-RPC error object returned by the node.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Method  string `json:"-"`
}

func (e *Error) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: rpc error %d: %s", e.Method, e.Code, e.Message)
}

// ObjectError describes why a single object could not be read.
type ObjectError struct {
	Code     string `json:"code"`
	ObjectID string `json:"object_id,omitempty"`
	Version  any    `json:"version,omitempty"`
	Digest   string `json:"digest,omitempty"`
	Message  string `json:"error,omitempty"`
}

func (e ObjectError) String() string {
	if e.ObjectID == "" {
		return e.Code
	}
	return fmt.Sprintf("%s (%s)", e.Code, e.ObjectID)
}
