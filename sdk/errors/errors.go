package sdkerrors

import (
	"fmt"
)

// APIError is returned when the block explorer answers with a non-success status.
type APIError struct {
	Status  string
	Message string
	Result  string
	URL     string
}

// Error returns the error message.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("explorer api error (status %s, msg: %s)", e.Status, e.Message)
	if e.Result != "" {
		msg += ": " + e.Result
	}

	return msg + "\n" + e.URL
}

func NewAPIError(status, message, result, url string) *APIError {
	return &APIError{Status: status, Message: message, Result: result, URL: url}
}

// RPCError is a JSON-RPC error returned through the explorer proxy module.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

func NewRPCError(code int, message string) *RPCError {
	return &RPCError{Code: code, Message: message}
}

// ChainIDMismatchError is returned when an RPC endpoint serves a different chain than the selected network.
type ChainIDMismatchError struct {
	Expected uint64
	Received uint64
}

func (e *ChainIDMismatchError) Error() string {
	return fmt.Sprintf("rpc endpoint serves chain id %d, expected %d", e.Received, e.Expected)
}

func NewChainIDMismatchError(expected, received uint64) *ChainIDMismatchError {
	return &ChainIDMismatchError{Expected: expected, Received: received}
}
