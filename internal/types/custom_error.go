package types

import "fmt"

// CustomError is an HTTP-level error bubbled up to the global Fiber error
// handler, which renders its code and type in the error envelope.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
