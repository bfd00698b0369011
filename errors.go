// Copyright 2019 The go-language-server Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonrpc2

import (
	"fmt"

	"golang.org/x/xerrors"
)

// Error represents a JSON-RPC error, as carried in a Response's error
// field or returned from a Dispatcher/Processor operation.
type Error struct {
	// Code indicates the error category.
	Code Code `json:"code"`
	// Message is a short, human readable description.
	Message string `json:"message"`

	frame xerrors.Frame
	err   error
}

var _ error = (*Error)(nil)

// Error implements error.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Format implements fmt.Formatter.
func (e *Error) Format(s fmt.State, c rune) {
	xerrors.FormatError(e, s, c)
}

// FormatError implements xerrors.Formatter.
func (e *Error) FormatError(p xerrors.Printer) (next error) {
	if e.Message == "" {
		p.Printf("code=%v", e.Code)
	} else {
		p.Printf("%s (code=%v)", e.Message, e.Code)
	}
	e.frame.Format(p)
	return e.err
}

// Unwrap implements xerrors.Wrapper.
func (e *Error) Unwrap() error {
	return e.err
}

// NewError builds an Error for the supplied code and message.
func NewError(c Code, message string) *Error {
	e := &Error{
		Code:    c,
		Message: message,
		frame:   xerrors.Caller(1),
	}
	e.err = xerrors.New(message)
	return e
}

// Errorf builds an Error for the supplied code, format and args.
func Errorf(c Code, format string, args ...interface{}) *Error {
	e := &Error{
		Code:    c,
		Message: fmt.Sprintf(format, args...),
		frame:   xerrors.Caller(1),
	}
	e.err = xerrors.New(e.Message)
	return e
}

// list of sentinel JSON-RPC errors, mirroring the package-level wire
// error values common across JSON-RPC server implementations.
var (
	ErrMethodNotFound = NewError(MethodNotFound, "method not found")
	ErrInvalidRequest = NewError(InvalidRequest, "invalid request")
	ErrInvalidParams  = NewError(InvalidParams, "invalid params")
	ErrInternal       = NewError(InternalError, "internal error")
	ErrInvalidEvent   = NewError(InvalidEvent, "invalid event")
)

// DecodeError is raised by Decode/decodeOne when a request cannot be fully
// parsed. It still carries whatever shell of the request was recoverable —
// notably its id — so the Processor can echo that id when it synthesizes
// an error Response.
//
// DecodeError is also used as a per-element placeholder in a decoded batch:
// the Processor turns each DecodeError into its own error Response without
// aborting the sibling elements.
type DecodeError struct {
	Kind      Code
	Message   string
	PartialID *ID
}

var _ error = (*DecodeError)(nil)

// Error implements error.
func (e *DecodeError) Error() string {
	return e.Message
}

// AsError converts a DecodeError into the wire *Error it should be
// reported as.
func (e *DecodeError) AsError() *Error {
	return NewError(e.Kind, e.Message)
}

func newDecodeError(kind Code, partial *ID, format string, args ...interface{}) *DecodeError {
	return &DecodeError{
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		PartialID: partial,
	}
}
