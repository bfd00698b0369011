// Copyright 2019 The go-language-server Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonrpc2

// Code is an error's category, as defined by the JSON-RPC spec.
type Code int64

// Standard JSON-RPC 2.0 error codes, plus the domain-specific codes this
// package adds for its event bus.
const (
	// ParseError means invalid JSON was received by the server.
	ParseError = Code(-32700)
	// InvalidRequest means the JSON sent is not a valid Request object.
	InvalidRequest = Code(-32600)
	// MethodNotFound means the method does not exist or is not available.
	MethodNotFound = Code(-32601)
	// InvalidParams means the method parameter(s) are invalid.
	InvalidParams = Code(-32602)
	// InternalError is a catch-all for unclassified handler errors.
	InternalError = Code(-32603)

	// InvalidEvent is raised by Subscribe/Unsubscribe/Emit for an unknown
	// or empty event name. This is a project-local extension, not part of
	// the JSON-RPC 2.0 spec.
	InvalidEvent = Code(-32000)

	// EmptyBatch is raised by Decode when a batch request array is empty.
	// It has no defined wire code of its own; it is reported as an
	// InvalidRequest on the wire.
	EmptyBatch = Code(-32600)
)
