// Copyright 2019 The go-language-server Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonrpc2

// Transport is the minimal contract a Dispatcher needs from whatever is
// carrying a request: just enough identity to key the subscriber tables.
// The HTTP handler, the WebSocket connection, or anything else sitting
// between the wire and this package implements it; this package never
// dials or listens for one itself.
type Transport interface {
	// TransportID returns a value that uniquely identifies this
	// connection for the lifetime of the process, used as the
	// subscriber-table key.
	TransportID() string
}

// EmitTransport is the subset of transports that can receive pushed
// Events. Not every Transport needs to support push delivery (a
// request/response-only HTTP handler, for instance, has nowhere to push
// to); Subscribe accepts only an EmitTransport, and an rpc.on call arriving
// on a Transport that does not implement it fails with InternalError.
// This mirrors the source
// implementation's duck-typed
// callable(getattr(transport, "emit_message", None)) check, expressed in
// Go as a type assertion instead of a runtime attribute probe.
type EmitTransport interface {
	Transport

	// EmitMessage delivers e to this transport. Returning an error marks
	// delivery to this subscriber as failed without affecting delivery to
	// any other subscriber of the same event.
	EmitMessage(e *Event) error
}
