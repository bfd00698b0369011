// Copyright 2019 The go-language-server Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonrpc2 implements a transport-agnostic JSON-RPC 1.0 and 2.0
// server: decoding and encoding requests and responses (including
// batches), dispatching calls to registered methods, and a push-style
// event bus for server-initiated notifications.
//
// The package does not dial or listen for connections itself. Callers
// supply a Transport implementation for whatever carries the wire bytes
// (an HTTP handler, a WebSocket connection, anything else), and drive the
// pipeline by calling Processor.Process with each request body received.
//
// Build with the gojay tag to select the gojay-based wire codec instead
// of the default json-iterator backend:
//
//	go build -tags gojay ./...
package jsonrpc2
