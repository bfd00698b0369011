// Copyright 2019 The go-language-server Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonrpc2

import "encoding/json"

// Request is a decoded JSON-RPC call or notification, independent of wire
// encoding. Validate enforces the version-specific rules from the source
// implementation's JSONRPC1Request/JSONRPC2Request classes.
type Request struct {
	Version Version
	ID      ID
	Method  string
	Params  Params
}

// IsNotification reports whether r expects no Response. The two versions
// disagree on what marks a notification: 1.0 uses an explicit null id,
// 2.0 uses an absent id.
func (r Request) IsNotification() bool {
	switch r.Version {
	case V1:
		return r.ID.IsNull()
	case V2:
		return r.ID.IsAbsent()
	default:
		return false
	}
}

// Validate checks r against its version's structural rules, returning nil
// if r is well formed. The exact message text matches the source
// implementation's ValueError strings so golden responses stay stable.
func (r Request) Validate() *Error {
	if r.Method == "" {
		return NewError(InvalidRequest, `Invalid Request: Missing member "method"`)
	}
	switch r.Version {
	case V1:
		if !r.Params.IsPositional() {
			return NewError(InvalidRequest, `Invalid Request: Invalid type for "params"!`)
		}
		if r.ID.IsAbsent() {
			return NewError(InvalidRequest, `Invalid Request: Missing member "id"`)
		}
		return nil
	case V2:
		// Params absent, array, or object are all well formed for 2.0;
		// the decoder already rejects any other JSON type for params, and
		// any id shape (absent, null, string, number) is acceptable.
		return nil
	default:
		return NewError(InvalidRequest, `Invalid Request: Unsupported "jsonrpc" version`)
	}
}

// Response is a decoded JSON-RPC result or error, independent of wire
// encoding. Exactly one of Result and Err is set, except for 1.0 where the
// wire form carries both members with the unused one set to null.
type Response struct {
	Version Version
	ID      ID
	Result  json.RawMessage
	Err     *Error
}

// NewResultResponse builds a successful Response.
func NewResultResponse(version Version, id ID, result json.RawMessage) *Response {
	return &Response{Version: version, ID: id, Result: result}
}

// NewErrorResponse builds a failed Response.
func NewErrorResponse(version Version, id ID, err *Error) *Response {
	return &Response{Version: version, ID: id, Err: err}
}

// Event is the non-standard server-to-client push this package sends when
// a subscribed event fires. Its wire shape
// ({"jsonrpc":"2.0","notification":name,"params":...}) intentionally
// diverges from strict JSON-RPC 2.0 notification framing: it is not meant
// to interoperate with generic JSON-RPC 2.0 notification consumers.
type Event struct {
	Name   string
	Params Params
}
