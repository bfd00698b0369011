// Copyright 2019 The go-language-server Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonrpc2

import "encoding/json"

// paramsKind distinguishes the three shapes a request's params member can
// take on the wire: absent, a positional array, or a named object.
type paramsKind uint8

const (
	paramsNone paramsKind = iota
	paramsPositional
	paramsNamed
)

// Params is a JSON-RPC params member. JSON-RPC 1.0 only ever allows the
// positional form; JSON-RPC 2.0 allows either. Keeping the wire shape
// around (rather than decoding eagerly into Go values) lets Dispatch defer
// per-method argument binding to call time, mirroring the original's
// isinstance(params, list) / isinstance(params, dict) branch in
// dispacher.py's dispatch().
type Params struct {
	kind  paramsKind
	array []json.RawMessage
	named map[string]json.RawMessage
}

// NoParams is the absent params value.
var NoParams = Params{kind: paramsNone}

// PositionalParams builds a Params from a raw JSON array's elements.
func PositionalParams(args []json.RawMessage) Params {
	return Params{kind: paramsPositional, array: args}
}

// NamedParams builds a Params from a raw JSON object's members.
func NamedParams(args map[string]json.RawMessage) Params {
	return Params{kind: paramsNamed, named: args}
}

// IsNone reports whether params was absent from the wire request.
func (p Params) IsNone() bool { return p.kind == paramsNone }

// IsPositional reports whether params was a JSON array.
func (p Params) IsPositional() bool { return p.kind == paramsPositional }

// IsNamed reports whether params was a JSON object.
func (p Params) IsNamed() bool { return p.kind == paramsNamed }

// Positional returns the array elements. It is only meaningful when
// IsPositional reports true.
func (p Params) Positional() []json.RawMessage { return p.array }

// Named returns the object members. It is only meaningful when IsNamed
// reports true.
func (p Params) Named() map[string]json.RawMessage { return p.named }

// Len reports the number of positional or named arguments, or 0 for
// NoParams.
func (p Params) Len() int {
	switch p.kind {
	case paramsPositional:
		return len(p.array)
	case paramsNamed:
		return len(p.named)
	default:
		return 0
	}
}
