// +build !gojay

// Copyright 2019 The go-language-server Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonrpc2

import (
	"encoding/json"

	jsoniter "github.com/json-iterator/go"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// rawMessage is the wire-backend's raw JSON value type. The default
// backend reuses encoding/json.RawMessage since json-iterator is built to
// be a drop-in, and doing so lets Params hand callers a standard
// json.RawMessage without an extra conversion.
type rawMessage = json.RawMessage

// rawObject is a parsed JSON object with its member values left
// unmarshaled, keyed by member name.
type rawObject map[string]rawMessage

func unmarshalRawArray(data []byte) ([]rawMessage, error) {
	var v []rawMessage
	err := api.Unmarshal(data, &v)
	return v, err
}

func unmarshalRawObject(data []byte) (rawObject, error) {
	var v rawObject
	err := api.Unmarshal(data, &v)
	return v, err
}

func unmarshalString(r rawMessage) (string, error) {
	var v string
	err := api.Unmarshal(r, &v)
	return v, err
}

func unmarshalInt64(r rawMessage) (int64, error) {
	var v int64
	err := api.Unmarshal(r, &v)
	return v, err
}

// wireResponseV1 is the 1.0 response shape: both members always present,
// the unused one left null.
type wireResponseV1 struct {
	ID     *ID             `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *Error          `json:"error"`
}

// wireResponseV2 is the 2.0 response shape: exactly one of result/error
// present, jsonrpc always "2.0".
type wireResponseV2 struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *ID             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

func toWire(resp *Response) interface{} {
	if resp.Version == V2 {
		return wireResponseV2{JSONRPC: "2.0", ID: idPtr(resp.ID), Result: resp.Result, Error: resp.Err}
	}
	return wireResponseV1{ID: idPtr(resp.ID), Result: resp.Result, Error: resp.Err}
}

func idPtr(id ID) *ID {
	if id.IsAbsent() {
		return nil
	}
	return &id
}

func marshalResponse(resp *Response) ([]byte, error) {
	return api.Marshal(toWire(resp))
}

func marshalResponses(resps []*Response) ([]byte, error) {
	wire := make([]interface{}, len(resps))
	for i, r := range resps {
		wire[i] = toWire(r)
	}
	return api.Marshal(wire)
}

// wireEvent is the non-standard push-notification wire shape.
type wireEvent struct {
	JSONRPC      string          `json:"jsonrpc"`
	Notification string          `json:"notification"`
	Params       json.RawMessage `json:"params,omitempty"`
}

func marshalEvent(e *Event) ([]byte, error) {
	params, err := marshalParams(e.Params)
	if err != nil {
		return nil, err
	}
	return api.Marshal(wireEvent{JSONRPC: "2.0", Notification: e.Name, Params: params})
}

func marshalParams(p Params) (json.RawMessage, error) {
	switch {
	case p.IsPositional():
		return api.Marshal(p.Positional())
	case p.IsNamed():
		return api.Marshal(p.Named())
	default:
		return nil, nil
	}
}

// MarshalJSON implements json.Marshaler for ID, used both directly by the
// json-iterator backend and indirectly through *ID's pointer semantics
// (nil pointer omitted for an absent id, non-nil pointer always encoded,
// including for the explicit null case).
func (id ID) MarshalJSON() ([]byte, error) {
	switch {
	case id.IsNull():
		return []byte("null"), nil
	case id.IsString():
		return json.Marshal(id.str)
	case id.IsNumber():
		return json.Marshal(id.num)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler for ID. Called even for a
// literal "null" value per encoding/json's Unmarshaler convention, which
// is how ID distinguishes "present and null" from "absent" on a *ID
// field: an absent field leaves the pointer nil without ever calling this
// method.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = NullID()
		return nil
	}
	s, err := unmarshalString(data)
	if err == nil {
		*id = NewStringID(s)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = NewNumberID(n)
	return nil
}
