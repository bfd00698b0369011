// +build gojay

// Copyright 2019 The go-language-server Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonrpc2

import (
	"encoding/json"

	"github.com/francoispqt/gojay"
)

// rawMessage is the wire-backend's raw JSON value type. gojay has no
// built-in analogue of encoding/json.RawMessage beyond EmbeddedJSON, which
// is itself a []byte and so converts freely to/from the
// encoding/json.RawMessage exposed on the public Response/Params API.
type rawMessage = gojay.EmbeddedJSON

// rawObject is a parsed JSON object with its member values left
// unmarshaled, keyed by member name. gojay has no reflection-based map
// decoding, so it is decoded by hand via UnmarshalerJSONObject with
// NKeys() == 0, meaning "keep consuming keys until the object closes".
type rawObject map[string]rawMessage

func (o *rawObject) NKeys() int { return 0 }

func (o *rawObject) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	var v gojay.EmbeddedJSON
	if err := dec.EmbeddedJSON(&v); err != nil {
		return err
	}
	if *o == nil {
		*o = make(rawObject)
	}
	(*o)[key] = v
	return nil
}

type rawMessageSlice []rawMessage

func (s *rawMessageSlice) UnmarshalJSONArray(dec *gojay.Decoder) error {
	var v gojay.EmbeddedJSON
	if err := dec.EmbeddedJSON(&v); err != nil {
		return err
	}
	*s = append(*s, v)
	return nil
}

func (s rawMessageSlice) IsNil() bool { return s == nil }

func (s rawMessageSlice) MarshalJSONArray(enc *gojay.Encoder) {
	for _, v := range s {
		val := v
		enc.AddEmbeddedJSON(&val)
	}
}

func unmarshalRawArray(data []byte) ([]rawMessage, error) {
	var s rawMessageSlice
	if err := gojay.UnmarshalJSONArray(data, &s); err != nil {
		return nil, err
	}
	return []rawMessage(s), nil
}

func unmarshalRawObject(data []byte) (rawObject, error) {
	var o rawObject
	if err := gojay.UnmarshalJSONObject(data, &o); err != nil {
		return nil, err
	}
	return o, nil
}

func unmarshalString(r rawMessage) (string, error) {
	var v string
	err := gojay.Unmarshal([]byte(r), &v)
	return v, err
}

func unmarshalInt64(r rawMessage) (int64, error) {
	var v int64
	err := gojay.Unmarshal([]byte(r), &v)
	return v, err
}

// encodeIDKey writes an id member the way each ID kind requires: omitted
// when absent, JSON null when explicitly null, otherwise the scalar.
func encodeIDKey(enc *gojay.Encoder, key string, id ID) {
	switch {
	case id.IsAbsent():
		return
	case id.IsNull():
		enc.AddNullKey(key)
	case id.IsString():
		enc.AddStringKey(key, id.str)
	case id.IsNumber():
		enc.AddInt64Key(key, id.num)
	}
}

// IsNil implements gojay.MarshalerJSONObject.
func (e *Error) IsNil() bool { return e == nil }

// MarshalJSONObject implements gojay.MarshalerJSONObject.
func (e *Error) MarshalJSONObject(enc *gojay.Encoder) {
	enc.AddInt64Key(keyCode, int64(e.Code))
	enc.AddStringKey(keyMessage, e.Message)
}

type wireResponseV1 struct {
	id     ID
	result json.RawMessage
	err    *Error
}

func (w wireResponseV1) IsNil() bool { return false }

func (w wireResponseV1) MarshalJSONObject(enc *gojay.Encoder) {
	encodeIDKey(enc, keyID, w.id)
	if len(w.result) > 0 {
		v := gojay.EmbeddedJSON(w.result)
		enc.AddEmbeddedJSONKey(keyResult, &v)
	} else {
		enc.AddNullKey(keyResult)
	}
	if w.err != nil {
		enc.AddObjectKey(keyError, w.err)
	} else {
		enc.AddNullKey(keyError)
	}
}

type wireResponseV2 struct {
	id     ID
	result json.RawMessage
	err    *Error
}

func (w wireResponseV2) IsNil() bool { return false }

func (w wireResponseV2) MarshalJSONObject(enc *gojay.Encoder) {
	enc.AddStringKey(keyJSONRPC, "2.0")
	encodeIDKey(enc, keyID, w.id)
	if len(w.result) > 0 {
		v := gojay.EmbeddedJSON(w.result)
		enc.AddEmbeddedJSONKey(keyResult, &v)
	}
	if w.err != nil {
		enc.AddObjectKey(keyError, w.err)
	}
}

func toWire(resp *Response) gojay.MarshalerJSONObject {
	if resp.Version == V2 {
		return wireResponseV2{id: resp.ID, result: resp.Result, err: resp.Err}
	}
	return wireResponseV1{id: resp.ID, result: resp.Result, err: resp.Err}
}

type wireResponseSlice []*Response

func (s wireResponseSlice) IsNil() bool { return s == nil }

func (s wireResponseSlice) MarshalJSONArray(enc *gojay.Encoder) {
	for _, r := range s {
		enc.AddObject(toWire(r))
	}
}

func marshalResponse(resp *Response) ([]byte, error) {
	return gojay.MarshalJSONObject(toWire(resp))
}

func marshalResponses(resps []*Response) ([]byte, error) {
	return gojay.MarshalJSONArray(wireResponseSlice(resps))
}

type wireEvent struct {
	name   string
	params json.RawMessage
}

func (w wireEvent) IsNil() bool { return false }

func (w wireEvent) MarshalJSONObject(enc *gojay.Encoder) {
	enc.AddStringKey(keyJSONRPC, "2.0")
	enc.AddStringKey(keyNotification, w.name)
	if len(w.params) > 0 {
		v := gojay.EmbeddedJSON(w.params)
		enc.AddEmbeddedJSONKey(keyParams, &v)
	}
}

func marshalEvent(e *Event) ([]byte, error) {
	params, err := marshalParams(e.Params)
	if err != nil {
		return nil, err
	}
	return gojay.MarshalJSONObject(wireEvent{name: e.Name, params: params})
}

func marshalParams(p Params) (json.RawMessage, error) {
	switch {
	case p.IsPositional():
		args := p.Positional()
		out := make(rawMessageSlice, len(args))
		for i, a := range args {
			out[i] = gojay.EmbeddedJSON(a)
		}
		b, err := gojay.MarshalJSONArray(out)
		return json.RawMessage(b), err
	case p.IsNamed():
		named := p.Named()
		out := make(rawObject, len(named))
		for k, v := range named {
			out[k] = gojay.EmbeddedJSON(v)
		}
		b, err := gojay.MarshalJSONObject(rawObjectMarshaler(out))
		return json.RawMessage(b), err
	default:
		return nil, nil
	}
}

// rawObjectMarshaler adapts a rawObject for encoding: gojay has no
// reflection-based map encoding, so named params are re-emitted key by
// key from the already-decoded raw values.
type rawObjectMarshaler rawObject

func (o rawObjectMarshaler) IsNil() bool { return o == nil }

func (o rawObjectMarshaler) MarshalJSONObject(enc *gojay.Encoder) {
	for k, v := range o {
		val := v
		enc.AddEmbeddedJSONKey(k, &val)
	}
}
