// Copyright 2019 The go-language-server Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonrpc2

import (
	"bytes"
	"encoding/json"
)

// DecodedRequest is one element of a decoded request or batch. Exactly one
// of Request and Err is set. Keeping failures per-element (rather than
// aborting the whole batch) matches the decode/process split in the
// source implementation's jsonrpc.py: a broken sibling element becomes its
// own error Response instead of poisoning the rest of the batch.
type DecodedRequest struct {
	Request *Request
	Err     *DecodeError
}

// Decode parses a JSON-RPC request body, which may be a single request
// object or a batch array. batch reports which shape was found. topErr is
// set only when the body could not even be split into elements (bodies
// that are not valid JSON at all, an empty batch array, or a top-level
// value that is neither an object nor an array); element-level failures
// inside a batch are reported through each DecodedRequest.Err instead.
//
// pinned, when non-nil, rejects any request whose own "jsonrpc" member
// resolves to a version other than *pinned, with InvalidRequest, before
// Validate ever runs. Pass nil to accept either generation.
func Decode(data []byte, pinned *Version) (elems []DecodedRequest, batch bool, topErr *DecodeError) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, false, newDecodeError(ParseError, nil, "Parse error: empty request body")
	}

	switch trimmed[0] {
	case '[':
		raws, err := unmarshalRawArray(trimmed)
		if err != nil {
			return nil, true, newDecodeError(ParseError, nil, "Parse error: %v", err)
		}
		if len(raws) == 0 {
			return nil, true, newDecodeError(EmptyBatch, nil, "Invalid Request: empty batch")
		}
		elems = make([]DecodedRequest, len(raws))
		for i, raw := range raws {
			elems[i] = decodeOne([]byte(raw), pinned)
		}
		return elems, true, nil
	case '{':
		if _, err := unmarshalRawObject(trimmed); err != nil {
			return nil, false, newDecodeError(ParseError, nil, "Parse error: %v", err)
		}
		return []DecodedRequest{decodeOne(trimmed, pinned)}, false, nil
	default:
		if !json.Valid(trimmed) {
			return nil, false, newDecodeError(ParseError, nil, "Parse error: invalid JSON")
		}
		return nil, false, newDecodeError(InvalidRequest, nil, "Invalid Request: expected an object or an array")
	}
}

// decodeOne parses a single request object. It never returns an error
// directly: any failure is folded into the returned DecodedRequest.Err so
// batch processing can continue past it.
func decodeOne(data []byte, pinned *Version) DecodedRequest {
	obj, err := unmarshalRawObject(data)
	if err != nil {
		return DecodedRequest{Err: newDecodeError(ParseError, nil, "Parse error: %v", err)}
	}

	id, idErr := decodeIDField(obj)
	if idErr != nil {
		return DecodedRequest{Err: idErr}
	}

	version := V1
	wireVersion := "1.0"
	if raw, present := obj["jsonrpc"]; present {
		s, err := unmarshalString(raw)
		if err != nil {
			return DecodedRequest{Err: newDecodeError(InvalidRequest, &id, `Invalid Request: Invalid type for "jsonrpc"!`)}
		}
		wireVersion = s
		version = parseVersion(s, true)
	}

	if pinned != nil && version != *pinned {
		return DecodedRequest{Err: newDecodeError(InvalidRequest, &id, "Invalid Request: Refusing to handle version %s", wireVersion)}
	}

	method, methodErr := decodeMethodField(obj, &id)
	if methodErr != nil {
		return DecodedRequest{Err: methodErr}
	}

	params, paramsErr := decodeParamsField(obj, &id)
	if paramsErr != nil {
		return DecodedRequest{Err: paramsErr}
	}

	req := Request{Version: version, ID: id, Method: method, Params: params}
	if verr := req.Validate(); verr != nil {
		return DecodedRequest{Err: newDecodeError(verr.Code, &id, verr.Message)}
	}
	return DecodedRequest{Request: &req}
}

func decodeIDField(obj rawObject) (ID, *DecodeError) {
	raw, present := obj["id"]
	if !present {
		return ID{}, nil
	}
	b := bytes.TrimSpace([]byte(raw))
	if string(b) == "null" {
		return NullID(), nil
	}
	if len(b) > 0 && b[0] == '"' {
		s, err := unmarshalString(raw)
		if err != nil {
			return ID{}, newDecodeError(InvalidRequest, nil, `Invalid Request: Invalid type for "id"!`)
		}
		return NewStringID(s), nil
	}
	n, err := unmarshalInt64(raw)
	if err != nil {
		return ID{}, newDecodeError(InvalidRequest, nil, `Invalid Request: Invalid type for "id"!`)
	}
	return NewNumberID(n), nil
}

func decodeMethodField(obj rawObject, id *ID) (string, *DecodeError) {
	raw, present := obj["method"]
	if !present {
		return "", newDecodeError(InvalidRequest, id, `Invalid Request: Missing member "method"`)
	}
	s, err := unmarshalString(raw)
	if err != nil {
		return "", newDecodeError(InvalidRequest, id, `Invalid Request: Invalid type for "method"!`)
	}
	return s, nil
}

func decodeParamsField(obj rawObject, id *ID) (Params, *DecodeError) {
	raw, present := obj["params"]
	if !present {
		return NoParams, nil
	}
	b := bytes.TrimSpace([]byte(raw))
	switch {
	case len(b) == 0 || string(b) == "null":
		return NoParams, nil
	case b[0] == '[':
		arr, err := unmarshalRawArray(b)
		if err != nil {
			return Params{}, newDecodeError(InvalidRequest, id, `Invalid Request: Invalid type for "params"!`)
		}
		args := make([]json.RawMessage, len(arr))
		for i, r := range arr {
			args[i] = json.RawMessage([]byte(r))
		}
		return PositionalParams(args), nil
	case b[0] == '{':
		obj, err := unmarshalRawObject(b)
		if err != nil {
			return Params{}, newDecodeError(InvalidRequest, id, `Invalid Request: Invalid type for "params"!`)
		}
		named := make(map[string]json.RawMessage, len(obj))
		for k, v := range obj {
			named[k] = json.RawMessage([]byte(v))
		}
		return NamedParams(named), nil
	default:
		return Params{}, newDecodeError(InvalidRequest, id, `Invalid Request: Invalid type for "params"!`)
	}
}

// Encode serializes the responses produced for a decoded request or batch.
// A single, non-batch request yields a bare object; a batch yields a JSON
// array in the same order as the requests that produced it; an empty
// responses slice (every element was a silent notification) yields no
// body at all, matching the "notification-only batches produce no
// response" rule.
func Encode(responses []*Response, batch bool) ([]byte, error) {
	if len(responses) == 0 {
		return nil, nil
	}
	var (
		out []byte
		err error
	)
	if batch {
		out, err = marshalResponses(responses)
	} else {
		out, err = marshalResponse(responses[0])
	}
	if err != nil {
		return nil, err
	}
	return escapeHTML(out), nil
}

// EncodeEvent serializes a pushed Event.
func EncodeEvent(e *Event) ([]byte, error) {
	out, err := marshalEvent(e)
	if err != nil {
		return nil, err
	}
	return escapeHTML(out), nil
}

// escapeHTML rewrites "</" to "<\/" so a response embedded verbatim in an
// HTML <script> block can't prematurely close it. Mirrors jsonrpc.py's
// encode(), which applies the same rewrite unconditionally.
func escapeHTML(b []byte) []byte {
	return bytes.ReplaceAll(b, []byte("</"), []byte(`<\/`))
}
