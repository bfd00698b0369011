// Copyright 2019 The go-language-server Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonrpc2

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_SingleRequest(t *testing.T) {
	elems, batch, topErr := Decode([]byte(`{"jsonrpc":"2.0","id":1,"method":"sum","params":[1,2]}`), nil)
	require.Nil(t, topErr)
	require.False(t, batch)
	require.Len(t, elems, 1)
	require.Nil(t, elems[0].Err)
	req := elems[0].Request
	assert.Equal(t, V2, req.Version)
	assert.Equal(t, "sum", req.Method)
	assert.True(t, req.ID.IsNumber())
	assert.True(t, req.Params.IsPositional())
	assert.Len(t, req.Params.Positional(), 2)
}

func TestDecode_NotObjectOrArray(t *testing.T) {
	_, batch, topErr := Decode([]byte(`42`), nil)
	require.NotNil(t, topErr)
	assert.False(t, batch)
	assert.Equal(t, InvalidRequest, topErr.Kind)
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, _, topErr := Decode([]byte(`{`), nil)
	require.NotNil(t, topErr)
	assert.Equal(t, ParseError, topErr.Kind)
}

func TestDecode_EmptyBatch(t *testing.T) {
	_, batch, topErr := Decode([]byte(`[]`), nil)
	require.NotNil(t, topErr)
	assert.True(t, batch)
	assert.Equal(t, EmptyBatch, topErr.Kind)
}

func TestDecode_BatchPreservesOrderAndIsolatesFailures(t *testing.T) {
	body := `[
		{"jsonrpc":"2.0","id":1,"method":"ok"},
		{"jsonrpc":"2.0","id":2},
		{"jsonrpc":"2.0","id":3,"method":"also_ok"}
	]`
	elems, batch, topErr := Decode([]byte(body), nil)
	require.Nil(t, topErr)
	require.True(t, batch)
	require.Len(t, elems, 3)

	require.Nil(t, elems[0].Err)
	assert.Equal(t, "ok", elems[0].Request.Method)

	require.NotNil(t, elems[1].Err)
	assert.Equal(t, InvalidRequest, elems[1].Err.Kind)
	require.NotNil(t, elems[1].Err.PartialID)
	assert.True(t, elems[1].Err.PartialID.IsNumber())

	require.Nil(t, elems[2].Err)
	assert.Equal(t, "also_ok", elems[2].Request.Method)
}

func TestRequest_V1ParamsMustBeArray(t *testing.T) {
	elems, _, topErr := Decode([]byte(`{"id":1,"method":"sum","params":{"a":1}}`), nil)
	require.Nil(t, topErr)
	require.Len(t, elems, 1)
	require.NotNil(t, elems[0].Err)
	assert.Equal(t, `Invalid Request: Invalid type for "params"!`, elems[0].Err.Message)
}

func TestDecode_PinnedVersionRejectsMismatch(t *testing.T) {
	pinned := V2
	elems, _, topErr := Decode([]byte(`{"jsonrpc":"1.0","id":1,"method":"sum","params":[1,2]}`), &pinned)
	require.Nil(t, topErr)
	require.Len(t, elems, 1)
	require.NotNil(t, elems[0].Err)
	assert.Equal(t, InvalidRequest, elems[0].Err.Kind)
	assert.Equal(t, `Invalid Request: Refusing to handle version 1.0`, elems[0].Err.Message)
}

func TestDecode_PinnedVersionAcceptsMatch(t *testing.T) {
	pinned := V2
	elems, _, topErr := Decode([]byte(`{"jsonrpc":"2.0","id":1,"method":"sum","params":[1,2]}`), &pinned)
	require.Nil(t, topErr)
	require.Len(t, elems, 1)
	require.Nil(t, elems[0].Err)
}

func TestDecode_UnpinnedAcceptsEitherVersion(t *testing.T) {
	elems, _, topErr := Decode([]byte(`{"id":1,"method":"sum","params":[1,2]}`), nil)
	require.Nil(t, topErr)
	require.Len(t, elems, 1)
	require.Nil(t, elems[0].Err)
	assert.Equal(t, V1, elems[0].Request.Version)
}

func TestEncode_V1ResponseShape(t *testing.T) {
	resp := NewResultResponse(V1, NewNumberID(1), json.RawMessage("3"))
	out, err := Encode([]*Response{resp}, false)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &m))
	_, hasJSONRPC := m["jsonrpc"]
	assert.False(t, hasJSONRPC)
	assert.Contains(t, m, "result")
	assert.Contains(t, m, "error")
	assert.Equal(t, json.RawMessage("null"), m["error"])
}

func TestEncode_V2ResponseShape(t *testing.T) {
	resp := NewResultResponse(V2, NewNumberID(1), json.RawMessage("3"))
	out, err := Encode([]*Response{resp}, false)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, json.RawMessage(`"2.0"`), m["jsonrpc"])
	assert.NotContains(t, m, "error")
}

func TestEncode_BatchOrderPreserved(t *testing.T) {
	resps := []*Response{
		NewResultResponse(V2, NewNumberID(1), json.RawMessage("1")),
		NewResultResponse(V2, NewNumberID(2), json.RawMessage("2")),
	}
	out, err := Encode(resps, true)
	require.NoError(t, err)

	var arr []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &arr))
	require.Len(t, arr, 2)
	assert.Equal(t, json.RawMessage("1"), arr[0]["id"])
	assert.Equal(t, json.RawMessage("2"), arr[1]["id"])
}

func TestEncode_NoResponsesYieldsNoBody(t *testing.T) {
	out, err := Encode(nil, true)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestEncodeEvent_WireShape(t *testing.T) {
	out, err := EncodeEvent(&Event{Name: "evento1", Params: PositionalParams([]json.RawMessage{json.RawMessage("1")})})
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, json.RawMessage(`"2.0"`), m["jsonrpc"])
	assert.Equal(t, json.RawMessage(`"evento1"`), m["notification"])
	assert.Contains(t, m, "params")
}

func TestEscapeHTML(t *testing.T) {
	resp := NewResultResponse(V2, NewNumberID(1), json.RawMessage(`"</script>"`))
	out, err := Encode([]*Response{resp}, false)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "</script>")
	assert.Contains(t, string(out), `<\/script>`)
}
