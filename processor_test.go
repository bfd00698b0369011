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

func newTestProcessor() (*Processor, *Dispatcher) {
	d := NewDispatcher(WithEventsEnabled())
	d.RegisterNamespace("math", map[string]MethodFunc{
		"sum": func(_ Transport, params Params) (interface{}, *Error) {
			args := params.Positional()
			var a, b int
			_ = json.Unmarshal(args[0], &a)
			_ = json.Unmarshal(args[1], &b)
			return a + b, nil
		},
		"subtract": func(_ Transport, params Params) (interface{}, *Error) {
			args := params.Positional()
			var a, b int
			_ = json.Unmarshal(args[0], &a)
			_ = json.Unmarshal(args[1], &b)
			return a - b, nil
		},
	})
	d.RegisterEvent("evento1")
	p := NewProcessor(WithDispatcher(d))
	return p, d
}

func TestProcessor_SingleCall(t *testing.T) {
	p, _ := newTestProcessor()
	out, err := p.Process(&fakeTransport{id: "t1"}, []byte(`{"jsonrpc":"2.0","id":1,"method":"math.sum","params":[2,3]}`))
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, json.RawMessage("5"), m["result"])
	assert.Equal(t, int64(1), p.Processed())
}

func TestProcessor_Notification_NoResponse(t *testing.T) {
	p, _ := newTestProcessor()
	out, err := p.Process(&fakeTransport{id: "t1"}, []byte(`{"jsonrpc":"2.0","method":"math.sum","params":[2,3]}`))
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.Equal(t, int64(1), p.Processed())
}

func TestProcessor_NotificationSwallowsMethodNotFound(t *testing.T) {
	p, _ := newTestProcessor()
	out, err := p.Process(&fakeTransport{id: "t1"}, []byte(`{"jsonrpc":"2.0","method":"math.nope"}`))
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestProcessor_CallReportsMethodNotFound(t *testing.T) {
	p, _ := newTestProcessor()
	out, err := p.Process(&fakeTransport{id: "t1"}, []byte(`{"jsonrpc":"2.0","id":1,"method":"math.nope"}`))
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &m))
	var errObj Error
	require.NoError(t, json.Unmarshal(m["error"], &errObj))
	assert.Equal(t, MethodNotFound, errObj.Code)
}

func TestProcessor_ParseErrorProducesResponse(t *testing.T) {
	p, _ := newTestProcessor()
	out, err := p.Process(&fakeTransport{id: "t1"}, []byte(`{`))
	require.NoError(t, err)
	require.NotNil(t, out)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &m))
	var errObj Error
	require.NoError(t, json.Unmarshal(m["error"], &errObj))
	assert.Equal(t, ParseError, errObj.Code)
}

func TestProcessor_EmptyBatchProducesResponse(t *testing.T) {
	p, _ := newTestProcessor()
	out, err := p.Process(&fakeTransport{id: "t1"}, []byte(`[]`))
	require.NoError(t, err)
	require.NotNil(t, out)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &m))
	var errObj Error
	require.NoError(t, json.Unmarshal(m["error"], &errObj))
	assert.Equal(t, EmptyBatch, errObj.Code)
}

func TestProcessor_BatchMixedCallsAndNotifications(t *testing.T) {
	p, _ := newTestProcessor()
	body := `[
		{"jsonrpc":"2.0","id":1,"method":"math.sum","params":[1,2]},
		{"jsonrpc":"2.0","method":"math.sum","params":[10,10]},
		{"jsonrpc":"2.0","id":2,"method":"math.subtract","params":[5,2]}
	]`
	out, err := p.Process(&fakeTransport{id: "t1"}, []byte(body))
	require.NoError(t, err)

	var arr []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &arr))
	require.Len(t, arr, 2)
	assert.Equal(t, json.RawMessage("1"), arr[0]["id"])
	assert.Equal(t, json.RawMessage("3"), arr[0]["result"])
	assert.Equal(t, json.RawMessage("2"), arr[1]["id"])
	assert.Equal(t, json.RawMessage("3"), arr[1]["result"])
}

func TestProcessor_BatchAllNotificationsYieldsNoBody(t *testing.T) {
	p, _ := newTestProcessor()
	body := `[
		{"jsonrpc":"2.0","method":"math.sum","params":[1,2]},
		{"jsonrpc":"2.0","method":"math.sum","params":[3,4]}
	]`
	out, err := p.Process(&fakeTransport{id: "t1"}, []byte(body))
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestProcessor_PinnedVersionRejectsMismatch(t *testing.T) {
	d := NewDispatcher()
	d.RegisterNamespace("math", map[string]MethodFunc{
		"sum": func(_ Transport, params Params) (interface{}, *Error) {
			return 5, nil
		},
	})
	p := NewProcessor(WithDispatcher(d), WithPinnedVersion(V2))

	out, err := p.Process(&fakeTransport{id: "t1"}, []byte(`{"jsonrpc":"1.0","id":1,"method":"math.sum","params":[2,3]}`))
	require.NoError(t, err)
	require.NotNil(t, out)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &m))
	var errObj Error
	require.NoError(t, json.Unmarshal(m["error"], &errObj))
	assert.Equal(t, InvalidRequest, errObj.Code)
	assert.Equal(t, int64(0), p.Processed())
}

func TestProcessor_EventEmittedFromWithinMethod(t *testing.T) {
	d := NewDispatcher(WithEventsEnabled())
	d.RegisterEvent("evento1")
	d.RegisterNamespace("math", map[string]MethodFunc{
		"sum": func(t Transport, params Params) (interface{}, *Error) {
			_ = d.Emit("evento1", NoParams)
			return 0, nil
		},
	})
	p := NewProcessor(WithDispatcher(d))

	sub := &fakeTransport{id: "sub1"}
	require.Nil(t, d.Subscribe("evento1", sub))

	_, err := p.Process(&fakeTransport{id: "t1"}, []byte(`{"jsonrpc":"2.0","id":1,"method":"math.sum"}`))
	require.NoError(t, err)
	assert.Len(t, sub.received, 1)
}
