// Copyright 2019 The go-language-server Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonrpc2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID_States(t *testing.T) {
	tests := []struct {
		name    string
		id      ID
		absent  bool
		null    bool
		str     bool
		num     bool
		wantStr string
	}{
		{name: "zero value is absent", id: ID{}, absent: true},
		{name: "explicit null", id: NullID(), null: true},
		{name: "string", id: NewStringID("abc"), str: true, wantStr: "abc"},
		{name: "number", id: NewNumberID(42), num: true, wantStr: "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.absent, tt.id.IsAbsent())
			assert.Equal(t, tt.null, tt.id.IsNull())
			assert.Equal(t, tt.str, tt.id.IsString())
			assert.Equal(t, tt.num, tt.id.IsNumber())
			assert.Equal(t, tt.wantStr, tt.id.String())
		})
	}
}

func TestID_Equal(t *testing.T) {
	assert.True(t, NewStringID("a").Equal(NewStringID("a")))
	assert.False(t, NewStringID("a").Equal(NewStringID("b")))
	assert.True(t, NewNumberID(1).Equal(NewNumberID(1)))
	assert.False(t, NewNumberID(1).Equal(NewStringID("1")))
	assert.True(t, NullID().Equal(NullID()))
	assert.True(t, ID{}.Equal(ID{}))
}
