// Copyright 2019 The go-language-server Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonrpc2

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_Kinds(t *testing.T) {
	assert.True(t, NoParams.IsNone())
	assert.Equal(t, 0, NoParams.Len())

	pos := PositionalParams([]json.RawMessage{json.RawMessage("1"), json.RawMessage("2")})
	assert.True(t, pos.IsPositional())
	assert.Equal(t, 2, pos.Len())

	named := NamedParams(map[string]json.RawMessage{"a": json.RawMessage(`"x"`)})
	assert.True(t, named.IsNamed())
	assert.Equal(t, 1, named.Len())
}
