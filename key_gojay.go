// +build gojay

// Copyright 2019 The go-language-server Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonrpc2

// Wire member names, shared by the gojay encoder and decoder so a typo in
// one can't silently desync from the other.
const (
	keyJSONRPC      = "jsonrpc"
	keyID           = "id"
	keyMethod       = "method"
	keyParams       = "params"
	keyResult       = "result"
	keyError        = "error"
	keyCode         = "code"
	keyMessage      = "message"
	keyNotification = "notification"
)
