// Copyright 2019 The go-language-server Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonrpc2

import "strconv"

// idKind distinguishes the four wire states an id can be in. JSON-RPC 1.0
// and 2.0 disagree on what "absent" and "null" mean for a request id (see
// Request.IsNotification), so ID tracks both explicitly rather than
// collapsing them the way a V2-only id type could afford to.
type idKind uint8

const (
	idAbsent idKind = iota
	idNull
	idString
	idNumber
)

// ID is a JSON-RPC request identifier. The zero value is the absent id
// (no "id" member on the wire at all).
type ID struct {
	kind idKind
	str  string
	num  int64
}

// NewStringID returns a new string request id.
func NewStringID(v string) ID { return ID{kind: idString, str: v} }

// NewNumberID returns a new numeric request id.
func NewNumberID(v int64) ID { return ID{kind: idNumber, num: v} }

// NullID returns the explicit JSON null id, distinct from an absent id.
func NullID() ID { return ID{kind: idNull} }

// IsAbsent reports whether the id member was missing from the wire object.
func (id ID) IsAbsent() bool { return id.kind == idAbsent }

// IsNull reports whether the id member was present and set to JSON null.
func (id ID) IsNull() bool { return id.kind == idNull }

// IsString reports whether the id is a string.
func (id ID) IsString() bool { return id.kind == idString }

// IsNumber reports whether the id is a number.
func (id ID) IsNumber() bool { return id.kind == idNumber }

// String returns a string, the number, or "" for null/absent.
func (id ID) String() string {
	switch id.kind {
	case idString:
		return id.str
	case idNumber:
		return strconv.FormatInt(id.num, 10)
	default:
		return ""
	}
}

// Equal reports whether two ids carry the same wire value.
func (id ID) Equal(other ID) bool {
	if id.kind != other.kind {
		return false
	}
	switch id.kind {
	case idString:
		return id.str == other.str
	case idNumber:
		return id.num == other.num
	default:
		return true
	}
}
