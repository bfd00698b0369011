// Copyright 2019 The go-language-server Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonrpc2

// Version identifies which JSON-RPC generation a Request follows. The two
// generations disagree on notification semantics, params shape rules and
// response wire layout; Version is threaded through Validate and the wire
// encoders so each generation's rules apply independently.
type Version uint8

const (
	// V1 is JSON-RPC 1.0: no "jsonrpc" member on the wire, params must be
	// an array, notifications are calls with an explicit "id":null.
	V1 Version = iota
	// V2 is JSON-RPC 2.0: "jsonrpc":"2.0" on the wire, params may be an
	// array or object, notifications are calls with the "id" member
	// entirely absent.
	V2
	// versionUnknown marks a request whose "jsonrpc" member was present
	// but held neither "1.0" nor "2.0". Per the decode algorithm such a
	// request is still parsed generically, then rejected with
	// InvalidRequest by Validate, which decodeOne runs after parsing.
	versionUnknown
)

// parseVersion maps the wire "jsonrpc" member to a Version. An absent
// member defaults to "1.0", matching SUPPORTED_VERSIONS handling in the
// source implementation this package follows.
func parseVersion(raw string, present bool) Version {
	if !present {
		return V1
	}
	switch raw {
	case "1.0":
		return V1
	case "2.0":
		return V2
	default:
		return versionUnknown
	}
}

// String implements fmt.Stringer.
func (v Version) String() string {
	switch v {
	case V1:
		return "1.0"
	case V2:
		return "2.0"
	default:
		return "unknown"
	}
}
