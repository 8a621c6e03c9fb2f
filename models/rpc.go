// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// CallRequest is the body of a gateway call: the positional arguments of
// the remote method.
type CallRequest struct {
	Args []any `json:"args"`
}

// CallResponse is the gateway's reply. A non-null Error means the remote
// method failed; Result is left raw so that callers decode it into their
// own types.
type CallResponse struct {
	Error  json.RawMessage `json:"error,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}
