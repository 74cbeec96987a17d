package commander

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Response is the uniform outcome of a remote operation. Data is only
// meaningful when Success is true; Error is only set when it is false.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func failure[T any](msg string) *Response[T] {
	return &Response[T]{Success: false, Error: msg}
}

// maxEnvelopeDepth bounds how many nested {"data": ...} wrappers are
// stripped from a response body.
const maxEnvelopeDepth = 4

// serverEnvelope is the optional wrapper a server puts around its payload.
type serverEnvelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// unwrapEnvelope strips server-side envelopes from a body. A wrapper with
// "success": false is reported through ok=false with the server's message.
func unwrapEnvelope(raw json.RawMessage) (payload json.RawMessage, errMsg string, ok bool) {
	payload = bytes.TrimSpace(raw)
	for i := 0; i < maxEnvelopeDepth; i++ {
		if len(payload) == 0 || payload[0] != '{' {
			return payload, "", true
		}

		var env serverEnvelope
		if err := json.Unmarshal(payload, &env); err != nil {
			return payload, "", true
		}
		if env.Success != nil && !*env.Success {
			return nil, env.Error, false
		}
		if env.Data == nil {
			return payload, "", true
		}
		payload = bytes.TrimSpace(env.Data)
	}
	return payload, "", true
}

// decode turns a raw transport envelope into a typed one. Failed envelopes
// pass through unchanged.
func decode[T any](resp *Response[json.RawMessage]) *Response[T] {
	if !resp.Success {
		return failure[T](resp.Error)
	}

	payload, errMsg, ok := unwrapEnvelope(resp.Data)
	if !ok {
		return failure[T](errMsg)
	}

	var out T
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &out); err != nil {
			return failure[T](fmt.Sprintf("Invalid response: %s", err))
		}
	}
	return &Response[T]{Success: true, Data: out}
}

// convert maps the data of a successful envelope.
func convert[T, U any](resp *Response[T], fn func(T) U) *Response[U] {
	if !resp.Success {
		return failure[U](resp.Error)
	}
	return &Response[U]{Success: true, Data: fn(resp.Data)}
}
