// Copyright 2019 The go-language-server Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonrpc2

import (
	"encoding/json"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// ComputeResultFunc executes a validated Request and returns its raw
// result, or the *Error to report. It is the processor-level analogue of
// the source implementation's BasicJSONRPCProcessor.compute_result
// abstract hook: processor.py and handler.py both implement the same
// decode/validate/encode pipeline around a swappable compute_result, and
// Processor keeps that same split instead of hard-wiring a Dispatcher.
type ComputeResultFunc func(t Transport, req *Request) (json.RawMessage, *Error)

// Processor runs the decode, validate, dispatch and encode pipeline
// described by jsonrpc.py's process_request / processor.py's
// process_jsonrpc over a single request body, which may hold a batch.
type Processor struct {
	computeResult ComputeResultFunc
	logger        *zap.Logger
	processed     atomic.Int64
	pinnedVersion *Version
}

// ProcessorOption configures a Processor at construction time.
type ProcessorOption func(*Processor)

// WithComputeResult sets the hook Processor calls for every validated
// Request. Required unless WithDispatcher is used instead.
func WithComputeResult(fn ComputeResultFunc) ProcessorOption {
	return func(p *Processor) { p.computeResult = fn }
}

// WithDispatcher is a convenience option that wires a Dispatcher's
// Dispatch method in as the compute_result hook.
func WithDispatcher(d *Dispatcher) ProcessorOption {
	return WithComputeResult(d.Dispatch)
}

// WithProcessorLogger attaches a logger for per-request diagnostics.
func WithProcessorLogger(logger *zap.Logger) ProcessorOption {
	return func(p *Processor) { p.logger = logger }
}

// WithPinnedVersion restricts the Processor to a single jsonrpc
// generation. A request whose own "jsonrpc" member resolves to a
// different Version is rejected with InvalidRequest at decode time,
// before it ever reaches the compute_result hook. Unset by default: a
// Processor with no pin accepts either generation per request.
func WithPinnedVersion(v Version) ProcessorOption {
	return func(p *Processor) { p.pinnedVersion = &v }
}

// NewProcessor builds a Processor. Panics if no compute_result hook was
// supplied, since a Processor with nothing to call can never produce a
// result.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	if p.computeResult == nil {
		panic("jsonrpc2: NewProcessor requires WithComputeResult or WithDispatcher")
	}
	return p
}

// Processed returns the number of Requests (not bytes, not batches) this
// Processor has run compute_result for since construction.
func (p *Processor) Processed() int64 {
	return p.processed.Load()
}

// Process runs the full pipeline over one request body and returns the
// bytes to write back to the transport. A nil, nil return means no body
// should be written at all — every element of the request was a silent
// notification, or decoding failed in a way the source implementation
// treats as unreportable.
func (p *Processor) Process(t Transport, body []byte) ([]byte, error) {
	elems, batch, topErr := Decode(body, p.pinnedVersion)
	if topErr != nil {
		if !reportable(topErr.Kind) {
			return nil, nil
		}
		resp := errorResponseFor(topErr)
		return Encode([]*Response{resp}, false)
	}

	responses := make([]*Response, 0, len(elems))
	for _, elem := range elems {
		if resp := p.processOne(t, elem); resp != nil {
			responses = append(responses, resp)
		}
	}
	return Encode(responses, batch)
}

func (p *Processor) processOne(t Transport, elem DecodedRequest) *Response {
	if elem.Err != nil {
		if !reportable(elem.Err.Kind) {
			return nil
		}
		return errorResponseFor(elem.Err)
	}

	req := elem.Request
	p.processed.Inc()

	result, callErr := p.computeResult(t, req)
	if req.IsNotification() {
		return nil
	}
	if callErr != nil {
		p.logger.Debug("method call failed",
			zap.String("method", req.Method),
			zap.Int64("code", int64(callErr.Code)),
			zap.String("message", callErr.Message))
		return NewErrorResponse(req.Version, req.ID, callErr)
	}
	return NewResultResponse(req.Version, req.ID, result)
}

// reportable is the decode-time analogue of the dispatch-time
// classification rule: ParseError, InvalidRequest and EmptyBatch become
// synthesized error Responses; any other decode failure produces no
// response at all.
func reportable(kind Code) bool {
	switch kind {
	case ParseError, InvalidRequest: // EmptyBatch shares InvalidRequest's code
		return true
	default:
		return false
	}
}

func errorResponseFor(e *DecodeError) *Response {
	id := ID{}
	if e.PartialID != nil {
		id = *e.PartialID
	}
	return NewErrorResponse(V2, id, e.AsError())
}
