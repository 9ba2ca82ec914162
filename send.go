// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink

import (
	"code.hybscloud.com/iox"
)

// Send is a submit-and-drain operation: it submits exactly one item to a
// sink and completes only after the sink has flushed, returning the sink to
// the caller.
//
// The operation owns the sink from NewSend until Poll returns it. Polling
// is single-owner: a Send must not be polled from several goroutines.
type Send[S Sink[T], T any] struct {
	state sendState[S, T]
}

// sendState is one phase of a Send. poll consumes the receiver and returns
// the phase that replaces it.
type sendState[S Sink[T], T any] interface {
	poll() (sendState[S, T], S, error)
}

// submitting owns the sink and the item not yet accepted by it.
type submitting[S Sink[T], T any] struct {
	sink S
	item T
}

// flushing owns the sink after the item has been accepted.
type flushing[S Sink[T], T any] struct {
	sink S
}

// spent is the terminal phase. It holds no claim on the sink.
type spent[S Sink[T], T any] struct{}

// NewSend creates an operation that submits item to s and then flushes s.
// The caller must not use s until the operation yields it back.
func NewSend[S Sink[T], T any](s S, item T) *Send[S, T] {
	return &Send[S, T]{state: &submitting[S, T]{sink: s, item: item}}
}

// Poll advances the operation without blocking.
//
// Returns (s, nil) once the item has been accepted and the sink flushed,
// where s is the sink given to NewSend. Returns iox.ErrWouldBlock while the
// sink cannot accept or cannot finish flushing; poll again after the sink
// may have made progress. Any other sink error is returned verbatim and
// ends the operation. After a result or an error, Poll reports
// ErrIllegalState without touching the sink.
func (x *Send[S, T]) Poll() (S, error) {
	next, s, err := x.state.poll()
	x.state = next
	return s, err
}

// Peek returns the sink while the operation is live.
// Returns false once the operation has completed, failed, or been discarded.
func (x *Send[S, T]) Peek() (S, bool) {
	switch st := x.state.(type) {
	case *submitting[S, T]:
		return st.sink, true
	case *flushing[S, T]:
		return st.sink, true
	}
	var zero S
	return zero, false
}

// PeekMut returns a pointer to the owned sink while the operation is live,
// or nil once it is over. The pointer is valid until the next Poll.
func (x *Send[S, T]) PeekMut() *S {
	switch st := x.state.(type) {
	case *submitting[S, T]:
		return &st.sink
	case *flushing[S, T]:
		return &st.sink
	}
	return nil
}

// Done reports whether the operation has reached a terminal state.
func (x *Send[S, T]) Done() bool {
	_, ok := x.state.(spent[S, T])
	return ok
}

// Discard cancels the operation. The sink and any item not yet accepted
// are dropped together; no further sink call is made.
func (x *Send[S, T]) Discard() {
	x.state = spent[S, T]{}
}

func (st *submitting[S, T]) poll() (sendState[S, T], S, error) {
	if err := st.sink.TrySubmit(st.item); err != nil {
		var zero S
		if iox.IsWouldBlock(err) {
			return st, zero, err
		}
		return spent[S, T]{}, zero, err
	}
	// Accepted: the item is gone for good. Try the flush in the same turn.
	next := &flushing[S, T]{sink: st.sink}
	var zeroItem T
	st.item = zeroItem
	return next.poll()
}

func (st *flushing[S, T]) poll() (sendState[S, T], S, error) {
	var zero S
	if err := st.sink.TryFlush(); err != nil {
		if iox.IsWouldBlock(err) {
			return st, zero, err
		}
		return spent[S, T]{}, zero, err
	}
	s := st.sink
	st.sink = zero
	return spent[S, T]{}, s, nil
}

func (spent[S, T]) poll() (sendState[S, T], S, error) {
	var zero S
	return spent[S, T]{}, zero, ErrIllegalState
}
