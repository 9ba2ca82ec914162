// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink

import (
	"code.hybscloud.com/kont"
)

// Submit is the effect operation for offering a value of type T to the sink.
// Perform(Submit[T]{Value: v}) resumes once the sink has accepted v.
type Submit[T any] struct {
	kont.Phantom[struct{}]
	Value T
}

// DispatchSink handles Submit on the port's sink.
// Non-blocking: returns iox.ErrWouldBlock if the sink cannot accept now.
// Panics if the sink does not accept items of type T.
func (s Submit[T]) DispatchSink(ctx *portContext) (kont.Resumed, error) {
	snk, ok := ctx.sink.(Sink[T])
	if !ok {
		panic("sink: Submit item type not accepted by port sink")
	}
	if err := snk.TrySubmit(s.Value); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// Flush is the effect operation for draining the sink.
// Perform(Flush{}) resumes once every accepted item has been handed off.
type Flush struct {
	kont.Phantom[struct{}]
}

// DispatchSink handles Flush on the port's sink.
// Non-blocking: returns iox.ErrWouldBlock while the drain is incomplete.
func (Flush) DispatchSink(ctx *portContext) (kont.Resumed, error) {
	if err := ctx.sink.TryFlush(); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}
