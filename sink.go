// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink

import "errors"

// Flusher drains internally buffered items to their ultimate destination.
//
// TryFlush returns nil once every previously accepted item has been handed
// off, iox.ErrWouldBlock when the drain cannot complete now, or any other
// error on failure.
type Flusher interface {
	TryFlush() error
}

// Sink accepts items one at a time under backpressure.
//
// TrySubmit returns nil when the item has been accepted. On
// iox.ErrWouldBlock the item was not consumed and stays with the caller,
// which may offer the same item again later. Any other error is a sink
// failure.
type Sink[T any] interface {
	TrySubmit(item T) error
	Flusher
}

var (
	// ErrIllegalState reports a Poll on an operation that already returned
	// its sink, failed, or was discarded. It is a usage error, distinct
	// from any failure reported by the sink itself.
	ErrIllegalState = errors.New("sink: poll after completion")

	// ErrClosed reports an operation on a closed pipe.
	ErrClosed = errors.New("sink: pipe closed")
)
