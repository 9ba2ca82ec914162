// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink

import (
	"io"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

const (
	// queueCapacity is the default bounded capacity of the pipe's SPSC queue.
	queueCapacity = 4
	// stagingCapacity is the default number of items a Writer accepts
	// before a flush is required.
	stagingCapacity = 4
)

// pipe holds the queue and shared close flags in a single allocation.
type pipe[T any] struct {
	q       lfq.SPSC[T]
	wclosed atomix.Uint32
	rclosed atomix.Uint32
	serial  Serial
}

// Writer is the producing end of a pipe. It implements Sink.
//
// Accepted items are staged locally and become visible to the Reader only
// after TryFlush moves them into the queue. A Writer is owned by a single
// goroutine.
type Writer[T any] struct {
	p     *pipe[T]
	stage []T
	head  int
	limit int
}

// Reader is the consuming end of a pipe. A Reader is owned by a single
// goroutine, which may differ from the Writer's.
type Reader[T any] struct {
	p *pipe[T]
}

// NewPipe creates a connected Writer/Reader pair with default capacities.
func NewPipe[T any]() (*Writer[T], *Reader[T]) {
	return NewPipeSize[T](queueCapacity, stagingCapacity)
}

// NewPipeSize creates a connected Writer/Reader pair. queue bounds the
// lock-free SPSC queue between the ends; staging bounds the items the
// Writer accepts before it must flush. queue is clamped to at least 2 and
// staging to at least 1.
func NewPipeSize[T any](queue, staging int) (*Writer[T], *Reader[T]) {
	queue = max(queue, 2)
	staging = max(staging, 1)
	p := &pipe[T]{serial: nextSerial()}
	p.q.Init(queue)
	w := &Writer[T]{p: p, stage: make([]T, 0, staging), limit: staging}
	return w, &Reader[T]{p: p}
}

// Serial returns the serial number of the pipe.
func (w *Writer[T]) Serial() Serial {
	return w.p.serial
}

// Buffered returns the number of accepted items not yet flushed.
func (w *Writer[T]) Buffered() int {
	return len(w.stage) - w.head
}

// TrySubmit stages item for the Reader.
// When the staging buffer is full it first drains what it can; if still
// full, returns iox.ErrWouldBlock and item is not consumed.
// Returns ErrClosed after either end has been closed.
func (w *Writer[T]) TrySubmit(item T) error {
	if w.closed() {
		return ErrClosed
	}
	if w.Buffered() >= w.limit {
		if err := w.drain(); err != nil && !iox.IsWouldBlock(err) {
			return err
		}
		if w.Buffered() >= w.limit {
			return iox.ErrWouldBlock
		}
	}
	w.stage = append(w.stage, item)
	return nil
}

// TryFlush moves staged items into the queue.
// Returns iox.ErrWouldBlock while the queue is full, nil once every staged
// item has been handed off, or ErrClosed after either end has been closed.
func (w *Writer[T]) TryFlush() error {
	if w.closed() {
		return ErrClosed
	}
	return w.drain()
}

// Close ends the stream. Items already flushed remain readable; staged
// items are dropped. Close is idempotent.
func (w *Writer[T]) Close() error {
	w.p.wclosed.Add(1)
	w.stage = w.stage[:0]
	w.head = 0
	return nil
}

func (w *Writer[T]) closed() bool {
	return w.p.wclosed.Load() != 0 || w.p.rclosed.Load() != 0
}

func (w *Writer[T]) drain() error {
	for w.head < len(w.stage) {
		if err := w.p.q.Enqueue(&w.stage[w.head]); err != nil {
			w.compact()
			return err
		}
		var zero T
		w.stage[w.head] = zero
		w.head++
	}
	w.stage = w.stage[:0]
	w.head = 0
	return nil
}

// compact moves the undrained tail to the front of the staging buffer.
func (w *Writer[T]) compact() {
	if w.head == 0 {
		return
	}
	n := copy(w.stage, w.stage[w.head:])
	clear(w.stage[n:])
	w.stage = w.stage[:n]
	w.head = 0
}

// Serial returns the serial number of the pipe.
func (r *Reader[T]) Serial() Serial {
	return r.p.serial
}

// TryRecv dequeues the next flushed item.
// Returns iox.ErrWouldBlock when nothing is available yet, and io.EOF once
// the Writer has closed and every flushed item has been received.
func (r *Reader[T]) TryRecv() (T, error) {
	v, err := r.p.q.Dequeue()
	if err == nil {
		return v, nil
	}
	if r.p.wclosed.Load() != 0 {
		// Close may have raced with the last enqueue.
		if v, err = r.p.q.Dequeue(); err == nil {
			return v, nil
		}
		var zero T
		return zero, io.EOF
	}
	var zero T
	return zero, iox.ErrWouldBlock
}

// Recv waits for the next flushed item with adaptive backoff (iox.Backoff).
// Returns io.EOF once the stream has ended.
func (r *Reader[T]) Recv() (T, error) {
	var bo iox.Backoff
	for {
		v, err := r.TryRecv()
		if !iox.IsWouldBlock(err) {
			return v, err
		}
		bo.Wait()
	}
}

// Close detaches the Reader. Subsequent Writer operations fail with
// ErrClosed. Close is idempotent.
func (r *Reader[T]) Close() error {
	r.p.rclosed.Add(1)
	return nil
}
