// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink_test

import (
	"errors"

	"code.hybscloud.com/iox"
)

var (
	errSubmit = errors.New("submit failed")
	errFlush  = errors.New("flush failed")
)

// scriptSink is a Sink whose backpressure and failures are scripted.
// TrySubmit reports ErrWouldBlock submitBlocks times before accepting;
// TryFlush reports ErrWouldBlock flushBlocks times before completing.
type scriptSink[T any] struct {
	submitBlocks int
	flushBlocks  int
	submitErr    error
	flushErr     error

	offered    []T // every item passed to TrySubmit
	accepted   []T
	flushCalls int
}

func (s *scriptSink[T]) TrySubmit(item T) error {
	s.offered = append(s.offered, item)
	if s.submitErr != nil {
		return s.submitErr
	}
	if s.submitBlocks > 0 {
		s.submitBlocks--
		return iox.ErrWouldBlock
	}
	s.accepted = append(s.accepted, item)
	return nil
}

func (s *scriptSink[T]) TryFlush() error {
	s.flushCalls++
	if s.flushErr != nil {
		return s.flushErr
	}
	if s.flushBlocks > 0 {
		s.flushBlocks--
		return iox.ErrWouldBlock
	}
	return nil
}

// calls returns the total number of sink calls made so far.
func (s *scriptSink[T]) calls() int {
	return len(s.offered) + s.flushCalls
}

// payload is a pointer-identity item.
type payload struct {
	id int
}
