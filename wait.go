// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink

import (
	"errors"

	"code.hybscloud.com/iox"
)

// Wait drives x to a terminal state on the calling goroutine.
// Waits past iox.ErrWouldBlock with adaptive backoff (iox.Backoff),
// without spawning goroutines or creating channels.
// Returns the sink on success, or the first non-backpressure error.
func Wait[S Sink[T], T any](x *Send[S, T]) (S, error) {
	var bo iox.Backoff
	for {
		s, err := x.Poll()
		if !iox.IsWouldBlock(err) {
			return s, err
		}
		bo.Wait()
	}
}

// SendWait submits item to s, waits until s has flushed, and returns s.
// Equivalent to Wait(NewSend(s, item)).
func SendWait[S Sink[T], T any](s S, item T) (S, error) {
	return Wait(NewSend(s, item))
}

// WaitAll drives independent operations to completion, interleaving them
// on the calling goroutine. Backs off (iox.Backoff) only when no operation
// made progress in a full round. Does not spawn goroutines or create channels.
//
// The returned sinks are index-aligned with sends; a failed operation
// leaves the zero value in its slot, as does one that was already terminal
// on entry. Failures are joined into the error.
// No ordering is imposed between operations.
func WaitAll[S Sink[T], T any](sends ...*Send[S, T]) ([]S, error) {
	sinks := make([]S, len(sends))
	pending := make([]bool, len(sends))
	remaining := 0
	for i, x := range sends {
		if x != nil && !x.Done() {
			pending[i] = true
			remaining++
		}
	}

	var errs []error
	var bo iox.Backoff
	for remaining > 0 {
		progress := false
		for i, x := range sends {
			if !pending[i] {
				continue
			}
			s, err := x.Poll()
			if iox.IsWouldBlock(err) {
				continue
			}
			pending[i] = false
			remaining--
			progress = true
			if err != nil {
				errs = append(errs, err)
				continue
			}
			sinks[i] = s
		}
		if remaining == 0 {
			break
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
	return sinks, errors.Join(errs...)
}
