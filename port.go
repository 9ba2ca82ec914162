// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// portContext holds the sink an effect is dispatched on.
type portContext struct {
	sink Flusher
}

// sinkDispatcher is the structural interface for sink operations.
// DispatchSink is non-blocking: it returns iox.ErrWouldBlock when the
// sink cannot make progress.
type sinkDispatcher interface {
	DispatchSink(ctx *portContext) (kont.Resumed, error)
}

// dispatchWait retries DispatchSink past iox.ErrWouldBlock with
// iox.Backoff. Any other error is returned to the caller.
func dispatchWait(ctx *portContext, sop sinkDispatcher) (kont.Resumed, error) {
	var bo iox.Backoff
	for {
		v, err := sop.DispatchSink(ctx)
		if !iox.IsWouldBlock(err) {
			return v, err
		}
		bo.Wait()
	}
}

// Port binds a sink for evaluating Submit and Flush effects.
// Submit[T] requires the sink to implement Sink[T].
type Port struct {
	ctx    portContext
	serial Serial
}

// NewPort binds s for protocol evaluation.
func NewPort(s Flusher) *Port {
	return &Port{ctx: portContext{sink: s}, serial: nextSerial()}
}

// Serial returns the serial number assigned to the port.
func (p *Port) Serial() Serial {
	return p.serial
}

// Sink returns the bound sink.
func (p *Port) Sink() Flusher {
	return p.ctx.sink
}
