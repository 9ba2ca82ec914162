// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Step evaluates a sink protocol until the first effect suspension.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// Advance dispatches the suspended sink operation on the port.
//
// On success (nil error), the suspension is consumed and the protocol
// advances to the next effect or completion.
// On iox.ErrWouldBlock, the suspension is returned unconsumed and may be
// retried after the sink makes progress.
// On any other error the suspension is discarded and (zero, nil, err) is
// returned: a sink failure ends the protocol.
func Advance[R any](p *Port, susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	sop, ok := susp.Op().(sinkDispatcher)
	if !ok {
		panic("sink: unhandled effect in Advance")
	}
	v, err := sop.DispatchSink(&p.ctx)
	if err != nil {
		var zero R
		if iox.IsWouldBlock(err) {
			return zero, susp, err
		}
		susp.Discard()
		return zero, nil, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
