// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink

import (
	"code.hybscloud.com/kont"
)

// portErrorHandler handles both sink and error effects.
// Sink ops wait on ErrWouldBlock via iox.Backoff; a sink failure
// short-circuits with Left. Error ops short-circuit on Throw.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type portErrorHandler[A any] struct {
	ctx    *portContext
	errCtx *kont.ErrorContext[error]
}

// Dispatch implements kont.Handler for the composed Sink+Error handler.
// Dispatch order: Sink → Error.
func (h portErrorHandler[A]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	if sop, ok := op.(sinkDispatcher); ok {
		v, err := dispatchWait(h.ctx, sop)
		if err != nil {
			return kont.Left[error, A](err), false
		}
		return v, true
	}
	if eop, ok := op.(interface {
		DispatchError(ctx *kont.ErrorContext[error]) (kont.Resumed, bool)
	}); ok {
		v, _ := eop.DispatchError(h.errCtx)
		if h.errCtx.HasErr {
			return kont.Left[error, A](h.errCtx.Err), false
		}
		return v, true
	}
	panic("sink: unhandled effect in portErrorHandler")
}

// ExecError runs a Cont-world sink protocol on a port.
// Returns Right on completion, Left with the sink failure or thrown error.
// Waits past iox.ErrWouldBlock via adaptive backoff, without spawning
// goroutines or creating channels.
func ExecError[R any](p *Port, protocol kont.Eff[R]) kont.Either[error, R] {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[error, R]](protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	var errCtx kont.ErrorContext[error]
	h := portErrorHandler[R]{ctx: &p.ctx, errCtx: &errCtx}
	return kont.Handle(wrapped, h)
}

// ExecErrorExpr runs an Expr-world sink protocol on a port.
// Returns Right on completion, Left with the sink failure or thrown error.
// Waits past iox.ErrWouldBlock via adaptive backoff, without spawning
// goroutines or creating channels.
func ExecErrorExpr[R any](p *Port, protocol kont.Expr[R]) kont.Either[error, R] {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	var errCtx kont.ErrorContext[error]
	h := portErrorHandler[R]{ctx: &p.ctx, errCtx: &errCtx}
	return kont.HandleExpr(wrapped, h)
}
