// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sink provides a non-blocking submit-and-drain operation over
// backpressure-aware sinks.
//
// A [Sink] accepts items one at a time ([Sink.TrySubmit]) and drains its
// internal buffer on demand ([Flusher.TryFlush]). Both report
// [code.hybscloud.com/iox.ErrWouldBlock] when they cannot make progress now.
//
// # Architecture
//
//   - Operation: [Send] submits exactly one item and completes only after the
//     sink has flushed, then yields the sink back to the caller.
//   - Non-blocking: [Send.Poll] never waits. The caller re-polls after
//     [code.hybscloud.com/iox.ErrWouldBlock].
//   - Ownership: while a [Send] is live it owns the sink. [Send.Peek] and
//     [Send.PeekMut] observe it; only the final Poll moves it out.
//   - Transport: [NewPipe] creates an in-memory [Writer]/[Reader] pair over a
//     lock-free bounded SPSC queue from [code.hybscloud.com/lfq].
//
// # API Topologies
//
//   - Polling: [NewSend], [Send.Poll], [Send.Discard].
//   - Blocking: [Wait], [SendWait], [WaitAll] back off adaptively past
//     [code.hybscloud.com/iox.ErrWouldBlock] on the calling goroutine.
//   - Effects: [Submit] and [Flush] are [code.hybscloud.com/kont] operations
//     dispatched on a [Port]. Cont-world [SubmitThen], [FlushThen], [FlushDone],
//     [SendDone]; Expr-world [ExprSubmitThen], [ExprFlushThen], [ExprFlushDone],
//     [ExprSendDone].
//   - Stepping: [Step] and [Advance] evaluate protocols one effect at a time.
//     [ExecError] and [ExecErrorExpr] run them to completion.
//
// # Errors
//
// A sink failure is terminal for the operation and is returned verbatim.
// Polling a [Send] after it returned a result, a failure, or was discarded
// reports [ErrIllegalState].
//
// # Example
//
//	w, _ := sink.NewPipe[int]()
//	op := sink.NewSend(w, 42)
//	w, err := op.Poll()
//	for iox.IsWouldBlock(err) {
//		w, err = op.Poll() // retry after the reader makes progress
//	}
package sink
