// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink

import (
	"code.hybscloud.com/kont"
)

// Pre-allocated erased values to avoid heap escapes when boxing empty
// structs into any/kont.Frame during Expr-world construction.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprFlush       kont.Erased = Flush{}
)

// identityResume is the identity resume function for EffectFrame construction.
func identityResume(v kont.Erased) kont.Erased { return v }

// exprPerformThen suspends on op and then continues with next.
func exprPerformThen[B any](op kont.Erased, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = op
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprSubmitThen submits a value and then continues with next.
// Fuses ExprPerform(Submit[T]{Value: v}) + ExprThen.
func ExprSubmitThen[T, B any](v T, next kont.Expr[B]) kont.Expr[B] {
	return exprPerformThen(Submit[T]{Value: v}, next)
}

// ExprFlushThen flushes the sink and then continues with next.
// Fuses ExprPerform(Flush{}) + ExprThen.
func ExprFlushThen[B any](next kont.Expr[B]) kont.Expr[B] {
	return exprPerformThen(exprFlush, next)
}

// ExprFlushDone flushes the sink and returns a.
// Fuses ExprPerform(Flush{}) + ExprThen + ExprReturn.
func ExprFlushDone[A any](a A) kont.Expr[A] {
	return exprPerformThen(exprFlush, kont.Expr[A]{Value: a, Frame: exprReturnFrame})
}

// ExprSendDone submits v, flushes the sink, and returns a.
func ExprSendDone[T, A any](v T, a A) kont.Expr[A] {
	return ExprSubmitThen(v, ExprFlushDone(a))
}
