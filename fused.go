// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink

import (
	"code.hybscloud.com/kont"
)

// SubmitThen submits a value and then continues with next.
// Fuses Perform(Submit[T]{Value: v}) + Then.
func SubmitThen[T, B any](v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Submit[T]{Value: v}), next)
}

// FlushThen flushes the sink and then continues with next.
// Fuses Perform(Flush{}) + Then.
func FlushThen[B any](next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Flush{}), next)
}

// FlushDone flushes the sink and returns a.
// Fuses Perform(Flush{}) + Then + Pure.
func FlushDone[A any](a A) kont.Eff[A] {
	return kont.Then(kont.Perform(Flush{}), kont.Pure(a))
}

// SendDone submits v, flushes the sink, and returns a.
func SendDone[T, A any](v T, a A) kont.Eff[A] {
	return SubmitThen(v, FlushDone(a))
}
