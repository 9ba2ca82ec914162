// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink_test

import (
	"testing"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/sink"
)

// execExpr drives a protocol to completion on p via Step+Advance loop.
// Retries on iox.ErrWouldBlock; fails the test on any other error.
func execExpr[R any](t *testing.T, p *sink.Port, protocol kont.Expr[R]) R {
	t.Helper()
	result, susp := sink.Step[R](protocol)
	for susp != nil {
		var err error
		result, susp, err = sink.Advance(p, susp)
		if err != nil && !iox.IsWouldBlock(err) {
			t.Fatalf("Advance error: %v", err)
		}
	}
	return result
}

func TestStepInspectOperations(t *testing.T) {
	protocol := sink.ExprSendDone(42, "done")

	_, susp := sink.Step[string](protocol)
	if susp == nil {
		t.Fatal("expected suspension for Submit")
	}
	op, ok := susp.Op().(sink.Submit[int])
	if !ok {
		t.Fatalf("expected Submit[int], got %T", susp.Op())
	}
	if op.Value != 42 {
		t.Fatalf("Submit value got %d, want 42", op.Value)
	}

	s := &scriptSink[int]{}
	p := sink.NewPort(s)
	_, susp, err := sink.Advance(p, susp)
	if err != nil {
		t.Fatalf("Advance Submit error: %v", err)
	}
	if susp == nil {
		t.Fatal("expected suspension for Flush")
	}
	if _, ok := susp.Op().(sink.Flush); !ok {
		t.Fatalf("expected Flush, got %T", susp.Op())
	}
	if s.flushCalls != 0 {
		t.Fatal("Advance dispatched more than one effect")
	}

	result, susp, err := sink.Advance(p, susp)
	if err != nil {
		t.Fatalf("Advance Flush error: %v", err)
	}
	if susp != nil {
		t.Fatal("expected nil suspension after Flush")
	}
	if result != "done" {
		t.Fatalf("result got %q, want %q", result, "done")
	}
	if len(s.accepted) != 1 || s.accepted[0] != 42 {
		t.Fatalf("accepted got %v, want [42]", s.accepted)
	}
}

func TestAdvanceWouldBlock(t *testing.T) {
	s := &scriptSink[int]{submitBlocks: 1}
	p := sink.NewPort(s)

	_, susp := sink.Step[struct{}](sink.ExprSendDone(1, struct{}{}))
	_, retry, err := sink.Advance(p, susp)
	if !iox.IsWouldBlock(err) {
		t.Fatalf("expected ErrWouldBlock, got %v", err)
	}
	if retry != susp {
		t.Fatal("suspension should be returned unconsumed on ErrWouldBlock")
	}

	execExprFrom(t, p, retry)
	if len(s.offered) != 2 || len(s.accepted) != 1 {
		t.Fatalf("offered %d accepted %d, want 2 and 1", len(s.offered), len(s.accepted))
	}
}

// execExprFrom finishes an already-stepped protocol.
func execExprFrom[R any](t *testing.T, p *sink.Port, susp *kont.Suspension[R]) R {
	t.Helper()
	var result R
	for susp != nil {
		var err error
		result, susp, err = sink.Advance(p, susp)
		if err != nil && !iox.IsWouldBlock(err) {
			t.Fatalf("Advance error: %v", err)
		}
	}
	return result
}

func TestAdvanceFailureEndsProtocol(t *testing.T) {
	s := &scriptSink[int]{flushErr: errFlush}
	p := sink.NewPort(s)

	_, susp := sink.Step[string](sink.ExprSendDone(1, "unreachable"))
	_, susp, err := sink.Advance(p, susp)
	if err != nil {
		t.Fatalf("Advance Submit error: %v", err)
	}
	result, next, err := sink.Advance(p, susp)
	if err != errFlush {
		t.Fatalf("Advance Flush error got %v, want %v", err, errFlush)
	}
	if next != nil {
		t.Fatal("failed Advance should not return a suspension")
	}
	if result != "" {
		t.Fatalf("failed Advance result got %q, want zero", result)
	}
}

func TestStepMultipleSubmits(t *testing.T) {
	s := &scriptSink[int]{flushBlocks: 2}
	p := sink.NewPort(s)

	protocol := sink.ExprSubmitThen(1,
		sink.ExprSubmitThen(2,
			sink.ExprFlushThen(
				sink.ExprSendDone(3, 3),
			),
		),
	)
	got := execExpr(t, p, protocol)
	if got != 3 {
		t.Fatalf("result got %d, want 3", got)
	}
	if len(s.accepted) != 3 {
		t.Fatalf("accepted got %v, want [1 2 3]", s.accepted)
	}
	for i, v := range s.accepted {
		if v != i+1 {
			t.Fatalf("accepted got %v, want [1 2 3]", s.accepted)
		}
	}
	if s.flushCalls != 4 {
		t.Fatalf("flush calls got %d, want 4", s.flushCalls)
	}
}

func TestStepOverPipe(t *testing.T) {
	w, r := sink.NewPipe[string]()
	p := sink.NewPort(w)
	got := execExpr(t, p, sink.ExprSendDone("ping", true))
	if !got {
		t.Fatal("protocol result got false")
	}
	v, err := r.TryRecv()
	if err != nil || v != "ping" {
		t.Fatalf("TryRecv got (%q, %v), want (ping, nil)", v, err)
	}
}

func TestSubmitItemTypeMismatch(t *testing.T) {
	p := sink.NewPort(&scriptSink[int]{})
	_, susp := sink.Step[struct{}](sink.ExprSendDone("wrong", struct{}{}))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for mismatched item type")
		}
	}()
	sink.Advance(p, susp)
}

func TestPortSerial(t *testing.T) {
	s := &scriptSink[int]{}
	p1 := sink.NewPort(s)
	p2 := sink.NewPort(s)
	if p1.Serial() >= p2.Serial() {
		t.Fatalf("serials not increasing: %d >= %d", p1.Serial(), p2.Serial())
	}
	if p1.Sink() != s {
		t.Fatal("Sink returned a different sink")
	}
}
