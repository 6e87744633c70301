package session

import (
	"sync"
	"testing"
)

func TestVerifyOTPConsumesCode(t *testing.T) {
	t.Parallel()

	s := New()
	s.PutOTP("483920")

	if s.VerifyOTP("000000") {
		t.Fatalf("wrong code verified")
	}
	if s.ResetOpen() {
		t.Fatalf("reset window opened by failed verify")
	}
	if !s.VerifyOTP("483920") {
		t.Fatalf("correct code rejected")
	}
	if !s.ResetOpen() {
		t.Fatalf("reset window not opened by successful verify")
	}
	// The code is consumed: the same value never verifies twice.
	if s.VerifyOTP("483920") {
		t.Fatalf("consumed code verified a second time")
	}
}

func TestVerifyOTPWithoutPendingCode(t *testing.T) {
	t.Parallel()

	s := New()
	if s.VerifyOTP("123456") {
		t.Fatalf("verify succeeded with no pending code")
	}
	if s.VerifyOTP("") {
		t.Fatalf("empty code verified with no pending code")
	}
}

func TestVerifyOTPComparesAsIntegers(t *testing.T) {
	t.Parallel()

	s := New()
	s.PutOTP("007123")
	if !s.VerifyOTP("7123") {
		t.Fatalf("integer comparison should accept stripped leading zeros")
	}
}

func TestFailedVerifyKeepsCodePending(t *testing.T) {
	t.Parallel()

	s := New()
	s.PutOTP("555555")
	if s.VerifyOTP("111111") {
		t.Fatalf("wrong code verified")
	}
	if !s.VerifyOTP("555555") {
		t.Fatalf("pending code lost after failed verify")
	}
}

func TestNewCodeOverwritesPending(t *testing.T) {
	t.Parallel()

	s := New()
	s.PutOTP("111111")
	s.PutOTP("222222")
	if s.VerifyOTP("111111") {
		t.Fatalf("overwritten code still verifies")
	}
	if !s.VerifyOTP("222222") {
		t.Fatalf("latest code rejected")
	}
}

func TestResetWindowIsOneShot(t *testing.T) {
	t.Parallel()

	s := New()
	s.PutOTP("654321")
	if !s.VerifyOTP("654321") {
		t.Fatalf("verify failed")
	}
	// The probe does not consume the window.
	if !s.ResetOpen() || !s.ResetOpen() {
		t.Fatalf("ResetOpen consumed the window")
	}
	s.CloseReset()
	if s.ResetOpen() {
		t.Fatalf("window still open after CloseReset")
	}
}

func TestConcurrentAccessIsSerialized(t *testing.T) {
	t.Parallel()

	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.PutOTP("123456")
		}()
		go func() {
			defer wg.Done()
			_ = s.VerifyOTP("123456")
			_ = s.ResetOpen()
			s.CloseReset()
		}()
	}
	wg.Wait()
}
