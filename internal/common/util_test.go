package common

import "testing"

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("hunter2")
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestDeref(t *testing.T) {
	if got := Deref(nil); got != "" {
		t.Fatalf("Deref(nil) = %q", got)
	}
	s := "analyst"
	if got := Deref(&s); got != "analyst" {
		t.Fatalf("Deref(&s) = %q", got)
	}
}
