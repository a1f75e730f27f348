package singleinstance

import (
	"runtime"
	"testing"
)

func TestAcquire(t *testing.T) {
	release, ok, err := Acquire("PB2LauncherTest")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if !ok || release == nil {
		t.Fatalf("expected lock, ok=%v", ok)
	}
	defer release()

	if runtime.GOOS != "windows" {
		return
	}
	_, ok, err = Acquire("PB2LauncherTest")
	if err != nil {
		t.Fatalf("second Acquire: %v", err)
	}
	if ok {
		t.Fatalf("second instance must not acquire the lock")
	}
}
