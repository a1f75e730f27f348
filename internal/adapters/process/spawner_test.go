package process

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
)

func TestSpawn_MissingBinary(t *testing.T) {
	_, err := NewSpawner(zerolog.Nop()).Spawn(filepath.Join(t.TempDir(), "flashplayer"), "x.swf?l=.guest")
	if err == nil {
		t.Fatalf("expected error for missing binary")
	}
}

func TestSpawn_ReturnsPID(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script")
	}
	script := filepath.Join(t.TempDir(), "player.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	pid, err := NewSpawner(zerolog.Nop()).Spawn(script, "game.swf?l=a&p=b&from_standalone=1")
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if pid <= 0 {
		t.Fatalf("unexpected pid %d", pid)
	}
}
