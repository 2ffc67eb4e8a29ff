package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func TestSetupLoggingDisabled(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	if f := setupLogging(false); f != nil {
		f.Close()
		t.Error("expected nil log file when debug is off")
	}
	if log.Writer() != io.Discard {
		t.Errorf("log output = %v, want io.Discard", log.Writer())
	}
}

func TestSetupLoggingEnabled(t *testing.T) {
	t.Chdir(t.TempDir())
	defer log.SetOutput(os.Stderr)
	defer log.SetFlags(log.LstdFlags)

	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected a log file when debug is on")
	}
	defer f.Close()

	log.Println("tick 1")

	info, err := os.Stat(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("log file is empty")
	}
}
