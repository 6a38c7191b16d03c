package logger

import (
	"bytes"
	"os"
	"testing"
)

func reset() {
	SetVerbose(false)
	SetQuiet(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false after SetVerbose(false)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message %s", "arg")

	if got := buf.String(); got != "[DEBUG] test message arg\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("test message")

	if buf.Len() > 0 {
		t.Error("expected no output when verbose is disabled")
	}
}

func TestSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Section("Search")
	if buf.Len() > 0 {
		t.Error("expected no section header when verbose is disabled")
	}

	SetVerbose(true)
	Section("Search")
	if got := buf.String(); got != "\n=== Search ===\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestInfo_AlwaysPrints(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Info("found %d repositories", 3)

	if got := buf.String(); got != "[INFO] found 3 repositories\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestInfo_WhenQuiet(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetQuiet(true)

	Info("progress")
	Warn("slow")
	Error("failed")

	if got := buf.String(); got != "[WARN] slow\n[ERROR] failed\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestWarnAndError(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Warn("checkpoint %s", "failed")
	Error("search %s", "failed")

	if got := buf.String(); got != "[WARN] checkpoint failed\n[ERROR] search failed\n" {
		t.Errorf("unexpected output: %q", got)
	}
}
