package output

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSpinner_NonTTYPrintsOnce(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Scanning")
	s.SetWriter(buf)

	s.Start()
	time.Sleep(150 * time.Millisecond)
	s.Stop()

	if got := buf.String(); got != "Scanning...\n" {
		t.Errorf("non-TTY spinner output = %q, want %q", got, "Scanning...\n")
	}
}

func TestSpinner_StartStop(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Test")
	s.SetWriter(buf)

	s.Start()
	if !s.running {
		t.Error("Spinner should be running after Start()")
	}

	// Second Start is a no-op
	s.Start()
	if strings.Count(buf.String(), "Test...") != 1 {
		t.Errorf("Start() twice should print once, got: %q", buf.String())
	}

	s.Stop()
	if s.running {
		t.Error("Spinner should not be running after Stop()")
	}
}

func TestSpinner_MultipleStops(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Test")
	s.SetWriter(buf)
	s.Start()

	// Multiple stops should not panic
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Idle")
	s.SetWriter(buf)

	s.Stop()
	if buf.Len() != 0 {
		t.Errorf("Stop() without Start() should write nothing, got: %q", buf.String())
	}
}

func TestSpinner_StopWithMessage(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Working")
	s.SetWriter(buf)
	s.Start()

	s.StopWithMessage("Found 3 items")

	output := buf.String()
	if !strings.HasSuffix(output, "Found 3 items\n") {
		t.Errorf("Spinner should end with final message, got: %q", output)
	}
}

func TestSpinner_FormatMessage(t *testing.T) {
	s := NewSpinner("Sizing")
	if got := s.formatMessage(); got != "Sizing" {
		t.Errorf("formatMessage() = %q, want %q", got, "Sizing")
	}

	s.WithElapsed()
	s.startTime = time.Now().Add(-3 * time.Second)
	if got := s.formatMessage(); got != "Sizing (3s elapsed)" {
		t.Errorf("formatMessage() = %q, want %q", got, "Sizing (3s elapsed)")
	}
}

// TestSpinner_Concurrent tests spinner thread safety
func TestSpinner_Concurrent(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Concurrent spinner")
	s.SetWriter(buf)
	s.Start()

	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		go func() {
			for j := 0; j < 10; j++ {
				s.UpdateMessage("Message from goroutine")
				time.Sleep(time.Millisecond)
			}
			done <- struct{}{}
		}()
	}

	for i := 0; i < 5; i++ {
		<-done
	}

	s.Stop()
}

func TestWriterIsTTY_Buffer(t *testing.T) {
	if writerIsTTY(&bytes.Buffer{}) {
		t.Error("bytes.Buffer should not be a TTY")
	}
}
