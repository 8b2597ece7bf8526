package model_test

import (
	"testing"

	"github.com/unclebandit/automailer-backend/internal/model"
)

func TestNewRenderedMessageDerivesPlainText(t *testing.T) {
	msg := model.NewRenderedMessage("Hello", "Line one<br>Line two<br/>Line three<br />End")
	want := "Line one\nLine two\nLine three\nEnd"
	if msg.Text != want {
		t.Errorf("expected %q, got %q", want, msg.Text)
	}
	if msg.HTML != "Line one<br>Line two<br/>Line three<br />End" {
		t.Errorf("HTML body must be kept untouched, got %q", msg.HTML)
	}
	if msg.Subject != "Hello" {
		t.Errorf("expected subject Hello, got %q", msg.Subject)
	}
}

func TestRunSummaryLine(t *testing.T) {
	s := model.RunSummary{Sent: 3, Skipped: 1, Failed: 2, Total: 6}
	want := "Done. Sent: 3 | Skipped: 1 | Failed: 2 | Total rows: 6"
	if got := s.Line(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
