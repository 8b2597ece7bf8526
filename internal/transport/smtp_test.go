package transport_test

import (
	"context"
	"strings"
	"testing"

	"github.com/unclebandit/automailer-backend/internal/model"
	"github.com/unclebandit/automailer-backend/internal/transport"
)

func TestBuildMessageIsMultipartAlternative(t *testing.T) {
	msg := model.NewRenderedMessage("Your update", "<p>Hello</p><br>line")
	raw := string(transport.BuildMessage("me@x.com", "you@y.com", msg))

	for _, want := range []string{
		"From: me@x.com\r\n",
		"To: you@y.com\r\n",
		"Subject: Your update\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: multipart/alternative;",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"Content-Type: text/html; charset=\"utf-8\"",
		"<p>Hello</p><br>line",
		"<p>Hello</p>\nline",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("message missing %q:\n%s", want, raw)
		}
	}

	// plain part must come before the HTML part
	plain := strings.Index(raw, "text/plain")
	html := strings.Index(raw, "text/html")
	if plain < 0 || html < 0 || plain > html {
		t.Errorf("expected plain part before HTML part, got plain=%d html=%d", plain, html)
	}

	if !strings.HasSuffix(raw, "--\r\n") {
		t.Error("message must end with the closing boundary")
	}
}

func TestDeliverUnreachableHostFails(t *testing.T) {
	tr := transport.NewSMTPTransport()
	settings := model.TransportSettings{
		SenderEmail: "me@x.com",
		Password:    "secret",
		Host:        "127.0.0.1",
		Port:        "1", // nothing listens here
	}

	err := tr.Deliver(context.Background(), settings, "you@y.com", model.NewRenderedMessage("s", "b"))
	if err == nil {
		t.Fatal("expected a delivery error for an unreachable host")
	}
}
