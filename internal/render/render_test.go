package render_test

import (
	"testing"

	"github.com/unclebandit/automailer-backend/internal/model"
	"github.com/unclebandit/automailer-backend/internal/render"
)

func TestRenderReplacesPlaceholders(t *testing.T) {
	row := model.Row{"name": "Ann", "due_date": "2025-09-01", "balance": 1250}
	got := render.Render("Hi {name}, due {due_date}, Rs {balance}", row)
	want := "Hi Ann, due 2025-09-01, Rs 1250"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderMissingKeyBecomesEmpty(t *testing.T) {
	got := render.Render("Hi {name}{nope}!", model.Row{"name": "Bob"})
	if got != "Hi Bob!" {
		t.Errorf("expected missing placeholder to resolve empty, got %q", got)
	}
}

func TestRenderAbsentValueBecomesEmpty(t *testing.T) {
	got := render.Render("Hi {name}!", model.Row{"name": nil})
	if got != "Hi !" {
		t.Errorf("expected nil value to render empty, got %q", got)
	}
}

func TestRenderMalformedBracesPassThrough(t *testing.T) {
	cases := []struct {
		template string
		want     string
	}{
		{"no placeholders", "no placeholders"},
		{"open { brace", "open { brace"},
		{"trailing {", "trailing {"},
		{"{}", "{}"},
		{"{bad name}", "{bad name}"},
		{"} before {name}", "} before Ann"},
		{"{a{name}", "{aAnn"},
	}
	row := model.Row{"name": "Ann"}
	for _, c := range cases {
		if got := render.Render(c.template, row); got != c.want {
			t.Errorf("Render(%q) = %q, want %q", c.template, got, c.want)
		}
	}
}

func TestRenderEmptyTemplate(t *testing.T) {
	if got := render.Render("", model.Row{"x": "y"}); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestStringify(t *testing.T) {
	if got := render.Stringify(nil); got != "" {
		t.Errorf("expected empty string for nil, got %q", got)
	}
	if got := render.Stringify("abc"); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
	if got := render.Stringify(42); got != "42" {
		t.Errorf("expected 42, got %q", got)
	}
	if got := render.Stringify(3.5); got != "3.5" {
		t.Errorf("expected 3.5, got %q", got)
	}
}
