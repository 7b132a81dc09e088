package prompter

import (
	"bytes"
	"strings"
	"testing"
)

func withInput(t *testing.T, in string) *bytes.Buffer {
	t.Helper()
	prevIn, prevOut := In, Out
	out := &bytes.Buffer{}
	In = strings.NewReader(in)
	Out = out
	t.Cleanup(func() {
		In, Out = prevIn, prevOut
	})
	return out
}

func TestPromptString(t *testing.T) {
	out := withInput(t, "  alice@example.com  \n")

	got, err := PromptString("Email: ")
	if err != nil {
		t.Fatalf("PromptString failed: %v", err)
	}
	if got != "alice@example.com" {
		t.Errorf("got %q", got)
	}
	if out.String() != "Email: " {
		t.Errorf("unexpected prompt output %q", out.String())
	}
}

func TestPromptString_NoTrailingNewline(t *testing.T) {
	withInput(t, "last")

	got, err := PromptString("> ")
	if err != nil {
		t.Fatalf("PromptString failed: %v", err)
	}
	if got != "last" {
		t.Errorf("got %q", got)
	}
}

func TestPromptString_EOF(t *testing.T) {
	withInput(t, "")

	if _, err := PromptString("> "); err == nil {
		t.Error("Expected error on empty input")
	}
}

func TestSequentialPromptsShareBuffer(t *testing.T) {
	withInput(t, "first\nsecret\n")

	a, err := PromptString("a: ")
	if err != nil {
		t.Fatal(err)
	}
	b, err := PromptPassword("b: ")
	if err != nil {
		t.Fatal(err)
	}
	if a != "first" || b != "secret" {
		t.Errorf("got %q and %q", a, b)
	}
}

func TestPromptConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		out := withInput(t, tt.input)
		got, err := PromptConfirm("Sure?")
		if err != nil {
			t.Fatalf("PromptConfirm(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("PromptConfirm(%q): got %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "Sure? (y/n) " {
			t.Errorf("unexpected prompt %q", out.String())
		}
	}
}

func TestPromptMultilineString(t *testing.T) {
	withInput(t, "line one\nline two\n\nignored\n")

	got, err := PromptMultilineString("Text", 10)
	if err != nil {
		t.Fatal(err)
	}
	if got != "line one\nline two" {
		t.Errorf("got %q", got)
	}
}

func TestPromptMultilineString_MaxLines(t *testing.T) {
	withInput(t, "a\nb\nc\n")

	got, err := PromptMultilineString("Text", 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != "a\nb" {
		t.Errorf("got %q", got)
	}
}

func TestConfirmer(t *testing.T) {
	withInput(t, "")
	if !(Confirmer{AssumeYes: true}).Confirm("Delete?") {
		t.Error("AssumeYes should confirm without reading")
	}

	withInput(t, "y\n")
	if !(Confirmer{}).Confirm("Delete?") {
		t.Error("Expected yes")
	}

	withInput(t, "")
	if (Confirmer{}).Confirm("Delete?") {
		t.Error("Unreadable answer should be treated as no")
	}
}
