package output

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/vartaverse/varta/cli/pkg/config"
)

func capture(t *testing.T, format string) *bytes.Buffer {
	t.Helper()
	if err := config.Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}
	config.Set("output.format", format)

	color.NoColor = true
	buf := &bytes.Buffer{}
	prev := Out
	Out = buf
	t.Cleanup(func() { Out = prev })
	return buf
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		isValid bool
	}{
		{"json", true},
		{"text", true},
		{"table", true},
		{"invalid", false},
	}

	for _, tt := range tests {
		if got := ValidateFormat(tt.format); got != tt.isValid {
			t.Errorf("ValidateFormat(%s): got %v, want %v", tt.format, got, tt.isValid)
		}
	}
}

func TestGetFormat(t *testing.T) {
	capture(t, "json")
	if GetFormat() != FormatJSON || !IsJSON() {
		t.Errorf("Expected json format, got %v", GetFormat())
	}

	config.Set("output.format", "bogus")
	if GetFormat() != FormatText {
		t.Errorf("Unknown formats should fall back to text, got %v", GetFormat())
	}
}

func TestPrintRecord_TextSortsKeys(t *testing.T) {
	buf := capture(t, "text")

	if err := PrintRecord("Post", map[string]interface{}{"title": "Hi", "likes": 3}); err != nil {
		t.Fatalf("PrintRecord failed: %v", err)
	}

	want := "Post:\nlikes: 3\ntitle: Hi\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestPrintTable_JSONMode(t *testing.T) {
	buf := capture(t, "json")

	if err := PrintTable([]string{"ID", "Title"}, [][]string{{"1", "Hi"}}); err != nil {
		t.Fatalf("PrintTable failed: %v", err)
	}

	if !strings.Contains(buf.String(), `"Title": "Hi"`) {
		t.Errorf("expected JSON rows, got %s", buf.String())
	}
}

func TestPrintTable_Text(t *testing.T) {
	buf := capture(t, "text")

	if err := PrintTable([]string{"ID", "Title"}, [][]string{{"1", "Hi"}, {"22", "There"}}); err != nil {
		t.Fatalf("PrintTable failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[2], "22") {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestMessages(t *testing.T) {
	buf := capture(t, "text")

	PrintSuccess("Post %s created", "4")
	PrintError("Failed to like post")
	PrintWarning("careful")
	PrintInfo("info")

	want := "Post 4 created\nError: Failed to like post\nWarning: careful\ninfo\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestFormatAsJSON(t *testing.T) {
	s, err := FormatAsJSON(map[string]int{"a": 1})
	if err != nil || s != `{"a":1}` {
		t.Errorf("got %q, %v", s, err)
	}
}
