package render

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestTruncateDisplayWidth(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{in: "short", width: 10, want: "short"},
		{in: "abcdefgh", width: 5, want: "abcd…"},
		{in: "abc", width: 1, want: "…"},
		{in: "abc", width: 0, want: ""},
	}
	for _, tc := range tests {
		if got := TruncateDisplayWidth(tc.in, tc.width); got != tc.want {
			t.Fatalf("TruncateDisplayWidth(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := TruncateMiddle("/home/user/Downloads/archive", 11)
	if ansi.StringWidth(got) > 11 {
		t.Fatalf("width %d exceeds limit: %q", ansi.StringWidth(got), got)
	}
	if got[:1] != "/" || got[len(got)-1:] != "e" {
		t.Fatalf("ends not kept: %q", got)
	}
	if TruncateMiddle("/tmp", 10) != "/tmp" {
		t.Fatal("short value changed")
	}
}
