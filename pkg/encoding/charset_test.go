package encoding

import (
	"io"
	"strings"
	"testing"
)

func TestCharsetReader(t *testing.T) {
	tests := []struct {
		name  string
		label string
		input string
		want  string
	}{
		{"latin1", "ISO-8859-1", "caf\xe9", "café"},
		{"latin1 alias", "latin1", "\xfcber", "über"},
		{"windows-1252", "windows-1252", "\x80 5", "€ 5"},
		{"euc-kr", "EUC-KR", "\xc7\xd1", "한"},
		{"cp949", "cp949", "\xc7\xd1", "한"},
		{"shift_jis", "Shift_JIS", "\x82\xa0", "あ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := CharsetReader(tt.label, strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("CharsetReader(%q): %v", tt.label, err)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("klingon-8"); err == nil {
		t.Error("expected an error for an unknown charset")
	}
	if _, err := CharsetReader("klingon-8", strings.NewReader("")); err == nil {
		t.Error("expected an error for an unknown charset")
	}
}
