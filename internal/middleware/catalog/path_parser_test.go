package catalog

import (
	"testing"

	"github.com/hfsreader/hfsreader/internal/hfserr"
)

func TestPathParserParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"bare name", "ReadMe", []string{"ReadMe"}},
		{"leading colon relative to root", ":System Folder:Finder", []string{"System Folder", "Finder"}},
		{"trailing colon ignored", "System Folder:", []string{"System Folder"}},
		{"both leading and trailing", ":System Folder:", []string{"System Folder"}},
		{"empty component is parent-up", "a::b", []string{"a", "", "b"}},
		{"multiple parent-up", "a:::b", []string{"a", "", "", "b"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPathParser()
			got, err := p.Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.in, err)
			}
			if len(got.Components) != len(tc.want) {
				t.Fatalf("Parse(%q) = %v, want %v", tc.in, got.Components, tc.want)
			}
			for i := range tc.want {
				if got.Components[i] != tc.want[i] {
					t.Fatalf("Parse(%q)[%d] = %q, want %q", tc.in, i, got.Components[i], tc.want[i])
				}
			}
		})
	}
}

func TestPathParserParseErrors(t *testing.T) {
	tests := []string{
		"",
		":",
		":::",
	}
	p := NewPathParser()
	for _, in := range tests {
		_, err := p.Parse(in)
		if err == nil {
			t.Fatalf("Parse(%q): expected error, got nil", in)
		}
		if !hfserr.Is(err, hfserr.PathSyntax) {
			t.Fatalf("Parse(%q): error kind is not PathSyntax: %v", in, err)
		}
	}
}

func TestPathParserParseNameTooLong(t *testing.T) {
	long := make([]rune, 256)
	for i := range long {
		long[i] = 'a'
	}
	p := NewPathParser()
	if _, err := p.Parse(string(long)); err == nil {
		t.Fatal("expected error for component exceeding 255 units")
	}
}
