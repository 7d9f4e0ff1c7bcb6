package output

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"awsls/internal/paging"
)

type named struct {
	Name string `json:"name"`
}

type stringer struct{}

func (stringer) String() string { return "custom" }

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"json", "jsonl", "text"} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("ParseFormat(%q) returned error: %v", valid, err)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestPrinter_Formats(t *testing.T) {
	testCases := []struct {
		format Format
		values []any
		want   string
	}{
		{FormatJSONL, []any{named{"a"}, named{"b"}}, "{\"name\":\"a\"}\n{\"name\":\"b\"}\n"},
		{FormatJSON, []any{named{"a"}}, "{\n  \"name\": \"a\"\n}\n"},
		{FormatText, []any{"plain", stringer{}, named{"c"}}, "plain\ncustom\n{\"name\":\"c\"}\n"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.format), func(t *testing.T) {
			var buf bytes.Buffer
			p := NewPrinter(&buf, tc.format)
			for _, v := range tc.values {
				if err := p.Print(v); err != nil {
					t.Fatalf("Print returned error: %v", err)
				}
			}
			if buf.String() != tc.want {
				t.Errorf("output = %q, want %q", buf.String(), tc.want)
			}
			if p.Count() != len(tc.values) {
				t.Errorf("count = %d, want %d", p.Count(), len(tc.values))
			}
		})
	}
}

func TestPrinter_TextSkipsNilString(t *testing.T) {
	var buf bytes.Buffer
	var s *string
	if err := NewPrinter(&buf, FormatText).Print(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestSelectors(t *testing.T) {
	next := "tok"
	page := paging.Page[named]{
		Items:     []named{{"a"}, {"b"}},
		NextToken: &next,
		Response:  "raw",
	}
	selectors := NewSelectors(Selectors[named]{
		"names": Field(func(n named) any { return n.Name }),
	})

	testCases := map[string][]any{
		"":      {named{"a"}, named{"b"}},
		"items": {named{"a"}, named{"b"}},
		"*":     {"raw"},
		"token": {"tok"},
		"names": {"a", "b"},
	}
	for name, want := range testCases {
		sel, err := selectors.Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q) returned error: %v", name, err)
		}
		if got := sel(page); !reflect.DeepEqual(got, want) {
			t.Errorf("select %q = %v, want %v", name, got, want)
		}
	}
}

func TestSelectors_Unknown(t *testing.T) {
	_, err := NewSelectors[named](nil).Resolve("Bogus")
	if err == nil {
		t.Fatal("expected error for unknown selector")
	}
	if !strings.Contains(err.Error(), "items") {
		t.Errorf("error should list valid names, got: %v", err)
	}
}

func TestToken_NoTokenOnLastPage(t *testing.T) {
	if got := Token(paging.Page[named]{}); len(got) != 0 {
		t.Errorf("expected no token output, got %v", got)
	}
}
