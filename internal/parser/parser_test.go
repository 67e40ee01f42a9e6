package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	stderrors "errors"

	"github.com/jasondoong/formiko/internal/errors"
	"github.com/jasondoong/formiko/internal/models"
)

func TestParse_SimpleObjectPreservesOrder(t *testing.T) {
	jsonStr := `{"zeta": 1, "alpha": 2, "mid": 3}`
	v, err := Parse(strings.NewReader(jsonStr))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	obj, ok := v.(*models.Object)
	if !ok {
		t.Fatalf("Parse() root is not a *models.Object, got %T", v)
	}

	var keys []string
	for _, m := range obj.Members {
		keys = append(keys, m.Key)
	}
	want := []string{"zeta", "alpha", "mid"}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("member %d = %q, want %q (source order must survive)", i, keys[i], want[i])
		}
	}
}

func TestParse_ValueKinds(t *testing.T) {
	jsonStr := `{"s": "text", "n": 3.25, "b": true, "nul": null, "arr": [1, 2]}`
	v, err := Parse(strings.NewReader(jsonStr))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	obj := v.(*models.Object)
	if s, _ := obj.Get("s"); s != models.String("text") {
		t.Errorf("s = %v, want String(text)", s)
	}
	if n, _ := obj.Get("n"); n != models.Number("3.25") {
		t.Errorf("n = %v, want Number(3.25)", n)
	}
	if b, _ := obj.Get("b"); b != models.Bool(true) {
		t.Errorf("b = %v, want Bool(true)", b)
	}
	if nul, _ := obj.Get("nul"); nul != (models.Null{}) {
		t.Errorf("nul = %v, want Null", nul)
	}
	arr, _ := obj.Get("arr")
	if a, ok := arr.(*models.Array); !ok || a.Len() != 2 {
		t.Errorf("arr = %v, want array of 2", arr)
	}
}

func TestParse_NumberLiteralPreserved(t *testing.T) {
	// The literal source form must survive so re-encoding is lossless.
	v, err := ParseString(`[1.50, 1e3, -0.0]`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	arr := v.(*models.Array)
	want := []models.Number{"1.50", "1e3", "-0.0"}
	for i, w := range want {
		if arr.Elements[i] != w {
			t.Errorf("element %d = %v, want %v", i, arr.Elements[i], w)
		}
	}
}

func TestParse_DuplicateKeyLastWins(t *testing.T) {
	v, err := ParseString(`{"a": 1, "b": 2, "a": 3}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	obj := v.(*models.Object)
	if obj.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", obj.Len())
	}
	if obj.Members[0].Key != "a" {
		t.Errorf("first member = %q, want a (duplicate keeps first position)", obj.Members[0].Key)
	}
	if got, _ := obj.Get("a"); got != models.Number("3") {
		t.Errorf("a = %v, want 3 (last value wins)", got)
	}
}

func TestParse_ScalarRoot(t *testing.T) {
	for input, want := range map[string]models.Value{
		`"hi"`: models.String("hi"),
		`42`:   models.Number("42"),
		`true`: models.Bool(true),
		`null`: models.Null{},
	} {
		v, err := ParseString(input)
		if err != nil {
			t.Fatalf("ParseString(%q) error = %v", input, err)
		}
		if v != want {
			t.Errorf("ParseString(%q) = %v, want %v", input, v, want)
		}
	}
}

func TestParseString_Empty(t *testing.T) {
	_, err := ParseString("   \n\t ")
	if err == nil {
		t.Fatal("ParseString() expected error for whitespace input")
	}
	if !stderrors.Is(err, errors.ErrEmptyInput) {
		t.Errorf("error = %v, want ErrEmptyInput", err)
	}
	if !errors.IsParseError(err) {
		t.Errorf("error %v should be a parse error", err)
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := ParseString(`{"a": }`)
	if err == nil {
		t.Fatal("ParseString() expected error for malformed JSON")
	}
	if !errors.IsParseError(err) {
		t.Errorf("error %v should be a parse error", err)
	}
	if !strings.Contains(err.Error(), "offset") {
		t.Errorf("error %v should carry the syntax error offset", err)
	}
}

func TestParse_TrailingData(t *testing.T) {
	_, err := ParseString(`{"a": 1} {"b": 2}`)
	if err == nil {
		t.Fatal("ParseString() expected error for multiple documents")
	}
	if !stderrors.Is(err, errors.ErrMultipleJSON) {
		t.Errorf("error = %v, want ErrMultipleJSON", err)
	}
}

func TestParse_TrailingWhitespaceAllowed(t *testing.T) {
	if _, err := ParseString("{\"a\": 1}\n\n  "); err != nil {
		t.Fatalf("trailing whitespace should be accepted, got %v", err)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(path, []byte(`{"ok": true}`), 0644); err != nil {
		t.Fatal(err)
	}

	v, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if _, ok := v.(*models.Object); !ok {
		t.Fatalf("ParseFile() root = %T, want object", v)
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.json"))
	if !stderrors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
}

func TestParseFile_Empty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	_, err := ParseFile(path)
	if !stderrors.Is(err, errors.ErrFileEmpty) {
		t.Errorf("error = %v, want ErrFileEmpty", err)
	}
}
