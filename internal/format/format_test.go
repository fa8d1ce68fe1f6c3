package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/conduit-lang/jsscan/compiler/scanner"
)

func TestToRecordsSkipsEoF(t *testing.T) {
	items, err := scanner.Tokenize("let x = 1;")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	records := ToRecords("let x = 1;", items)
	for _, r := range records {
		if r.Kind == "EoF" {
			t.Fatalf("ToRecords leaked an EoF record: %v", r)
		}
	}
	if len(records) == 0 {
		t.Fatalf("expected at least one record")
	}
}

func TestWriteJSONLinesProducesOneObjectPerToken(t *testing.T) {
	source := "x + 1"
	items, err := scanner.Tokenize(source)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteJSONLines(&buf, source, items); err != nil {
		t.Fatalf("WriteJSONLines: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(ToRecords(source, items)) {
		t.Fatalf("got %d JSON lines, want %d", len(lines), len(ToRecords(source, items)))
	}
}

func TestDiffDetectsNoChange(t *testing.T) {
	d, err := Diff("let x = 1;", "let x = 1;")
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if d.Changed {
		t.Fatalf("Diff of identical sources reported Changed = true")
	}
}

func TestDiffDetectsChange(t *testing.T) {
	d, err := Diff("let x = 1;", "let x = 2;")
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !d.Changed {
		t.Fatalf("Diff of differing sources reported Changed = false")
	}
	out := d.String()
	if !strings.Contains(out, `"1"`) || !strings.Contains(out, `"2"`) {
		t.Fatalf("diff output missing expected tokens: %q", out)
	}
}
