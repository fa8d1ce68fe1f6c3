package lspserver

import (
	"testing"

	"github.com/conduit-lang/jsscan/compiler/scanner"
)

func TestComputeLineStartsAndPositionFor(t *testing.T) {
	text := "let x = 1;\nlet y = 2;\n"
	starts := computeLineStarts(text)
	if len(starts) != 3 {
		t.Fatalf("got %d line starts, want 3: %v", len(starts), starts)
	}

	line, char := positionFor(starts, 0)
	if line != 0 || char != 0 {
		t.Fatalf("positionFor(0) = (%d,%d), want (0,0)", line, char)
	}

	secondLineOffset := starts[1]
	line, char = positionFor(starts, secondLineOffset+4)
	if line != 1 || char != 4 {
		t.Fatalf("positionFor(%d) = (%d,%d), want (1,4)", secondLineOffset+4, line, char)
	}
}

func TestEncodeSemanticTokensProducesQuintuples(t *testing.T) {
	source := "let x = 1;"
	items, err := scanner.Tokenize(source)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	data := encodeSemanticTokens(source, items)
	if len(data)%5 != 0 {
		t.Fatalf("encodeSemanticTokens produced %d entries, not a multiple of 5", len(data))
	}
	if len(data) == 0 {
		t.Fatalf("expected at least one semantic token")
	}
	// First token's deltaLine/deltaStart is absolute, since prevLine/prevChar start at 0.
	if data[0] != 0 || data[1] != 0 {
		t.Fatalf("first token delta = (%d,%d), want (0,0)", data[0], data[1])
	}
}

func TestSemanticTokenTypeIndexMapsComments(t *testing.T) {
	if _, ok := semanticTokenTypeIndex(scanner.KindComment); !ok {
		t.Fatalf("expected comment kind to map to a semantic token type")
	}
	if idx, _ := semanticTokenTypeIndex(scanner.KindKeyword); idx != 0 {
		t.Fatalf("keyword should map to type index 0, got %d", idx)
	}
}
