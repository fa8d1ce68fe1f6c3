package lspserver

import (
	"context"
	"encoding/json"
	"strings"

	cerrors "github.com/conduit-lang/jsscan/compiler/errors"
	"github.com/conduit-lang/jsscan/compiler/scanner"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// semanticTokenTypes maps the scanner's token kinds onto the LSP semantic
// token type legend, in the order their index is encoded in responses.
var semanticTokenTypes = []string{
	"keyword", "variable", "number", "string", "regexp", "operator", "comment",
}

var semanticTokensLegend = protocol.SemanticTokensLegend{
	TokenTypes:     semanticTokenTypes,
	TokenModifiers: []string{},
}

func semanticTokenTypeIndex(k scanner.Kind) (int, bool) {
	switch k {
	case scanner.KindKeyword, scanner.KindBoolean, scanner.KindNull:
		return 0, true
	case scanner.KindIdent:
		return 1, true
	case scanner.KindNumber:
		return 2, true
	case scanner.KindString, scanner.KindTemplate:
		return 3, true
	case scanner.KindRegex:
		return 4, true
	case scanner.KindPunct:
		return 5, true
	case scanner.KindComment:
		return 6, true
	default:
		return 0, false
	}
}

func (s *Server) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse didOpen params")
	}
	uri := string(params.TextDocument.URI)
	s.docsMu.Lock()
	s.docs[uri] = params.TextDocument.Text
	s.docsMu.Unlock()

	s.publishDiagnostics(ctx, uri, params.TextDocument.Text)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse didChange params")
	}
	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}
	uri := string(params.TextDocument.URI)
	text := params.ContentChanges[len(params.ContentChanges)-1].Text

	s.docsMu.Lock()
	s.docs[uri] = text
	s.docsMu.Unlock()

	s.publishDiagnostics(ctx, uri, text)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse didClose params")
	}
	s.docsMu.Lock()
	delete(s.docs, string(params.TextDocument.URI))
	s.docsMu.Unlock()
	return reply(ctx, nil, nil)
}

// handleSemanticTokensFull tokenizes the whole document and encodes the
// result using the LSP semantic tokens delta-encoded line/char scheme.
func (s *Server) handleSemanticTokensFull(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.SemanticTokensParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse semanticTokens params")
	}

	s.docsMu.RLock()
	text := s.docs[string(params.TextDocument.URI)]
	s.docsMu.RUnlock()

	items, _ := scanner.Tokenize(text)
	data := encodeSemanticTokens(text, items)

	return reply(ctx, protocol.SemanticTokens{Data: data}, nil)
}

// encodeSemanticTokens produces the flat [deltaLine, deltaStart, length,
// tokenType, tokenModifiers] quintuples LSP expects. Each token's line and
// byte column are looked up from the offsets of '\n' characters in text.
func encodeSemanticTokens(text string, items []scanner.Item) []uint32 {
	lineStarts := computeLineStarts(text)

	var data []uint32
	prevLine, prevChar := uint32(0), uint32(0)

	for _, it := range items {
		if it.Token.IsEoF() {
			continue
		}
		typeIdx, ok := semanticTokenTypeIndex(it.Token.Kind)
		if !ok {
			continue
		}
		line, char := positionFor(lineStarts, it.Span.Start)
		length := uint32(it.Span.Len())

		var deltaLine, deltaStart uint32
		if line == prevLine {
			deltaLine = 0
			deltaStart = char - prevChar
		} else {
			deltaLine = line - prevLine
			deltaStart = char
		}

		data = append(data, deltaLine, deltaStart, length, uint32(typeIdx), 0)
		prevLine, prevChar = line, char
	}
	return data
}

func computeLineStarts(text string) []int {
	starts := []int{0}
	for i, r := range text {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func positionFor(lineStarts []int, offset int) (line, char uint32) {
	lo, hi := 0, len(lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return uint32(lo), uint32(offset - lineStarts[lo])
}

// publishDiagnostics scans text and reports any scanner error as a single
// diagnostic; a clean scan clears previously published diagnostics.
func (s *Server) publishDiagnostics(ctx context.Context, uri, text string) {
	_, err := scanner.Tokenize(text)

	var diags []protocol.Diagnostic
	if err != nil {
		if ce, ok := err.(cerrors.CompilerError); ok {
			line := uint32(0)
			if ce.Location.Line > 0 {
				line = uint32(ce.Location.Line - 1)
			}
			col := uint32(0)
			if ce.Location.Column > 0 {
				col = uint32(ce.Location.Column - 1)
			}
			diags = append(diags, protocol.Diagnostic{
				Range: protocol.Range{
					Start: protocol.Position{Line: line, Character: col},
					End:   protocol.Position{Line: line, Character: col + 1},
				},
				Severity: protocol.DiagnosticSeverityError,
				Code:     ce.Code,
				Source:   "jsscan",
				Message:  strings.TrimSpace(ce.Message),
			})
		}
	}

	if s.client == nil {
		return
	}
	if err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(uri),
		Diagnostics: diags,
	}); err != nil {
		s.logger.Warn("failed to publish diagnostics", zap.Error(err))
	}
}
