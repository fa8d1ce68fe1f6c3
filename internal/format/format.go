// Package format renders scanner output: a colorized column table for
// terminals, JSON Lines for pipelines, and a token-level diff between two
// sources.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/conduit-lang/jsscan/compiler/scanner"
	"github.com/fatih/color"
)

// TokenRecord is the JSON-serializable shape of one scanned item.
type TokenRecord struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// ToRecords flattens scanner items into JSON-friendly records, skipping the
// terminal EoF item.
func ToRecords(source string, items []scanner.Item) []TokenRecord {
	out := make([]TokenRecord, 0, len(items))
	for _, it := range items {
		if it.Token.IsEoF() {
			continue
		}
		out = append(out, TokenRecord{
			Kind:  it.Token.Kind.String(),
			Text:  DisplayText(it.Token, source, it.Span),
			Start: it.Span.Start,
			End:   it.Span.End,
		})
	}
	return out
}

// DisplayText picks the text to show for a token: its own Text field when
// set, and always for strings/templates (escapes kept as written, quotes
// and template delimiters stripped), otherwise the raw source span.
func DisplayText(t scanner.Token, source string, span scanner.Span) string {
	if t.Text != "" || t.Kind == scanner.KindString || t.Kind == scanner.KindTemplate {
		return t.Text
	}
	return span.Text(source)
}

// WriteJSONLines writes one JSON object per token to w.
func WriteJSONLines(w io.Writer, source string, items []scanner.Item) error {
	enc := json.NewEncoder(w)
	for _, rec := range ToRecords(source, items) {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

var kindColor = map[string]*color.Color{
	"Keyword":  color.New(color.FgMagenta, color.Bold),
	"Ident":    color.New(color.FgWhite),
	"Number":   color.New(color.FgYellow),
	"String":   color.New(color.FgGreen),
	"Template": color.New(color.FgGreen),
	"RegEx":    color.New(color.FgCyan),
	"Punct":    color.New(color.FgBlue),
	"Comment":  color.New(color.FgHiBlack),
	"Boolean":  color.New(color.FgMagenta),
	"Null":     color.New(color.FgMagenta),
}

// WriteTable writes a colorized, column-aligned rendering of items to w.
func WriteTable(w io.Writer, source string, items []scanner.Item, noColor bool) {
	records := ToRecords(source, items)

	widths := [3]int{len("KIND"), len("SPAN"), len("TEXT")}
	rows := make([][3]string, 0, len(records))
	for _, r := range records {
		span := fmt.Sprintf("%d:%d", r.Start, r.End)
		text := strings.ReplaceAll(r.Text, "\n", "\\n")
		if len(text) > 60 {
			text = text[:57] + "..."
		}
		row := [3]string{r.Kind, span, text}
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
		rows = append(rows, row)
	}

	header := color.New(color.Bold, color.FgCyan)
	if noColor {
		header.DisableColor()
	}
	header.Fprintln(w, padRight("KIND", widths[0])+"  "+padRight("SPAN", widths[1])+"  "+"TEXT")

	for _, row := range rows {
		c := kindColor[row[0]]
		if c == nil {
			c = color.New(color.FgWhite)
		}
		if noColor {
			fmt.Fprintf(w, "%s  %s  %s\n", padRight(row[0], widths[0]), padRight(row[1], widths[1]), row[2])
			continue
		}
		c.Fprint(w, padRight(row[0], widths[0]))
		fmt.Fprint(w, "  "+padRight(row[1], widths[1])+"  ")
		c.Fprintln(w, row[2])
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
