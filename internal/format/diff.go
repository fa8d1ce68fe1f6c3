package format

import (
	"bytes"
	"fmt"

	"github.com/conduit-lang/jsscan/compiler/scanner"
	"github.com/fatih/color"
)

// TokenDiff is the outcome of comparing two token streams.
type TokenDiff struct {
	Left    []TokenRecord
	Right   []TokenRecord
	Changed bool
}

// Diff tokenizes both sources and compares their token sequences.
func Diff(leftSource, rightSource string) (*TokenDiff, error) {
	leftItems, err := scanner.Tokenize(leftSource)
	if err != nil {
		return nil, fmt.Errorf("tokenizing left: %w", err)
	}
	rightItems, err := scanner.Tokenize(rightSource)
	if err != nil {
		return nil, fmt.Errorf("tokenizing right: %w", err)
	}

	left := ToRecords(leftSource, leftItems)
	right := ToRecords(rightSource, rightItems)

	return &TokenDiff{
		Left:    left,
		Right:   right,
		Changed: !recordsEqual(left, right),
	}, nil
}

func recordsEqual(a, b []TokenRecord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Text != b[i].Text {
			return false
		}
	}
	return true
}

// String renders a colorized, token-level unified diff using the classic
// longest-common-subsequence backtrack, so unchanged runs of tokens are not
// repeated as both a deletion and an addition.
func (d *TokenDiff) String() string {
	if !d.Changed {
		return color.GreenString("no token differences")
	}

	var buf bytes.Buffer
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	dim := color.New(color.FgHiBlack)

	ops := lcsDiff(d.Left, d.Right)
	for _, op := range ops {
		switch op.kind {
		case opEqual:
			dim.Fprintf(&buf, "  %s %q\n", op.record.Kind, op.record.Text)
		case opDelete:
			red.Fprintf(&buf, "- %s %q\n", op.record.Kind, op.record.Text)
		case opInsert:
			green.Fprintf(&buf, "+ %s %q\n", op.record.Kind, op.record.Text)
		}
	}
	return buf.String()
}

type diffOpKind int

const (
	opEqual diffOpKind = iota
	opDelete
	opInsert
)

type diffOp struct {
	kind   diffOpKind
	record TokenRecord
}

// lcsDiff computes a minimal edit script between a and b via dynamic
// programming over the longest common subsequence of (Kind, Text) pairs.
func lcsDiff(a, b []TokenRecord) []diffOp {
	n, m := len(a), len(b)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i].Kind == b[j].Kind && a[i].Text == b[j].Text {
				dp[i][j] = dp[i+1][j+1] + 1
			} else if dp[i+1][j] >= dp[i][j+1] {
				dp[i][j] = dp[i+1][j]
			} else {
				dp[i][j] = dp[i][j+1]
			}
		}
	}

	var ops []diffOp
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i].Kind == b[j].Kind && a[i].Text == b[j].Text:
			ops = append(ops, diffOp{kind: opEqual, record: a[i]})
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			ops = append(ops, diffOp{kind: opDelete, record: a[i]})
			i++
		default:
			ops = append(ops, diffOp{kind: opInsert, record: b[j]})
			j++
		}
	}
	for ; i < n; i++ {
		ops = append(ops, diffOp{kind: opDelete, record: a[i]})
	}
	for ; j < m; j++ {
		ops = append(ops, diffOp{kind: opInsert, record: b[j]})
	}
	return ops
}
