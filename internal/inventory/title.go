package inventory

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdownParser = goldmark.New().Parser()

// firstHeading returns the text of the first level-1 heading, or of the first heading of any
// level when there is no level-1 heading.
func firstHeading(body []byte) string {
	root := markdownParser.Parse(text.NewReader(body))

	var first, h1 *gmast.Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		heading, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		if first == nil {
			first = heading
		}
		if heading.Level == 1 {
			h1 = heading
			return gmast.WalkStop, nil
		}
		return gmast.WalkSkipChildren, nil
	})

	switch {
	case h1 != nil:
		return nodeText(h1, body)
	case first != nil:
		return nodeText(first, body)
	}
	return ""
}

// nodeText concatenates the literal text below n, dropping emphasis and link markup.
func nodeText(n gmast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}
