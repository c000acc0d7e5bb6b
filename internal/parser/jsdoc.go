package parser

import (
	"strings"

	"morph/internal/ast"
	"morph/internal/source"
	"morph/internal/token"
)

// parseDocs turns the doc blocks in the current token's leading trivia into
// JSDoc nodes. The token that follows starts after the last block.
func (p *Parser) parseDocs() []ast.NodeID {
	tok := p.cur()
	var docs []ast.NodeID
	pos := tok.FullStart()
	for _, tr := range tok.Leading {
		if tr.Kind != token.TriviaDocBlock {
			continue
		}
		docs = append(docs, p.buildDoc(tr, pos))
		pos = tr.Span.End
	}
	if len(docs) > 0 {
		p.nextPos = int64(pos)
	}
	return docs
}

func (p *Parser) buildDoc(tr token.Trivia, pos uint32) ast.NodeID {
	var tags []ast.NodeID
	for _, r := range scanDocTags(tr.Text) {
		sp := source.Span{File: p.file, Start: tr.Span.Start + uint32(r[0]), End: tr.Span.Start + uint32(r[1])}
		tags = append(tags, p.b.Leaf(ast.KindJSDocTag, sp, sp.Start))
	}
	return p.b.Spanned(ast.KindJSDoc, tr.Span, pos, tags...)
}

// scanDocTags returns the [start, end) offsets of every "@tag ..." inside a
// doc block. A tag starts at the beginning of a line, after the "*" gutter,
// and runs until the next tag or the closing "*/".
func scanDocTags(text string) [][2]int {
	if !strings.HasPrefix(text, "/**") {
		return nil
	}
	bodyEnd := len(text)
	if strings.HasSuffix(text, "*/") && len(text) >= 5 {
		bodyEnd -= 2
	}

	var starts []int
	lineStart := 3
	for lineStart <= bodyEnd {
		lineEnd := strings.IndexByte(text[lineStart:bodyEnd], '\n')
		if lineEnd < 0 {
			lineEnd = bodyEnd
		} else {
			lineEnd += lineStart
		}
		j := skipBlanks(text, lineStart, lineEnd)
		if lineStart != 3 && j < lineEnd && text[j] == '*' {
			j = skipBlanks(text, j+1, lineEnd)
		}
		if j+1 < lineEnd && text[j] == '@' && isTagChar(text[j+1]) {
			starts = append(starts, j)
		}
		lineStart = lineEnd + 1
	}

	out := make([][2]int, 0, len(starts))
	for i, s := range starts {
		end := bodyEnd
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		for end > s && strings.IndexByte(" \t\r\n*", text[end-1]) >= 0 {
			end--
		}
		out = append(out, [2]int{s, end})
	}
	return out
}

func skipBlanks(text string, i, end int) int {
	for i < end && (text[i] == ' ' || text[i] == '\t' || text[i] == '\r') {
		i++
	}
	return i
}

func isTagChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
