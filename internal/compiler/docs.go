package compiler

import (
	"regexp"
	"strings"

	"morph/internal/ast"
	"morph/internal/errs"
	"morph/internal/manip"
)

// DocumentationableNode manages the doc comments in front of a declaration.
type DocumentationableNode struct{ n *Node }

func (d DocumentationableNode) JSDocs() ([]*JSDoc, error) {
	tree, id, err := d.n.live()
	if err != nil {
		return nil, err
	}
	return wrapAs[*JSDoc](d.n.sf.wrapAll(tree.ChildrenOfKind(id, ast.KindJSDoc))), nil
}

// DocumentationComment joins the comments of every block, or returns "".
func (d DocumentationableNode) DocumentationComment() (string, error) {
	docs, err := d.JSDocs()
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		c, err := doc.Comment()
		if err != nil {
			return "", err
		}
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// AddJSDoc appends a doc block after the existing ones.
func (d DocumentationableNode) AddJSDoc(description string) (*JSDoc, error) {
	tree, id, err := d.n.live()
	if err != nil {
		return nil, err
	}
	kids := tree.Children(id)
	count := len(tree.ChildrenOfKind(id, ast.KindJSDoc))
	if count == len(kids) {
		return nil, errs.InvalidOperation("%s has nothing to document", tree.Kind(id))
	}
	at := tree.Span(kids[count]).Start
	doc := d.n.doc()
	indent := doc.IndentationOf(tree.Span(id).Start)
	text := renderDoc(description, nil, indent, doc.Newline()) + doc.Newline() + indent
	if _, err := manip.InsertIntoParent(doc, manip.InsertIntoParentOptions{
		Parent:           id,
		InsertPos:        at,
		Text:             text,
		ChildIndex:       count,
		InsertItemsCount: 1,
	}); err != nil {
		return nil, err
	}
	docs, err := d.JSDocs()
	if err != nil {
		return nil, err
	}
	if err := errs.CheckEqual(len(docs), count+1, "Adding a doc block should add exactly one."); err != nil {
		return nil, err
	}
	return docs[count], nil
}

func (d DocumentationableNode) removeAll() error {
	docs, err := d.JSDocs()
	if err != nil {
		return err
	}
	for i := len(docs) - 1; i >= 0; i-- {
		if err := docs[i].Remove(); err != nil {
			return err
		}
	}
	return nil
}

var docLineBreak = regexp.MustCompile(`\r?\n`)

// renderDoc writes a multi-line doc block. Lines after the first are
// prefixed with indent.
func renderDoc(description string, tags []string, indent, nl string) string {
	var sb strings.Builder
	sb.WriteString("/**")
	line := func(s string) {
		sb.WriteString(nl + indent + " *")
		if s != "" {
			sb.WriteString(" " + s)
		}
	}
	if strings.TrimSpace(description) != "" {
		for _, l := range docLineBreak.Split(description, -1) {
			line(strings.TrimRight(l, " \t"))
		}
	}
	for _, tag := range tags {
		for _, l := range docLineBreak.Split(tag, -1) {
			line(strings.TrimSpace(l))
		}
	}
	sb.WriteString(nl + indent + " */")
	return sb.String()
}

// JSDoc is one /** */ block.
type JSDoc struct{ *Node }

// Tags returns the @ sections of the block.
func (j *JSDoc) Tags() ([]*JSDocTag, error) {
	tree, id, err := j.live()
	if err != nil {
		return nil, err
	}
	return wrapAs[*JSDocTag](j.sf.wrapAll(tree.Children(id))), nil
}

// Comment returns the description without the comment markers, the
// gutter or the tags.
func (j *JSDoc) Comment() (string, error) {
	tree, id, err := j.live()
	if err != nil {
		return "", err
	}
	text := tree.Text(id)
	if tags := tree.Children(id); len(tags) > 0 {
		text = text[:tree.Span(tags[0]).Start-tree.Span(id).Start]
	} else {
		text = strings.TrimSuffix(text, "*/")
	}
	text = strings.TrimPrefix(text, "/**")
	lines := docLineBreak.Split(text, -1)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimLeft(l, " \t")
		l = strings.TrimPrefix(l, "*")
		l = strings.TrimPrefix(l, " ")
		out = append(out, strings.TrimRight(l, " \t"))
	}
	return strings.TrimSpace(strings.Join(out, "\n")), nil
}

// SetComment rewrites the block in multi-line form with a new description,
// keeping the tags.
func (j *JSDoc) SetComment(description string) error {
	tree, id, err := j.live()
	if err != nil {
		return err
	}
	var tags []string
	for _, t := range tree.Children(id) {
		tags = append(tags, tree.Text(t))
	}
	doc := j.doc()
	sp := tree.Span(id)
	text := renderDoc(description, tags, doc.IndentationOf(sp.Start), doc.Newline())
	_, err = manip.ReplaceText(doc, []manip.EditOperation{{
		InsertPos: sp.Start,
		Removed:   sp,
		Text:      text,
		Parent:    id,
	}})
	return err
}

// Remove deletes the block and the whitespace up to what follows it.
func (j *JSDoc) Remove() error {
	id, err := j.id()
	if err != nil {
		return err
	}
	_, err = manip.RemoveChildren(j.doc(), manip.RemoveChildrenOptions{
		Children:                []ast.NodeID{id},
		RemoveFollowingSpaces:   true,
		RemoveFollowingNewLines: true,
	})
	return err
}

// JSDocTag is one "@name text" section of a doc block.
type JSDocTag struct{ *Node }

// TagName returns the name without the @.
func (t *JSDocTag) TagName() (string, error) {
	text, err := t.Text()
	if err != nil {
		return "", err
	}
	name, _, _ := strings.Cut(strings.TrimPrefix(text, "@"), " ")
	return strings.TrimSpace(name), nil
}

// Comment returns what follows the tag name, with the gutter removed.
func (t *JSDocTag) Comment() (string, error) {
	text, err := t.Text()
	if err != nil {
		return "", err
	}
	text = strings.TrimPrefix(text, "@")
	i := strings.IndexAny(text, " \t\r\n")
	if i < 0 {
		return "", nil
	}
	lines := docLineBreak.Split(text[i:], -1)
	for k, l := range lines {
		l = strings.TrimLeft(l, " \t")
		if k > 0 {
			l = strings.TrimPrefix(strings.TrimPrefix(l, "*"), " ")
		}
		lines[k] = l
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
