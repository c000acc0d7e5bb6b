// Package manip applies text splices to a parsed document. Every operation
// computes its edits from the current tree, previews the resulting text,
// reparses it and commits buffer, tree and node mapping together. A failed
// step leaves the document untouched.
package manip

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"morph/internal/ast"
	"morph/internal/diag"
	"morph/internal/errs"
	"morph/internal/observ"
	"morph/internal/parser"
	"morph/internal/registry"
	"morph/internal/source"
	"morph/internal/trace"
)

// Settings carry the formatting conventions used when text is generated.
type Settings struct {
	Indent  string // one indentation level; four spaces when empty
	Newline string // "\n" or "\r\n"; detected from the text when empty
	Quote   byte   // '"' or '\'' for string literals morph writes
}

// DefaultSettings matches the conventions of most TypeScript code.
func DefaultSettings() Settings {
	return Settings{Indent: "    ", Quote: '"'}
}

var literalEscapes = map[rune]string{'\\': `\\`, '\n': `\n`, '\r': `\r`, '\t': `\t`}

// QuoteString renders text as a string literal in the configured quote.
func (s Settings) QuoteString(text string) string {
	q := s.Quote
	if q != '\'' {
		q = '"'
	}
	var sb strings.Builder
	sb.WriteByte(q)
	for _, r := range text {
		switch {
		case literalEscapes[r] != "":
			sb.WriteString(literalEscapes[r])
		case r == rune(q):
			sb.WriteByte('\\')
			sb.WriteByte(q)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}

// Validator inspects the text an edit would produce before it is committed.
type Validator interface {
	Validate(src []byte) error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(src []byte) error

func (f ValidatorFunc) Validate(src []byte) error { return f(src) }

// Committer receives every new tree together with the mapping from the old
// one. Node registries implement it.
type Committer interface {
	Apply(next *ast.Tree, pairs registry.Mapping) registry.Stats
}

// Applied describes one committed operation.
type Applied struct {
	Operation  string
	File       source.FileID
	Generation ast.Generation
	Edits      []source.Edit
	Retained   int
	Forgotten  int
}

// Recorder is notified after each commit.
type Recorder interface {
	Record(Applied)
}

type Options struct {
	Name       string // shown in trace events
	Settings   Settings
	Validators []Validator
	Recorder   Recorder
	Tracer     trace.Tracer
	Timer      *observ.Timer // optional; receives parse and reconcile phases
	MaxErrors  uint
}

// ParseError carries the diagnostics of a rejected text.
type ParseError struct {
	Bag *diag.Bag
}

func (e *ParseError) Error() string { return e.Bag.Summary(3) }

// Document is the text buffer of one file together with its current tree.
// It is not safe for concurrent use.
type Document struct {
	name       string
	buf        *source.Buffer
	tree       *ast.Tree
	settings   Settings
	validators []Validator
	committers []Committer
	recorder   Recorder
	tracer     trace.Tracer
	timer      *observ.Timer
	maxErrors  uint
}

// NewDocument parses text. Text with syntax errors is rejected with an
// InvalidOperationError wrapping a ParseError.
func NewDocument(file source.FileID, text []byte, opts Options) (*Document, error) {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	if opts.Settings.Indent == "" {
		opts.Settings.Indent = DefaultSettings().Indent
	}
	d := &Document{
		name:       opts.Name,
		buf:        source.NewBuffer(file, text),
		settings:   opts.Settings,
		validators: opts.Validators,
		recorder:   opts.Recorder,
		tracer:     opts.Tracer,
		timer:      opts.Timer,
		maxErrors:  opts.MaxErrors,
	}
	tree, err := d.parse(d.buf.Bytes(), 0)
	if err != nil {
		return nil, err
	}
	d.tree = tree
	return d, nil
}

func (d *Document) Tree() *ast.Tree { return d.tree }

func (d *Document) Text() string { return d.buf.Text() }

func (d *Document) Bytes() []byte { return d.buf.Bytes() }

func (d *Document) File() source.FileID { return d.buf.File() }

func (d *Document) Generation() ast.Generation { return d.tree.Gen }

func (d *Document) Buffer() *source.Buffer { return d.buf }

// Attach registers c to receive every future tree.
func (d *Document) Attach(c Committer) { d.committers = append(d.committers, c) }

// AddValidator registers an extra pre-commit check.
func (d *Document) AddValidator(v Validator) { d.validators = append(d.validators, v) }

func (d *Document) SetRecorder(r Recorder) { d.recorder = r }

// Newline returns the configured newline or the one the text already uses.
func (d *Document) Newline() string {
	if d.settings.Newline != "" {
		return d.settings.Newline
	}
	return d.buf.NewlineKind()
}

func (d *Document) Indent() string { return d.settings.Indent }

// Quote renders text as a string literal in the document's quote style.
func (d *Document) Quote(text string) string { return d.settings.QuoteString(text) }

// Position converts an offset in the current text to a line and byte
// column, both 1-based.
func (d *Document) Position(off uint32) source.LineCol { return d.buf.Resolve(off) }

// IndentationOf returns the indentation of the line holding off.
func (d *Document) IndentationOf(off uint32) string { return d.buf.Indentation(off) }

func (d *Document) parse(src []byte, gen ast.Generation) (*ast.Tree, error) {
	var phase int
	if d.timer != nil {
		phase = d.timer.Begin("parse")
	}
	sp := trace.Begin(d.tracer, trace.ScopeFile, "parse", 0).WithFile(d.name).WithGeneration(uint64(gen))
	tree, bag := parser.ParseFile(d.buf.File(), src, parser.Options{
		MaxErrors:  d.maxErrors,
		Generation: gen,
	})
	sp.WithExtra("diagnostics", strconv.Itoa(bag.Len())).End("")
	if d.timer != nil {
		d.timer.End(phase, fmt.Sprintf("gen %d", gen))
	}
	if bag.HasErrors() {
		return nil, &errs.InvalidOperationError{Message: "text has syntax errors", Err: &ParseError{Bag: bag}}
	}
	return tree, nil
}

// Result reports a committed operation.
type Result struct {
	Generation ast.Generation
	Pairs      registry.Mapping
	Stats      registry.Stats
}

// Map returns the new id of a node of the previous tree.
func (r Result) Map(old ast.NodeID) (ast.NodeID, bool) {
	id, ok := r.Pairs[old]
	return id, ok
}

// checkFunc inspects the new tree before it is committed.
type checkFunc func(next *ast.Tree, pairs registry.Mapping) error

// apply runs the validate, preview, parse, reconcile and commit steps.
func (d *Document) apply(name string, edits []source.Edit, ch registry.Change, check checkFunc) (Result, error) {
	p, err := d.prepare(name, edits, ch, check)
	if err != nil {
		return Result{}, err
	}
	return p.Commit()
}

// Pending is an edit that passed validation and parsing but has not been
// committed. It is bound to the generation it was prepared against.
type Pending struct {
	doc   *Document
	name  string
	base  *ast.Tree
	edits []source.Edit
	next  []byte
	tree  *ast.Tree
	pairs registry.Mapping
	span  *trace.Span
	done  bool
}

func (d *Document) prepare(name string, edits []source.Edit, ch registry.Change, check checkFunc) (_ *Pending, err error) {
	sp := trace.Begin(d.tracer, trace.ScopeEdit, name, 0).WithFile(d.name)
	defer func() {
		if err != nil {
			sp.EndErr(err)
		}
	}()

	next, err := d.buf.Preview(edits)
	if err != nil {
		return nil, &errs.ArgumentError{Arg: "edits", Message: err.Error()}
	}
	if bytes.Equal(next, d.buf.Bytes()) {
		ch = registry.Identity()
	}
	for _, v := range d.validators {
		if err := v.Validate(next); err != nil {
			return nil, &errs.InvalidOperationError{Message: name + " produces rejected text", Err: err}
		}
	}

	tree, err := d.parse(next, d.tree.Gen+1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var phase int
	if d.timer != nil {
		phase = d.timer.Begin("reconcile")
	}
	pairs := registry.Reconcile(d.tree, tree, ch)
	if d.timer != nil {
		d.timer.End(phase, fmt.Sprintf("%d paired", len(pairs)))
	}
	if check != nil {
		if err := check(tree, pairs); err != nil {
			return nil, err
		}
	}
	return &Pending{doc: d, name: name, base: d.tree, edits: edits, next: next, tree: tree, pairs: pairs, span: sp}, nil
}

// Commit swaps the prepared text and tree in. It fails when the document
// moved on since the edit was prepared.
func (p *Pending) Commit() (_ Result, err error) {
	d := p.doc
	if p.done {
		return Result{}, errs.InvalidOperation("%s was already committed or discarded", p.name)
	}
	p.done = true
	defer func() { p.span.EndErr(err) }()
	if d.tree != p.base {
		return Result{}, errs.InvalidOperation("%s was prepared against generation %d, document is at %d", p.name, p.base.Gen, d.tree.Gen)
	}

	var delta int64
	for _, e := range p.edits {
		delta += e.Delta()
	}
	d.buf.Commit(p.next)
	d.tree = p.tree
	res := Result{Generation: p.tree.Gen, Pairs: p.pairs}
	for _, c := range d.committers {
		st := c.Apply(p.tree, p.pairs)
		res.Stats.Retained += st.Retained
		res.Stats.Forgotten += st.Forgotten
	}

	p.span.WithGeneration(uint64(p.tree.Gen)).
		WithExtra("retained", strconv.Itoa(res.Stats.Retained)).
		WithExtra("forgotten", strconv.Itoa(res.Stats.Forgotten)).
		WithExtra("delta", strconv.FormatInt(delta, 10))
	if d.recorder != nil {
		d.recorder.Record(Applied{
			Operation:  p.name,
			File:       d.buf.File(),
			Generation: p.tree.Gen,
			Edits:      p.edits,
			Retained:   res.Stats.Retained,
			Forgotten:  res.Stats.Forgotten,
		})
	}
	return res, nil
}

// Discard drops an uncommitted edit.
func (p *Pending) Discard() {
	if p.done {
		return
	}
	p.done = true
	p.span.End("discarded")
}

// node resolves id in the current tree or reports an ArgumentError.
func (d *Document) node(id ast.NodeID, arg string) (*ast.Node, error) {
	n := d.tree.Node(id)
	if n == nil {
		return nil, &errs.ArgumentError{Arg: arg, Message: fmt.Sprintf("node %d does not exist in generation %d", id, d.tree.Gen)}
	}
	return n, nil
}
