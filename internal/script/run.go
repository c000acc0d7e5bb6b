package script

import (
	"context"
	"fmt"
	"strconv"

	"morph/internal/ast"
	"morph/internal/compiler"
	"morph/internal/errs"
	"morph/internal/trace"
)

// Result describes one applied edit.
type Result struct {
	Index      int // 1-based position in the script
	Edit       *Edit
	File       *compiler.SourceFile
	Generation ast.Generation
}

// Run applies the edits of s to p in order, loading files on first use.
// It stops at the first failure; edits already applied stay applied.
func Run(ctx context.Context, p *compiler.Project, s *Script) ([]Result, error) {
	ctx, run := trace.Start(ctx, nil, trace.ScopeProject, "script")
	run.WithFile(s.Path)
	results := make([]Result, 0, len(s.Edits))
	for i := range s.Edits {
		if err := ctx.Err(); err != nil {
			run.EndErr(err)
			return results, err
		}
		e := &s.Edits[i]
		ectx, span := trace.Start(ctx, nil, trace.ScopeProject, e.Op)
		span.WithExtra("target", e.Target)
		sf, err := p.AddSourceFile(ectx, e.File)
		if err == nil {
			err = apply(sf, e)
		}
		if err != nil {
			span.EndErr(err)
			run.EndErr(err)
			return results, fmt.Errorf("edit %d (%s %s in %s): %w", i+1, e.Op, e.Target, e.File, err)
		}
		span.WithFile(sf.FilePath()).WithGeneration(uint64(sf.Generation())).End("")
		results = append(results, Result{Index: i + 1, Edit: e, File: sf, Generation: sf.Generation()})
	}
	run.WithExtra("edits", strconv.Itoa(len(results))).End("")
	return results, nil
}

type modifierable interface {
	AddModifier(text string) (*compiler.Node, error)
	RemoveModifier(text string) (bool, error)
	ToggleModifier(text string, value *bool) error
}

type initializable interface {
	SetInitializer(text string) error
	RemoveInitializer() error
}

type renamer interface {
	Rename(name string) error
}

type orderable interface {
	SetOrder(index int) error
}

type documentable interface {
	JSDocs() ([]*compiler.JSDoc, error)
	AddJSDoc(description string) (*compiler.JSDoc, error)
}

func apply(sf *compiler.SourceFile, e *Edit) error {
	target, err := Resolve(sf, e.sel)
	if err != nil {
		return err
	}
	switch e.Op {
	case OpAddModifier, OpRemoveModifier, OpToggleModifier:
		m, err := capability[modifierable](target, e.Op)
		if err != nil {
			return err
		}
		switch e.Op {
		case OpAddModifier:
			_, err = m.AddModifier(e.Text)
		case OpRemoveModifier:
			var removed bool
			removed, err = m.RemoveModifier(e.Text)
			if err == nil && !removed {
				err = errs.InvalidOperation("%s has no %s modifier", e.sel, e.Text)
			}
		default:
			var value *bool
			if v, ok := e.Value.(bool); ok {
				value = &v
			}
			err = m.ToggleModifier(e.Text, value)
		}
		return err
	case OpSetInitializer, OpRemoveInitializer:
		in, err := capability[initializable](target, e.Op)
		if err != nil {
			return err
		}
		if e.Op == OpSetInitializer {
			text := e.Text
			if v, ok := e.Value.(string); ok {
				text = sf.Document().Quote(v)
			}
			return in.SetInitializer(text)
		}
		return in.RemoveInitializer()
	case OpRename:
		r, err := capability[renamer](target, e.Op)
		if err != nil {
			return err
		}
		return r.Rename(e.Text)
	case OpRemove:
		r, err := capability[compiler.Remover](target, e.Op)
		if err != nil {
			return err
		}
		return r.Remove()
	case OpSetOrder:
		o, err := capability[orderable](target, e.Op)
		if err != nil {
			return err
		}
		return o.SetOrder(int(e.Value.(int64)))
	case OpSetDoc:
		d, err := capability[documentable](target, e.Op)
		if err != nil {
			return err
		}
		return setDoc(d, e.Text)
	}
	return errs.NotImplementedForValue(e.Op)
}

// setDoc rewrites the first doc block, adding one when there is none. An
// empty text removes every block.
func setDoc(d documentable, text string) error {
	docs, err := d.JSDocs()
	if err != nil {
		return err
	}
	if text == "" {
		for _, doc := range docs {
			if err := doc.Remove(); err != nil {
				return err
			}
		}
		return nil
	}
	if len(docs) == 0 {
		_, err = d.AddJSDoc(text)
		return err
	}
	return docs[0].SetComment(text)
}

func capability[T any](w compiler.Wrapper, op string) (T, error) {
	c, ok := w.(T)
	if !ok {
		var zero T
		return zero, errs.InvalidOperation("%s does not support %s", w.Base().Kind(), op)
	}
	return c, nil
}

// Resolve finds the declaration sel addresses in sf.
func Resolve(sf *compiler.SourceFile, sel Selector) (compiler.Wrapper, error) {
	var (
		w   compiler.Wrapper
		err error
	)
	switch sel.Kind {
	case SelClass:
		w, err = found(sf.Class(sel.Name))
	case SelInterface:
		w, err = found(sf.Interface(sel.Name))
	case SelEnum:
		w, err = found(sf.Enum(sel.Name))
	case SelFunction:
		w, err = found(sf.Function(sel.Name))
	case SelVariable:
		w, err = found(sf.VariableDeclaration(sel.Name))
	case SelNamespace:
		w, err = found(sf.Namespace(sel.Name))
	case SelType:
		w, err = found(sf.TypeAlias(sel.Name))
	case SelProperty, SelMethod:
		w, err = classMember(sf, sel)
	case SelMember:
		var e *compiler.EnumDeclaration
		if e, err = sf.Enum(sel.Parent); err == nil && e != nil {
			w, err = found(e.Member(sel.Name))
		}
	default:
		return nil, errs.NotImplementedForValue(sel.Kind)
	}
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, errs.InvalidOperation("no declaration matches %s in %s", sel, sf.FilePath())
	}
	return w, nil
}

func classMember(sf *compiler.SourceFile, sel Selector) (compiler.Wrapper, error) {
	c, err := sf.Class(sel.Parent)
	if err != nil {
		return nil, err
	}
	if c != nil {
		if sel.Kind == SelMethod {
			return found(c.Method(sel.Name))
		}
		return found(c.Property(sel.Name))
	}
	if sel.Kind != SelProperty {
		return nil, nil
	}
	i, err := sf.Interface(sel.Parent)
	if err != nil || i == nil {
		return nil, err
	}
	return found(i.Property(sel.Name))
}

// found turns a typed nil from a lookup into an untyped nil Wrapper.
func found[T interface {
	comparable
	compiler.Wrapper
}](w T, err error) (compiler.Wrapper, error) {
	var zero T
	if err != nil || w == zero {
		return nil, err
	}
	return w, nil
}
