package compiler

import (
	"fmt"
	"slices"

	"morph/internal/errs"
	"morph/internal/structure"
)

// Capability names one trait a node kind composes.
type Capability uint8

const (
	ChildOrderable Capability = iota
	Decoratable
	Modifierable
	Named
	PropertyNamed
	BindingNamed
	Exportable
	Ambientable
	Scoped
	Staticable
	Abstractable
	Readonlyable
	Asyncable
	QuestionTokenable
	Typed
	ReturnTyped
	InitializerExpressionable
	Documentationable
	Parametered
	Bodied

	capabilityCount
)

var capabilityNames = [...]string{
	ChildOrderable:            "ChildOrderable",
	Decoratable:               "Decoratable",
	Modifierable:              "Modifierable",
	Named:                     "Named",
	PropertyNamed:             "PropertyNamed",
	BindingNamed:              "BindingNamed",
	Exportable:                "Exportable",
	Ambientable:               "Ambientable",
	Scoped:                    "Scoped",
	Staticable:                "Staticable",
	Abstractable:              "Abstractable",
	Readonlyable:              "Readonlyable",
	Asyncable:                 "Asyncable",
	QuestionTokenable:         "QuestionTokenable",
	Typed:                     "Typed",
	ReturnTyped:               "ReturnTyped",
	InitializerExpressionable: "InitializerExpressionable",
	Documentationable:         "Documentationable",
	Parametered:               "Parametered",
	Bodied:                    "Bodied",
}

var _ = [1]struct{}{}[len(capabilityNames)-int(capabilityCount)]

func (c Capability) String() string {
	if int(c) < len(capabilityNames) {
		return capabilityNames[c]
	}
	return fmt.Sprintf("Capability(%d)", c)
}

// fillOrder is the order in which fill steps run. The constant order above
// follows it, so sorting by value is enough; capabilities without a fill
// step are skipped.
func fillOrder(caps []Capability) []Capability {
	out := slices.Clone(caps)
	slices.Sort(out)
	return out
}

// Fill applies s to w: every capability of w's kind fills its part of s in
// the canonical order, then the kind's own step runs.
func Fill[S any](w Wrapper, s *S) error {
	if s == nil {
		return &errs.ArgumentError{Arg: "structure", Message: "nil structure"}
	}
	n := w.Base()
	if n.IsForgotten() {
		return n.entry.Stale()
	}
	for _, c := range fillOrder(w.Capabilities()) {
		if err := fillStep(n, c, s); err != nil {
			return fmt.Errorf("fill %s: %w", c, err)
		}
	}
	if own, ok := w.(interface{ fillOwn(s any) error }); ok {
		return own.fillOwn(s)
	}
	return nil
}

// setFlag applies a boolean field; removal means false.
func setFlag(f structure.Field[bool], set func(bool) error) error {
	switch f.State() {
	case structure.Set:
		v, _ := f.Get()
		return set(v)
	case structure.Removed:
		return set(false)
	}
	return nil
}

// setText applies a text field.
func setText(f structure.Field[string], set func(string) error, remove func() error) error {
	switch f.State() {
	case structure.Set:
		v, _ := f.Get()
		return set(v)
	case structure.Removed:
		return remove()
	}
	return nil
}

func fillStep(n *Node, c Capability, s any) error {
	switch c {
	case Named, PropertyNamed, BindingNamed:
		p, ok := s.(interface{ NamedPart() *structure.Named })
		if !ok {
			return nil
		}
		return setText(p.NamedPart().Name, func(v string) error { return setNameText(n, v) },
			func() error { return errs.InvalidOperation("a name cannot be removed") })
	case Exportable:
		p, ok := s.(interface{ ExportablePart() *structure.Exportable })
		if !ok {
			return nil
		}
		e := ExportableNode{n}
		if err := setFlag(p.ExportablePart().IsExported, e.SetIsExported); err != nil {
			return err
		}
		return setFlag(p.ExportablePart().IsDefaultExport, e.SetIsDefaultExport)
	case Ambientable:
		p, ok := s.(interface{ AmbientablePart() *structure.Ambientable })
		if !ok {
			return nil
		}
		return setFlag(p.AmbientablePart().HasDeclareKeyword, func(v bool) error {
			return AmbientableNode{n}.ToggleDeclareKeyword(&v)
		})
	case Scoped:
		p, ok := s.(interface{ ScopedPart() *structure.Scoped })
		if !ok {
			return nil
		}
		f := p.ScopedPart().Scope
		sc := ScopedNode{n: n}
		switch f.State() {
		case structure.Set:
			v, _ := f.Get()
			return sc.SetScope(v)
		case structure.Removed:
			return sc.SetScope(structure.ScopeNone)
		}
	case Staticable:
		if p, ok := s.(interface{ StaticablePart() *structure.Staticable }); ok {
			return setFlag(p.StaticablePart().IsStatic, StaticableNode{n}.SetIsStatic)
		}
	case Abstractable:
		if p, ok := s.(interface{ AbstractablePart() *structure.Abstractable }); ok {
			return setFlag(p.AbstractablePart().IsAbstract, AbstractableNode{n}.SetIsAbstract)
		}
	case Readonlyable:
		if p, ok := s.(interface{ ReadonlyablePart() *structure.Readonlyable }); ok {
			return setFlag(p.ReadonlyablePart().IsReadonly, ReadonlyableNode{n}.SetIsReadonly)
		}
	case Asyncable:
		if p, ok := s.(interface{ AsyncablePart() *structure.Asyncable }); ok {
			return setFlag(p.AsyncablePart().IsAsync, AsyncableNode{n}.SetIsAsync)
		}
	case QuestionTokenable:
		if p, ok := s.(interface {
			QuestionTokenablePart() *structure.QuestionTokenable
		}); ok {
			return setFlag(p.QuestionTokenablePart().HasQuestionToken, QuestionTokenableNode{n}.SetHasQuestionToken)
		}
	case Typed:
		if p, ok := s.(interface{ TypedPart() *structure.Typed }); ok {
			t := TypedNode{n}
			return setText(p.TypedPart().Type, t.SetType, t.RemoveType)
		}
	case ReturnTyped:
		if p, ok := s.(interface{ ReturnTypedPart() *structure.ReturnTyped }); ok {
			r := ReturnTypedNode{n}
			return setText(p.ReturnTypedPart().ReturnType, r.SetReturnType, r.RemoveReturnType)
		}
	case InitializerExpressionable:
		if p, ok := s.(interface {
			InitializerPart() *structure.InitializerExpressionable
		}); ok {
			i := InitializerExpressionableNode{n}
			return setText(p.InitializerPart().Initializer, i.SetInitializer, i.RemoveInitializer)
		}
	case Documentationable:
		p, ok := s.(interface{ DocumentedPart() *structure.Documented })
		if !ok {
			return nil
		}
		d := DocumentationableNode{n}
		f := p.DocumentedPart().Docs
		if f.IsUnset() {
			return nil
		}
		if err := d.removeAll(); err != nil {
			return err
		}
		docs, _ := f.Get()
		for _, text := range docs {
			if _, err := d.AddJSDoc(text); err != nil {
				return err
			}
		}
	case Bodied:
		if p, ok := s.(interface{ BodiedPart() *structure.Bodied }); ok {
			b := BodiedNode{n}
			return setText(p.BodiedPart().BodyText, b.SetBodyText, b.RemoveBody)
		}
	}
	return nil
}
