package compiler

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"morph/internal/errs"
	"morph/internal/fsys"
	"morph/internal/manip"
	"morph/internal/observ"
	"morph/internal/source"
	"morph/internal/trace"
)

type Options struct {
	Host       fsys.Host // in-memory when nil
	Settings   manip.Settings
	Tracer     trace.Tracer
	Validators []manip.Validator // run on every post-edit text before commit
	Recorder   manip.Recorder
	Timer      *observ.Timer
	// MaxParallel bounds AddSourceFiles; GOMAXPROCS when zero.
	MaxParallel int
}

// Project is a set of source files sharing a host and formatting settings.
// Like its files, it is not safe for concurrent use.
type Project struct {
	opts       Options
	host       fsys.Host
	tracer     trace.Tracer
	validators []manip.Validator
	fset       *source.FileSet
	files      map[string]*SourceFile
	order      []*SourceFile
	svc        *LanguageService
}

func NewProject(opts Options) *Project {
	p := &Project{
		opts:       opts,
		host:       opts.Host,
		tracer:     opts.Tracer,
		validators: opts.Validators,
		fset:       source.NewFileSet(),
		files:      make(map[string]*SourceFile),
	}
	if p.host == nil {
		p.host = fsys.NewMemoryHost()
	}
	if p.tracer == nil {
		p.tracer = trace.Nop
	}
	return p
}

func (p *Project) Host() fsys.Host { return p.host }

// CreateSourceFile adds a file with the given text. It fails when the path
// is taken or the text does not parse.
func (p *Project) CreateSourceFile(path, text string) (*SourceFile, error) {
	if err := errs.CheckNotWhitespace(path, "path"); err != nil {
		return nil, err
	}
	abs := fsys.Abs(p.host, path)
	if _, ok := p.files[abs]; ok {
		return nil, errs.InvalidOperation("a source file already exists at %s", abs)
	}
	sf, err := p.load(context.Background(), abs, []byte(text), false)
	if err != nil {
		return nil, err
	}
	p.register(sf)
	return sf, nil
}

// AddSourceFile reads and parses a file from the host. A file already in
// the project is returned as is.
func (p *Project) AddSourceFile(ctx context.Context, path string) (*SourceFile, error) {
	abs := fsys.Abs(p.host, path)
	if sf, ok := p.files[abs]; ok {
		return sf, nil
	}
	sf, err := p.read(ctx, abs)
	if err != nil {
		return nil, err
	}
	p.register(sf)
	return sf, nil
}

// AddSourceFiles adds every file matching globs. Files are read and parsed
// in parallel; the first failure cancels the rest and nothing is added.
func (p *Project) AddSourceFiles(ctx context.Context, globs ...string) ([]*SourceFile, error) {
	ctx, span := trace.Start(ctx, p.tracer, trace.ScopeProject, "add_source_files")
	paths, err := p.host.Glob(ctx, globs...)
	if err != nil {
		span.End(err.Error())
		return nil, err
	}
	var todo []string
	for _, path := range paths {
		if _, ok := p.files[path]; !ok {
			todo = append(todo, path)
		}
	}
	span.WithExtra("files", strconv.Itoa(len(todo)))

	loaded := make([]*SourceFile, len(todo))
	g, gctx := errgroup.WithContext(ctx)
	limit := p.opts.MaxParallel
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)
	for i, path := range todo {
		g.Go(func() error {
			sf, err := p.read(gctx, path)
			if err != nil {
				return err
			}
			loaded[i] = sf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End(err.Error())
		return nil, err
	}
	for _, sf := range loaded {
		p.register(sf)
	}
	span.End("")
	return loaded, nil
}

func (p *Project) read(ctx context.Context, abs string) (*SourceFile, error) {
	data, err := p.host.ReadFile(ctx, abs)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", abs, err)
	}
	return p.load(ctx, abs, data, true)
}

// load parses text into a source file that is not yet registered. It is
// safe to call from several goroutines.
func (p *Project) load(ctx context.Context, abs string, text []byte, onDisk bool) (*SourceFile, error) {
	_, span := trace.Start(ctx, p.tracer, trace.ScopeFile, "load")
	span.WithFile(abs)
	id := p.fset.Add(abs, text)
	sf, err := newSourceFile(p, id, abs, p.fset.Get(id).Buffer.Bytes(), onDisk)
	span.EndErr(err)
	return sf, err
}

func (p *Project) register(sf *SourceFile) {
	p.files[sf.path] = sf
	p.order = append(p.order, sf)
}

// SourceFile returns the file at path, or nil.
func (p *Project) SourceFile(path string) *SourceFile {
	return p.files[fsys.Abs(p.host, path)]
}

// SourceFileByID returns the file with the given id, or nil.
func (p *Project) SourceFileByID(id source.FileID) *SourceFile {
	for _, sf := range p.order {
		if sf.fileID == id {
			return sf
		}
	}
	return nil
}

func (p *Project) SourceFileOrErr(path string) (*SourceFile, error) {
	return errs.CheckNotNil(p.SourceFile(path), "could not find source file "+fsys.Abs(p.host, path))
}

// SourceFiles lists the files in the order they were added.
func (p *Project) SourceFiles() []*SourceFile {
	out := make([]*SourceFile, len(p.order))
	copy(out, p.order)
	return out
}

// RemoveSourceFile drops sf from the project and forgets all of its
// wrappers. It reports whether the file was part of the project.
func (p *Project) RemoveSourceFile(sf *SourceFile) bool {
	if sf == nil || p.files[sf.path] != sf {
		return false
	}
	delete(p.files, sf.path)
	for i, o := range p.order {
		if o == sf {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	p.fset.Forget(sf.path)
	n := sf.reg.ForgetAll()
	trace.Point(p.tracer, trace.ScopeProject, "remove_source_file", sf.path, map[string]string{"forgotten": strconv.Itoa(n)})
	return true
}

// Save writes every unsaved file.
func (p *Project) Save(ctx context.Context) error {
	ctx, span := trace.Start(ctx, p.tracer, trace.ScopeProject, "save")
	for _, sf := range p.order {
		if err := sf.Save(ctx); err != nil {
			span.EndErr(err)
			return err
		}
	}
	span.End("")
	return nil
}

// UnsavedSourceFiles lists files whose text differs from the host.
func (p *Project) UnsavedSourceFiles() []*SourceFile {
	var out []*SourceFile
	for _, sf := range p.order {
		if !sf.IsSaved() {
			out = append(out, sf)
		}
	}
	return out
}

// LanguageService answers symbol queries over the project's current trees.
func (p *Project) LanguageService() *LanguageService {
	if p.svc == nil {
		p.svc = newLanguageService(p)
	}
	return p.svc
}
