package source

import (
	"testing"
)

func TestBufferPreview(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		edits []Edit
		want  string
		err   bool
	}{
		{name: "insert", text: "let x;", edits: []Edit{{Start: 5, End: 5, Text: " = 1"}}, want: "let x = 1;"},
		{name: "remove", text: "let x = 1;", edits: []Edit{{Start: 5, End: 9}}, want: "let x;"},
		{
			name:  "unsorted multi edit",
			text:  "a b c",
			edits: []Edit{{Start: 4, End: 5, Text: "z"}, {Start: 0, End: 1, Text: "x"}},
			want:  "x b z",
		},
		{name: "reversed", text: "abc", edits: []Edit{{Start: 2, End: 1}}, err: true},
		{name: "out of range", text: "abc", edits: []Edit{{Start: 1, End: 9}}, err: true},
		{name: "overlap", text: "abcdef", edits: []Edit{{Start: 0, End: 3}, {Start: 2, End: 4}}, err: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(0, []byte(tt.text))
			got, err := b.Preview(tt.edits)
			if tt.err {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Preview: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("Preview = %q, want %q", got, tt.want)
			}
			if b.Text() != tt.text {
				t.Fatalf("Preview must not modify the buffer, got %q", b.Text())
			}
		})
	}
}

func TestBufferLines(t *testing.T) {
	b := NewBuffer(0, []byte("class C {\n    a = 1;\r\n}"))
	if got := b.Resolve(14); got != (LineCol{Line: 2, Col: 5}) {
		t.Fatalf("Resolve(14) = %+v", got)
	}
	if got := b.Resolve(9); got != (LineCol{Line: 1, Col: 10}) {
		t.Fatalf("Resolve(9) = %+v", got)
	}
	if got := b.Indentation(16); got != "    " {
		t.Fatalf("Indentation = %q", got)
	}
	if got := b.LineStart(16); got != 10 {
		t.Fatalf("LineStart = %d", got)
	}
	if got := b.NewlineKind(); got != "\n" {
		t.Fatalf("NewlineKind = %q", got)
	}
	b.Commit([]byte("a\r\nb"))
	if got := b.NewlineKind(); got != "\r\n" {
		t.Fatalf("NewlineKind = %q", got)
	}
	if b.Version() != 1 {
		t.Fatalf("Version = %d, want 1", b.Version())
	}
}

func TestFileSetAddStripsBOM(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("./dir/../a.ts", []byte{0xEF, 0xBB, 0xBF, 'x'})
	f := fs.Get(id)
	if f.Buffer.Text() != "x" {
		t.Fatalf("content = %q", f.Buffer.Text())
	}
	if !f.HadBOM {
		t.Fatalf("expected HadBOM")
	}
	if got, ok := fs.Lookup("a.ts"); !ok || got != id {
		t.Fatalf("Lookup = %v, %v", got, ok)
	}
	if fs.Get(99) != nil {
		t.Fatalf("Get out of range must return nil")
	}
	if got := string(f.Encode("y")); got != "\xEF\xBB\xBFy" {
		t.Errorf("Encode = %q", got)
	}
	plain := fs.Get(fs.Add("b.ts", []byte("y")))
	if got := string(plain.Encode("y")); got != "y" {
		t.Errorf("Encode without BOM = %q", got)
	}
}

func TestBufferResolve(t *testing.T) {
	b := NewBuffer(0, []byte("ab\ncd\n\nx"))
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{5, LineCol{2, 3}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tt := range tests {
		if got := b.Resolve(tt.off); got != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}
