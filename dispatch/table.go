package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lepinkainen/texturetool/heuristic"
	"github.com/lepinkainen/texturetool/texture"
	"github.com/lepinkainen/texturetool/types"
)

// ErrUnknownOperator is returned by Lookup for names outside the table. The
// returned error also matches types.ErrConfig.
var ErrUnknownOperator = errors.New("unknown command")

// Kind groups operators for help output and config checks.
type Kind int

const (
	KindTranscode Kind = iota
	KindClassify
	KindCheck
)

func (k Kind) String() string {
	switch k {
	case KindTranscode:
		return "transcode"
	case KindClassify:
		return "classify"
	case KindCheck:
		return "check"
	default:
		return "unknown"
	}
}

// Entry is one row of the operator table.
type Entry struct {
	Name        string
	Kind        Kind
	Destructive bool
	Help        string
	Op          types.Operator
}

// Table is the closed set of operators a run can select.
type Table struct {
	entries []Entry
}

// NewTable binds every operator and classifier to e.
func NewTable(e *texture.Engine) *Table {
	t := &Table{entries: []Entry{
		{Name: "split", Kind: KindTranscode, Op: e.Split2, Help: "RGB plane to _RGB, non-trivial alpha to _A"},
		{Name: "merge", Kind: KindTranscode, Op: e.Merge2, Help: "_RGB + optional _A into _output"},
		{Name: "4split", Kind: KindTranscode, Op: e.Split4, Help: "R, G, B planes to _R/_G/_B, non-trivial alpha to _A"},
		{Name: "4merge", Kind: KindTranscode, Op: e.Merge4, Help: "_R + _G + _B + optional _A into _output"},
		{Name: "paste_blue", Kind: KindTranscode, Op: e.PasteBlue, Help: "source R and G with blue from _B into _output"},
		{Name: "flatten", Kind: KindTranscode, Op: e.Flatten, Help: "RGBA copy into _RGBA with flattened names"},
		{Name: "unflatten", Kind: KindTranscode, Op: e.Unflatten, Help: "flattened _RGBA copy back into _output"},
		{Name: "tga_png", Kind: KindTranscode, Destructive: true, Op: e.FormatConvert, Help: "non-RGBA TGA to PNG, deletes the TGA"},
		{Name: "solid_colors", Kind: KindTranscode, Destructive: true, Op: e.SolidColorCollapse, Help: "move single-colour images to _S"},
		{Name: "verify", Kind: KindCheck, Op: e.Verify, Help: "compare sources with their _output counterparts"},
	}}

	sorter := heuristic.NewSorter(e)
	for _, c := range heuristic.Classifiers {
		t.entries = append(t.entries, Entry{
			Name: c.Name,
			Kind: KindClassify,
			Op:   sorter.Operator(c),
			Help: "copy matches into _" + c.Name + "_<threshold>",
		})
	}
	return t
}

// Lookup finds an operator by case-insensitive name.
func (t *Table) Lookup(name string) (Entry, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, e := range t.entries {
		if e.Name == key {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %w %q (valid: %s)", types.ErrConfig, ErrUnknownOperator, name, strings.Join(t.Names(), ", "))
}

// Entries returns the table rows in registration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Names returns every operator name in registration order.
func (t *Table) Names() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.Name
	}
	return names
}
