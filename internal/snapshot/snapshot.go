// Package snapshot is the boundary between a language front-end and the
// analysis core. A snapshot carries a resolved model as raw arenas; decoding
// replays them through model.Builder so every structural invariant is checked
// again before any analysis runs.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"gradelint/internal/ast"
	"gradelint/internal/model"
	"gradelint/internal/source"
	"gradelint/internal/symbols"
	"gradelint/internal/types"
)

// SchemaVersion is bumped whenever Payload changes shape.
const SchemaVersion uint16 = 1

var (
	ErrSchema  = errors.New("snapshot: unsupported schema version")
	ErrCorrupt = errors.New("snapshot: corrupt payload")
)

// FileRecord is one submission file. Content is empty for files known only
// by path.
type FileRecord struct {
	Path    string
	Content []byte
	Flags   source.FileFlags
}

// Payload is the on-disk form of a model. Strings and Types keep their
// sentinel at index 0 so ids survive the round trip unchanged.
type Payload struct {
	Schema uint16

	Files   []FileRecord
	Strings []string
	Types   []types.Type

	Nodes []ast.Node
	Decls DeclPayloads
	Stmts StmtPayloads
	Exprs ExprPayloads

	Symbols  []symbols.Symbol
	Bindings []symbols.Binding
	Roots    []ast.NodeID
}

type DeclPayloads struct {
	Files        []ast.FileData
	Types        []ast.TypeData
	Fields       []ast.FieldData
	Methods      []ast.MethodData
	Constructors []ast.ConstructorData
	Initializers []ast.InitializerData
	Params       []ast.ParamData
	Locals       []ast.LocalData
}

type StmtPayloads struct {
	Blocks    []ast.BlockData
	ExprStmts []ast.ExprStmtData
	Returns   []ast.ReturnData
	Ifs       []ast.IfData
	Loops     []ast.LoopData
	Throws    []ast.ThrowData
	Switches  []ast.SwitchData
	Cases     []ast.CaseData
	Tries     []ast.TryData
	Catches   []ast.CatchData
}

type ExprPayloads struct {
	Literals  []ast.LiteralData
	Names     []ast.NameData
	TypeRefs  []ast.TypeRefData
	Assigns   []ast.AssignData
	Unaries   []ast.UnaryData
	Binaries  []ast.BinaryData
	Calls     []ast.CallData
	News      []ast.NewData
	NewArrays []ast.NewArrayData
	Indices   []ast.IndexData
	Conds     []ast.CondData
	Casts     []ast.CastData
}

// From captures m. The payload shares arena storage with m and must not be
// modified.
func From(m *model.Model) *Payload {
	files := m.Files.Files()
	p := &Payload{
		Schema:   SchemaVersion,
		Files:    make([]FileRecord, 0, len(files)),
		Strings:  m.Strings.Snapshot(),
		Types:    m.Types.Snapshot(),
		Nodes:    m.Tree.Nodes.Slice(),
		Symbols:  m.Symbols.Symbols.Data(),
		Bindings: m.Symbols.Bindings(),
		Roots:    m.Roots,
	}
	for i := range files {
		f := &files[i]
		p.Files = append(p.Files, FileRecord{Path: f.Path, Content: f.Content, Flags: f.Flags})
	}

	d := m.Tree.Decls
	p.Decls = DeclPayloads{
		Files:        d.Files.Slice(),
		Types:        d.Types.Slice(),
		Fields:       d.Fields.Slice(),
		Methods:      d.Methods.Slice(),
		Constructors: d.Constructors.Slice(),
		Initializers: d.Initializers.Slice(),
		Params:       d.Params.Slice(),
		Locals:       d.Locals.Slice(),
	}
	s := m.Tree.Stmts
	p.Stmts = StmtPayloads{
		Blocks:    s.Blocks.Slice(),
		ExprStmts: s.ExprStmts.Slice(),
		Returns:   s.Returns.Slice(),
		Ifs:       s.Ifs.Slice(),
		Loops:     s.Loops.Slice(),
		Throws:    s.Throws.Slice(),
		Switches:  s.Switches.Slice(),
		Cases:     s.Cases.Slice(),
		Tries:     s.Tries.Slice(),
		Catches:   s.Catches.Slice(),
	}
	e := m.Tree.Exprs
	p.Exprs = ExprPayloads{
		Literals:  e.Literals.Slice(),
		Names:     e.Names.Slice(),
		TypeRefs:  e.TypeRefs.Slice(),
		Assigns:   e.Assigns.Slice(),
		Unaries:   e.Unaries.Slice(),
		Binaries:  e.Binaries.Slice(),
		Calls:     e.Calls.Slice(),
		News:      e.News.Slice(),
		NewArrays: e.NewArrays.Slice(),
		Indices:   e.Indices.Slice(),
		Conds:     e.Conds.Slice(),
		Casts:     e.Casts.Slice(),
	}
	return p
}

// Model rebuilds the model. Interned ids must come out identical to the
// recorded ones, otherwise the payload is rejected as corrupt.
func (p *Payload) Model() (*model.Model, error) {
	if p.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, p.Schema, SchemaVersion)
	}

	files := source.NewFileSet()
	for i, f := range p.Files {
		if id := files.Add(f.Path, f.Content, f.Flags); int(id) != i {
			return nil, fmt.Errorf("%w: file %q got id %d", ErrCorrupt, f.Path, id)
		}
	}
	b := model.NewBuilder(files)

	if len(p.Strings) == 0 || p.Strings[0] != "" {
		return nil, fmt.Errorf("%w: missing string sentinel", ErrCorrupt)
	}
	for i, s := range p.Strings[1:] {
		if id := b.Strings.Intern(s); int(id) != i+1 {
			return nil, fmt.Errorf("%w: string %q interned as %d, recorded %d", ErrCorrupt, s, id, i+1)
		}
	}
	if len(p.Types) == 0 {
		return nil, fmt.Errorf("%w: missing type sentinel", ErrCorrupt)
	}
	for i, t := range p.Types[1:] {
		if id := b.Types.Intern(t); int(id) != i+1 {
			return nil, fmt.Errorf("%w: type %d interned as %d", ErrCorrupt, i+1, id)
		}
	}

	replay(b.Tree.Nodes, p.Nodes)
	replayDecls(b.Tree.Decls, &p.Decls)
	replayStmts(b.Tree.Stmts, &p.Stmts)
	replayExprs(b.Tree.Exprs, &p.Exprs)

	for _, sym := range p.Symbols {
		b.Symbols.Declare(sym)
	}
	for _, bind := range p.Bindings {
		if !b.Symbols.Bind(bind.Node, bind.Symbol) {
			return nil, fmt.Errorf("%w: binding node %d to symbol %d", ErrCorrupt, bind.Node, bind.Symbol)
		}
	}
	for _, root := range p.Roots {
		b.AddRoot(root)
	}
	return b.Finish()
}

func replay[T any](arena *ast.Arena[T], items []T) {
	for _, v := range items {
		arena.Allocate(v)
	}
}

func replayDecls(d *ast.Decls, p *DeclPayloads) {
	replay(d.Files, p.Files)
	replay(d.Types, p.Types)
	replay(d.Fields, p.Fields)
	replay(d.Methods, p.Methods)
	replay(d.Constructors, p.Constructors)
	replay(d.Initializers, p.Initializers)
	replay(d.Params, p.Params)
	replay(d.Locals, p.Locals)
}

func replayStmts(s *ast.Stmts, p *StmtPayloads) {
	replay(s.Blocks, p.Blocks)
	replay(s.ExprStmts, p.ExprStmts)
	replay(s.Returns, p.Returns)
	replay(s.Ifs, p.Ifs)
	replay(s.Loops, p.Loops)
	replay(s.Throws, p.Throws)
	replay(s.Switches, p.Switches)
	replay(s.Cases, p.Cases)
	replay(s.Tries, p.Tries)
	replay(s.Catches, p.Catches)
}

func replayExprs(e *ast.Exprs, p *ExprPayloads) {
	replay(e.Literals, p.Literals)
	replay(e.Names, p.Names)
	replay(e.TypeRefs, p.TypeRefs)
	replay(e.Assigns, p.Assigns)
	replay(e.Unaries, p.Unaries)
	replay(e.Binaries, p.Binaries)
	replay(e.Calls, p.Calls)
	replay(e.News, p.News)
	replay(e.NewArrays, p.NewArrays)
	replay(e.Indices, p.Indices)
	replay(e.Conds, p.Conds)
	replay(e.Casts, p.Casts)
}

// Encode writes m to w.
func Encode(w io.Writer, m *model.Model) error {
	return msgpack.NewEncoder(w).Encode(From(m))
}

// Decode reads a snapshot from r and rebuilds the model.
func Decode(r io.Reader) (*model.Model, error) {
	var p Payload
	if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	return p.Model()
}

// WriteFile encodes m into path, replacing any previous file atomically.
func WriteFile(path string, m *model.Model) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*.snap")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = Encode(f, m); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(f.Name(), path)
}

// ReadFile decodes the snapshot stored at path.
func ReadFile(path string) (*model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
