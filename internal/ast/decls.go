package ast

import (
	"gradelint/internal/source"
	"gradelint/internal/types"
)

// TypeDeclKind distinguishes the flavours of type declarations.
type TypeDeclKind uint8

const (
	TypeClass TypeDeclKind = iota
	TypeInterface
	TypeEnum
	TypeRecord
)

func (k TypeDeclKind) String() string {
	switch k {
	case TypeInterface:
		return "interface"
	case TypeEnum:
		return "enum"
	case TypeRecord:
		return "record"
	default:
		return "class"
	}
}

type FileData struct {
	File    source.FileID
	Package source.StringID
	Types   []NodeID
}

type TypeData struct {
	Name    source.StringID
	Kind    TypeDeclKind
	Mods    Modifiers
	Self    types.TypeID
	Super   types.TypeID
	Members []NodeID
}

type FieldData struct {
	Name source.StringID
	Type types.TypeID
	Mods Modifiers
	Init NodeID // может быть implicit (значение по умолчанию)
}

type MethodData struct {
	Name   source.StringID
	Mods   Modifiers
	Result types.TypeID
	Params []NodeID
	Body   NodeID // NoNodeID для abstract/interface методов
}

type ConstructorData struct {
	Mods   Modifiers
	Params []NodeID
	Body   NodeID
}

type InitializerData struct {
	Static bool
	Body   NodeID
}

type ParamData struct {
	Name source.StringID
	Type types.TypeID
	Mods Modifiers
}

type LocalData struct {
	Name source.StringID
	Type types.TypeID
	Mods Modifiers
	Init NodeID
}

// Decls manages declaration payloads.
type Decls struct {
	nodes        *Arena[Node]
	Files        *Arena[FileData]
	Types        *Arena[TypeData]
	Fields       *Arena[FieldData]
	Methods      *Arena[MethodData]
	Constructors *Arena[ConstructorData]
	Initializers *Arena[InitializerData]
	Params       *Arena[ParamData]
	Locals       *Arena[LocalData]
}

func newDecls(nodes *Arena[Node], capHint uint) *Decls {
	return &Decls{
		nodes:        nodes,
		Files:        NewArena[FileData](capHint),
		Types:        NewArena[TypeData](capHint),
		Fields:       NewArena[FieldData](capHint),
		Methods:      NewArena[MethodData](capHint),
		Constructors: NewArena[ConstructorData](capHint),
		Initializers: NewArena[InitializerData](capHint),
		Params:       NewArena[ParamData](capHint),
		Locals:       NewArena[LocalData](capHint),
	}
}

func (d *Decls) NewFile(span source.Span, data FileData) NodeID {
	return newNode(d.nodes, d.Files, KindFile, span, data)
}

func (d *Decls) File(id NodeID) (*FileData, bool) {
	return payloadOf(d.nodes, d.Files, id, KindFile)
}

func (d *Decls) NewType(span source.Span, data TypeData) NodeID {
	return newNode(d.nodes, d.Types, KindType, span, data)
}

func (d *Decls) Type(id NodeID) (*TypeData, bool) {
	return payloadOf(d.nodes, d.Types, id, KindType)
}

func (d *Decls) NewField(span source.Span, data FieldData) NodeID {
	return newNode(d.nodes, d.Fields, KindField, span, data)
}

func (d *Decls) Field(id NodeID) (*FieldData, bool) {
	return payloadOf(d.nodes, d.Fields, id, KindField)
}

func (d *Decls) NewMethod(span source.Span, data MethodData) NodeID {
	return newNode(d.nodes, d.Methods, KindMethod, span, data)
}

func (d *Decls) Method(id NodeID) (*MethodData, bool) {
	return payloadOf(d.nodes, d.Methods, id, KindMethod)
}

func (d *Decls) NewConstructor(span source.Span, data ConstructorData) NodeID {
	return newNode(d.nodes, d.Constructors, KindConstructor, span, data)
}

func (d *Decls) Constructor(id NodeID) (*ConstructorData, bool) {
	return payloadOf(d.nodes, d.Constructors, id, KindConstructor)
}

func (d *Decls) NewInitializer(span source.Span, data InitializerData) NodeID {
	return newNode(d.nodes, d.Initializers, KindInitializer, span, data)
}

func (d *Decls) Initializer(id NodeID) (*InitializerData, bool) {
	return payloadOf(d.nodes, d.Initializers, id, KindInitializer)
}

func (d *Decls) NewParam(span source.Span, data ParamData) NodeID {
	return newNode(d.nodes, d.Params, KindParam, span, data)
}

func (d *Decls) Param(id NodeID) (*ParamData, bool) {
	return payloadOf(d.nodes, d.Params, id, KindParam)
}

func (d *Decls) NewLocal(span source.Span, data LocalData) NodeID {
	return newNode(d.nodes, d.Locals, KindLocal, span, data)
}

func (d *Decls) Local(id NodeID) (*LocalData, bool) {
	return payloadOf(d.nodes, d.Locals, id, KindLocal)
}

// Mods returns the modifiers of any modifier-carrying declaration.
func (d *Decls) Mods(id NodeID) Modifiers {
	n := d.nodes.Get(uint32(id))
	if n == nil {
		return 0
	}
	switch n.Kind {
	case KindType:
		if t, ok := d.Type(id); ok {
			return t.Mods
		}
	case KindField:
		if f, ok := d.Field(id); ok {
			return f.Mods
		}
	case KindMethod:
		if m, ok := d.Method(id); ok {
			return m.Mods
		}
	case KindConstructor:
		if c, ok := d.Constructor(id); ok {
			return c.Mods
		}
	case KindParam:
		if p, ok := d.Param(id); ok {
			return p.Mods
		}
	case KindLocal:
		if l, ok := d.Local(id); ok {
			return l.Mods
		}
	case KindInitializer:
		if i, ok := d.Initializer(id); ok && i.Static {
			return ModStatic
		}
	}
	return 0
}

// Body returns the body block of a method-like declaration.
func (d *Decls) Body(id NodeID) NodeID {
	if m, ok := d.Method(id); ok {
		return m.Body
	}
	if c, ok := d.Constructor(id); ok {
		return c.Body
	}
	if i, ok := d.Initializer(id); ok {
		return i.Body
	}
	return NoNodeID
}
