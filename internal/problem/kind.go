package problem

import (
	"fmt"
	"slices"
	"strings"
)

// Kind identifies what a problem is about. Numeric ranges group kinds by
// category, the same way the ID prefix does.
type Kind uint16

const (
	// Неизвестный вид; никакая проверка его не сообщает
	KindUnknown Kind = 0

	// общие
	FieldShouldBeFinal            Kind = 1001
	LocalVariableShouldBeConstant Kind = 1002
	ReassignedParameter           Kind = 1003
	RedundantSelfAssignment       Kind = 1004

	// ООП
	ListNotCopiedInGetter Kind = 2001

	// API
	CommonReimplementationAddAll        Kind = 3001
	CommonReimplementationAddEnumValues Kind = 3002

	// исключения
	ExceptionWithoutMessage Kind = 4001
)

// Category is the coarse grouping of a kind.
type Category uint8

const (
	CategoryUnknown Category = iota
	CategoryGeneral
	CategoryOOP
	CategoryAPI
	CategoryExceptions
)

func (c Category) String() string {
	switch c {
	case CategoryGeneral:
		return "general"
	case CategoryOOP:
		return "oop"
	case CategoryAPI:
		return "api"
	case CategoryExceptions:
		return "exceptions"
	default:
		return "unknown"
	}
}

type kindInfo struct {
	name  string
	title string
	sev   Severity
}

var kindTable = map[Kind]kindInfo{
	KindUnknown:                         {"UNKNOWN", "unknown problem", SevInfo},
	FieldShouldBeFinal:                  {"FIELD_SHOULD_BE_FINAL", "field is never reassigned and should be final", SevWarning},
	LocalVariableShouldBeConstant:       {"LOCAL_VARIABLE_SHOULD_BE_CONSTANT", "local variable holds a constant", SevWarning},
	ReassignedParameter:                 {"REASSIGNED_PARAMETER", "parameter is reassigned", SevWarning},
	RedundantSelfAssignment:             {"REDUNDANT_SELF_ASSIGNMENT", "variable is assigned to itself", SevWarning},
	ListNotCopiedInGetter:               {"LIST_NOT_COPIED_IN_GETTER", "getter exposes a mutable collection", SevWarning},
	CommonReimplementationAddAll:        {"COMMON_REIMPLEMENTATION_ADD_ALL", "repeated add calls reimplement addAll", SevInfo},
	CommonReimplementationAddEnumValues: {"COMMON_REIMPLEMENTATION_ADD_ENUM_VALUES", "add calls list every enum constant", SevInfo},
	ExceptionWithoutMessage:             {"EXCEPTION_WITHOUT_MESSAGE", "exception is thrown without a message", SevWarning},
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindTable))
	for k, info := range kindTable {
		m[info.name] = k
	}
	return m
}()

// Kinds returns every known kind except KindUnknown, in numeric order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindTable)-1)
	for k := range kindTable {
		if k != KindUnknown {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// ParseKind resolves the stable upper snake case name of a kind.
func ParseKind(name string) (Kind, error) {
	if k, ok := kindsByName[strings.ToUpper(strings.TrimSpace(name))]; ok && k != KindUnknown {
		return k, nil
	}
	return KindUnknown, fmt.Errorf("unknown problem kind %q", name)
}

// IsValid reports whether k is part of the taxonomy.
func (k Kind) IsValid() bool {
	_, ok := kindTable[k]
	return ok && k != KindUnknown
}

// Name is the stable identifier used in configuration and reports.
func (k Kind) Name() string {
	if info, ok := kindTable[k]; ok {
		return info.name
	}
	return kindTable[KindUnknown].name
}

func (k Kind) Category() Category {
	switch ik := int(k); {
	case ik >= 1000 && ik < 2000:
		return CategoryGeneral
	case ik >= 2000 && ik < 3000:
		return CategoryOOP
	case ik >= 3000 && ik < 4000:
		return CategoryAPI
	case ik >= 4000 && ik < 5000:
		return CategoryExceptions
	}
	return CategoryUnknown
}

// ID is the short code, e.g. GEN1001.
func (k Kind) ID() string {
	switch k.Category() {
	case CategoryGeneral:
		return fmt.Sprintf("GEN%04d", int(k))
	case CategoryOOP:
		return fmt.Sprintf("OOP%04d", int(k))
	case CategoryAPI:
		return fmt.Sprintf("API%04d", int(k))
	case CategoryExceptions:
		return fmt.Sprintf("EXC%04d", int(k))
	}
	return "E0000"
}

func (k Kind) Title() string {
	info, ok := kindTable[k]
	if !ok {
		return kindTable[KindUnknown].title
	}
	return info.title
}

// DefaultSeverity is used unless configuration overrides it.
func (k Kind) DefaultSeverity() Severity {
	if info, ok := kindTable[k]; ok {
		return info.sev
	}
	return SevInfo
}

func (k Kind) String() string {
	return fmt.Sprintf("[%s]: %s", k.ID(), k.Title())
}
