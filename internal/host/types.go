package host

import (
	"errors"
	"strings"
	"time"
)

// ErrTypesFailedToLoad is reported by a module whose types cannot be enumerated.
// The enumerator skips such modules instead of aborting the pass.
var ErrTypesFailedToLoad = errors.New("types failed to load")

// Group identifies the build-target group whose symbol list is in scope.
type Group string

// GroupUnknown is what a selector reports when no group is selected.
const GroupUnknown Group = "Unknown"

// IsUnknown reports whether g carries no usable group.
func (g Group) IsUnknown() bool {
	return g == "" || g == GroupUnknown
}

// TypeKind classifies a loaded type.
type TypeKind string

const (
	KindClass     TypeKind = "class"
	KindStruct    TypeKind = "struct"
	KindInterface TypeKind = "interface"
	KindEnum      TypeKind = "enum"
)

// FieldInfo describes an instance field declared on a type.
type FieldInfo struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// Annotation is an attribute applied to a type declaration, such as a
// conditional-compilation marker. Args holds its positional arguments.
type Annotation struct {
	Type string   `yaml:"type" json:"type"`
	Args []string `yaml:"args,omitempty" json:"args,omitempty"`
}

// TypeInfo is the host's metadata for one loaded type.
type TypeInfo struct {
	Name        string       `yaml:"name" json:"name"`
	Kind        TypeKind     `yaml:"kind,omitempty" json:"kind,omitempty"`
	Abstract    bool         `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	Base        string       `yaml:"base,omitempty" json:"base,omitempty"`
	Annotations []Annotation `yaml:"annotations,omitempty" json:"annotations,omitempty"`
	Fields      []FieldInfo  `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// Field looks up a declared field by exact name.
func (t TypeInfo) Field(name string) (FieldInfo, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldInfo{}, false
}

// IsConcrete reports whether the type can be instantiated: it is neither an
// interface nor abstract. An empty kind is treated as a class.
func (t TypeInfo) IsConcrete() bool {
	return t.Kind != KindInterface && !t.Abstract
}

// AnnotationsOf returns the annotations whose type name equals typeName.
func (t TypeInfo) AnnotationsOf(typeName string) []Annotation {
	var out []Annotation
	for _, a := range t.Annotations {
		if a.Type == typeName {
			out = append(out, a)
		}
	}
	return out
}

// Attribute is a module-level attribute instance.
type Attribute struct {
	Type   string         `yaml:"type" json:"type"`
	Fields map[string]any `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// FieldValue returns the value stored in the named field of the instance.
func (a Attribute) FieldValue(name string) (any, bool) {
	v, ok := a.Fields[name]
	return v, ok
}

// Module is one loaded code module.
type Module interface {
	// Name returns the module's display name.
	Name() string

	// Types returns every type the module declares. It returns an error
	// wrapping ErrTypesFailedToLoad when the module cannot be introspected.
	Types() ([]TypeInfo, error)

	// Attributes returns the module-level attribute instances.
	Attributes() ([]Attribute, error)

	// ResolveType looks up a type by qualified name within this module.
	ResolveType(name string) (TypeInfo, bool)
}

// ModuleLoader supplies the modules currently loaded by the host.
type ModuleLoader interface {
	Modules() ([]Module, error)
}

// SymbolStore is the host's persistent build-configuration store. Symbols
// are exchanged as a single string of distinct tokens joined by ';'.
type SymbolStore interface {
	Symbols(group Group) (string, error)
	SetSymbols(group Group, joined string) error
}

// GroupSelector reports which build-target group is in scope.
type GroupSelector interface {
	// SelectedGroup is the primary accessor. It may return GroupUnknown.
	SelectedGroup() Group

	// ActiveGroupInternal is the host-internal fallback probed only when the
	// primary accessor reports GroupUnknown.
	ActiveGroupInternal() (Group, bool)
}

// Severity is the severity of a compiler diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is one message reported by a compilation.
type Diagnostic struct {
	Severity Severity `yaml:"severity" json:"severity"`
	Code     string   `yaml:"code" json:"code"`
	Message  string   `yaml:"message,omitempty" json:"message,omitempty"`
	File     string   `yaml:"file,omitempty" json:"file,omitempty"`
	Line     int      `yaml:"line,omitempty" json:"line,omitempty"`
}

// IsError reports whether the diagnostic has error severity.
func (d Diagnostic) IsError() bool {
	return strings.EqualFold(string(d.Severity), string(SeverityError))
}

// EventKind names a host lifecycle notification.
type EventKind string

const (
	// EventModuleReloadComplete fires once per reload cycle, after all modules are live.
	EventModuleReloadComplete EventKind = "ModuleReloadComplete"

	// EventCompilationFinished fires after each compile with its diagnostics.
	EventCompilationFinished EventKind = "CompilationFinished"
)

// Event is a host lifecycle notification.
type Event struct {
	Kind        EventKind
	Diagnostics []Diagnostic
	Timestamp   time.Time
	Source      string
}
