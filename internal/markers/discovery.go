// Package markers discovers the attribute types that declare optional
// dependencies.
//
// A marker type is a concrete type, assignable to the host's base attribute
// type, that carries the conditional-compilation marker keyed on the enabling
// symbol and declares string fields for the dependent class and the define.
// Discovery runs from scratch on every pass because the loaded module set
// can change between passes.
package markers

import (
	"fmt"
	"strings"

	"ccu/internal/host"
	"ccu/internal/modules"
	"ccu/pkg/logging"
)

// Defaults for Options.
const (
	DefaultEnableSymbol        = "UNITY_CCU"
	DefaultAttributeBase       = "System.Attribute"
	DefaultConditionalMarker   = "System.Diagnostics.ConditionalAttribute"
	DefaultDependentClassField = "dependentClass"
	DefaultDefineField         = "define"

	stringType = "string"
)

// Options controls which types qualify as marker types.
type Options struct {
	// EnableSymbol is the condition a marker annotation must carry.
	EnableSymbol string
	// AttributeBase is the type every marker type must be assignable to.
	AttributeBase string
	// ConditionalMarker is the annotation type that tags marker types.
	ConditionalMarker string
	// DependentClassField and DefineField name the two required fields.
	DependentClassField string
	DefineField         string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		EnableSymbol:        DefaultEnableSymbol,
		AttributeBase:       DefaultAttributeBase,
		ConditionalMarker:   DefaultConditionalMarker,
		DependentClassField: DefaultDependentClassField,
		DefineField:         DefaultDefineField,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.EnableSymbol == "" {
		o.EnableSymbol = d.EnableSymbol
	}
	if o.AttributeBase == "" {
		o.AttributeBase = d.AttributeBase
	}
	if o.ConditionalMarker == "" {
		o.ConditionalMarker = d.ConditionalMarker
	}
	if o.DependentClassField == "" {
		o.DependentClassField = d.DependentClassField
	}
	if o.DefineField == "" {
		o.DefineField = d.DefineField
	}
	return o
}

// Descriptor identifies one valid marker type.
type Descriptor struct {
	Module              string
	Type                host.TypeInfo
	DependentClassField string
	DefineField         string
}

// Name returns the qualified name of the marker type.
func (d Descriptor) Name() string {
	return d.Type.Name
}

// MalformedTypeError reports a marker-tagged type that lacks a required field.
type MalformedTypeError struct {
	Module string
	Type   string
	Field  string
	Reason string
}

func (e *MalformedTypeError) Error() string {
	return fmt.Sprintf("marker type %s (module %s) %s field %q", e.Type, e.Module, e.Reason, e.Field)
}

// Result is the outcome of one discovery run.
type Result struct {
	Descriptors []Descriptor
	Malformed   []*MalformedTypeError
}

// Lookup returns the descriptor for a marker type name.
func (r Result) Lookup(typeName string) (Descriptor, bool) {
	for _, d := range r.Descriptors {
		if d.Type.Name == typeName {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Discover returns every marker type across the loaded modules. Malformed
// marker types are logged, collected in Result.Malformed and left out of
// Result.Descriptors; they never stop discovery of other types.
func Discover(loader host.ModuleLoader, opts Options) (Result, error) {
	opts = opts.withDefaults()

	idx, err := modules.BuildIndex(loader)
	if err != nil {
		return Result{}, fmt.Errorf("failed to index loaded types: %w", err)
	}

	var res Result
	for _, entry := range idx.All() {
		t := entry.Type
		if !t.IsConcrete() || !hasMarker(t, opts) {
			continue
		}
		if !idx.IsAssignableTo(t, opts.AttributeBase) {
			continue
		}

		problems := checkFields(entry.Module, t, opts.DependentClassField, opts.DefineField)
		if len(problems) > 0 {
			for _, p := range problems {
				logging.Warn("Markers", "%v; type excluded", p)
			}
			res.Malformed = append(res.Malformed, problems...)
			continue
		}

		res.Descriptors = append(res.Descriptors, Descriptor{
			Module:              entry.Module,
			Type:                t,
			DependentClassField: opts.DependentClassField,
			DefineField:         opts.DefineField,
		})
		logging.Debug("Markers", "Discovered marker type %s in %s", t.Name, entry.Module)
	}

	return res, nil
}

func hasMarker(t host.TypeInfo, opts Options) bool {
	for _, a := range t.AnnotationsOf(opts.ConditionalMarker) {
		if len(a.Args) > 0 && strings.EqualFold(strings.TrimSpace(a.Args[0]), opts.EnableSymbol) {
			return true
		}
	}
	return false
}

func checkFields(module string, t host.TypeInfo, names ...string) []*MalformedTypeError {
	var problems []*MalformedTypeError
	for _, name := range names {
		f, ok := t.Field(name)
		switch {
		case !ok:
			problems = append(problems, &MalformedTypeError{Module: module, Type: t.Name, Field: name, Reason: "is missing"})
		case !isStringType(f.Type):
			problems = append(problems, &MalformedTypeError{Module: module, Type: t.Name, Field: name, Reason: "has non-string"})
		}
	}
	return problems
}

func isStringType(name string) bool {
	switch strings.TrimSpace(name) {
	case stringType, "System.String":
		return true
	}
	return false
}
