package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroup_IsUnknown(t *testing.T) {
	assert.True(t, Group("").IsUnknown())
	assert.True(t, GroupUnknown.IsUnknown())
	assert.False(t, Group("Standalone").IsUnknown())
}

func TestTypeInfo_IsConcrete(t *testing.T) {
	tests := []struct {
		name     string
		info     TypeInfo
		expected bool
	}{
		{"class", TypeInfo{Kind: KindClass}, true},
		{"empty kind", TypeInfo{}, true},
		{"struct", TypeInfo{Kind: KindStruct}, true},
		{"abstract class", TypeInfo{Kind: KindClass, Abstract: true}, false},
		{"interface", TypeInfo{Kind: KindInterface}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.info.IsConcrete())
		})
	}
}

func TestTypeInfo_FieldAndAnnotations(t *testing.T) {
	info := TypeInfo{
		Name: "Game.OptionalAttribute",
		Annotations: []Annotation{
			{Type: "System.Diagnostics.ConditionalAttribute", Args: []string{"UNITY_CCU"}},
			{Type: "System.ObsoleteAttribute"},
			{Type: "System.Diagnostics.ConditionalAttribute", Args: []string{"DEBUG"}},
		},
		Fields: []FieldInfo{{Name: "define", Type: "string"}},
	}

	f, ok := info.Field("define")
	assert.True(t, ok)
	assert.Equal(t, "string", f.Type)

	_, ok = info.Field("Define")
	assert.False(t, ok, "field lookup is case-sensitive")

	assert.Len(t, info.AnnotationsOf("System.Diagnostics.ConditionalAttribute"), 2)
	assert.Empty(t, info.AnnotationsOf("System.SerializableAttribute"))
}

func TestDiagnostic_IsError(t *testing.T) {
	assert.True(t, Diagnostic{Severity: SeverityError}.IsError())
	assert.True(t, Diagnostic{Severity: "Error"}.IsError())
	assert.False(t, Diagnostic{Severity: SeverityWarning}.IsError())
}
