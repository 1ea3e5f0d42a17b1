package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_ToString(t *testing.T) {
	l := &List{Elements: []*Cell{
		{V: &Int{Val: 10}},
		{V: &Int{Val: 20}},
		{V: &Int{Val: 30}},
	}}
	assert.Equal(t, "[10, 20, 30]", l.ToString())
}

func TestList_CellSharing(t *testing.T) {
	a := &List{Elements: []*Cell{{V: &Int{Val: 1}}}}
	b := a // plain copy: aliases the same backing cells
	b.Elements[0].V = &Int{Val: 99}
	assert.Equal(t, int32(99), a.Elements[0].V.(*Int).Val)
}

func TestIsControl(t *testing.T) {
	assert.True(t, IsControl(&Return{Value: &Noop{}}))
	assert.True(t, IsControl(&Break{}))
	assert.False(t, IsControl(&Int{Val: 1}))
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		v        Value
		expected string
	}{
		{&Int{Val: 1}, "Integer"},
		{&Float{Val: 1}, "Float"},
		{&String{Val: "a"}, "String"},
		{&Bool{Val: true}, "Boolean"},
		{&List{}, "List_Obj"},
		{&Noop{}, "Null"},
		{&File{Path: "x"}, "File"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, TypeName(tt.v))
	}

	obj := &Object{ClassName: "Point", Scope: NewScope(nil)}
	assert.Equal(t, "Point", TypeName(obj))
}

func TestObject_ToString(t *testing.T) {
	sc := NewScope(nil)
	sc.AddVar("x", &Int{Val: 3})
	sc.AddVar("y", &String{Val: "hi"})
	obj := &Object{ClassName: "Point", Scope: sc}
	assert.Equal(t, `Point instance { x: 3, y: "hi" }`, obj.ToString())
}

func TestScope_AddAndResolveVar(t *testing.T) {
	root := NewScope(nil)
	require.True(t, root.AddVar("a", &Int{Val: 1}))
	// redefining an existing name anywhere on the chain fails
	assert.False(t, root.AddVar("a", &Int{Val: 2}))

	child := NewScope(root)
	cell, ok := child.ResolveVar("a")
	require.True(t, ok)
	assert.Equal(t, int32(1), cell.V.(*Int).Val)
}

func TestScope_SetVar_WalksParentChain(t *testing.T) {
	root := NewScope(nil)
	root.AddVar("a", &Int{Val: 1})
	child := NewScope(root)

	require.True(t, child.SetVar("a", &Int{Val: 42}))
	cell, _ := root.ResolveVar("a")
	assert.Equal(t, int32(42), cell.V.(*Int).Val)

	assert.False(t, child.SetVar("undefined", &Int{Val: 1}))
}

func TestScope_RootScope(t *testing.T) {
	root := NewScope(nil)
	mid := NewScope(root)
	leaf := NewScope(mid)
	assert.Same(t, root, leaf.RootScope())
}

func TestScope_DeepClone_GivesByValueObjectSemantics(t *testing.T) {
	objScope := NewScope(nil)
	objScope.AddVar("p", &Int{Val: 1})

	clone := objScope.DeepClone()
	cell, _ := clone.ResolveVar("p")
	cell.V = &Int{Val: 2}

	original, _ := objScope.ResolveVar("p")
	assert.Equal(t, int32(1), original.V.(*Int).Val, "mutating the clone must not affect the original")
}
