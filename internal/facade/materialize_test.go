package facade

import (
	"testing"

	"confparser/internal/intrinsic"
	"confparser/internal/object"
)

func TestMaterializeRebuildsInstancePayloads(t *testing.T) {
	reg := intrinsic.New()
	root := object.NewScope("", reg.Scope)
	intType, _ := reg.Type(object.TypeNameInt)
	inst := intType.CreateInstance("shared")
	_ = inst.SetFromString("9")
	root.AddChild(inst)

	snap := Snapshot(root)
	materialized := Materialize(snap, reg)

	got, ok := materialized.GetByName("shared", object.KindInstance)
	if !ok {
		t.Fatalf("expected materialized scope to contain 'shared'")
	}
	gotInst := got.(*object.Instance)
	if gotInst.PayloadKind != object.PayloadInt || gotInst.IntValue != 9 {
		t.Fatalf("unexpected materialized instance: %+v", gotInst)
	}
}

func TestMaterializeThenMergeBehavesLikeFreshParse(t *testing.T) {
	reg := intrinsic.New()

	other := object.NewScope("", reg.Scope)
	intType, _ := reg.Type(object.TypeNameInt)
	inst := intType.CreateInstance("shared")
	_ = inst.SetFromString("9")
	other.AddChild(inst)

	materialized := Materialize(Snapshot(other), reg)

	self := object.NewScope("", reg.Scope)
	self.Merge(materialized)

	found, ok := self.GetByName("shared", object.KindInstance)
	if !ok {
		t.Fatalf("expected merge from a materialized cache hit to add 'shared'")
	}
	if found.(*object.Instance).IntValue != 9 {
		t.Fatalf("unexpected merged value: %+v", found)
	}
}

func TestMaterializeRebuildsNestedClassInstance(t *testing.T) {
	reg := intrinsic.New()
	root := object.NewScope("", reg.Scope)

	point := object.NewType("Point", root)
	intType, _ := reg.Type(object.TypeNameInt)
	x := intType.CreateInstance("x")
	_ = x.SetFromString("3")
	point.AddChild(x)
	root.AddChild(point)

	p := point.CreateInstance("p")
	pX, ok := p.GetMember("x")
	if !ok {
		t.Fatalf("expected freshly created 'p' to carry a default 'x' member")
	}
	_ = pX.SetFromString("3")
	root.AddChild(p)

	materialized := Materialize(Snapshot(root), reg)

	pNode, ok := materialized.GetByName("p", object.KindInstance)
	if !ok {
		t.Fatalf("expected materialized scope to contain instance 'p'")
	}
	pInst := pNode.(*object.Instance)
	xMember, ok := pInst.GetMember("x")
	if !ok {
		t.Fatalf("expected materialized instance 'p' to carry sub-instance 'x'")
	}
	if xMember.IntValue != 3 {
		t.Fatalf("unexpected sub-instance value: %+v", xMember)
	}
}
