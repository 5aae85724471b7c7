package facade

import (
	"testing"

	"confparser/internal/object"
)

func TestSnapshotScopeWalksChildrenInOrder(t *testing.T) {
	root := object.NewScope("root", nil)
	intType := object.NewType(object.TypeNameInt, root)
	inst := intType.CreateInstance("x")
	_ = inst.SetFromString("5")
	root.AddChild(inst)

	snap := Snapshot(root)
	if snap.Kind != KindScope || snap.Name != "root" {
		t.Fatalf("expected root scope snapshot, got %+v", snap)
	}
	child, ok := snap.Lookup("x")
	if !ok {
		t.Fatalf("expected child 'x' in snapshot")
	}
	if child.Kind != KindInstance || child.PayloadKind != "int" || child.IntValue != 5 {
		t.Fatalf("unexpected instance snapshot: %+v", child)
	}
}

func TestSnapshotInstanceIncludesSubInstances(t *testing.T) {
	root := object.NewScope("root", nil)
	point := object.NewType("Point", root)
	intType := object.NewType(object.TypeNameInt, root)
	xMember := intType.CreateInstance("x")
	point.AddChild(xMember)

	p := point.CreateInstance("p")

	snap := Snapshot(p)
	if snap.Kind != KindInstance || snap.TypeName != "Point" {
		t.Fatalf("unexpected instance snapshot: %+v", snap)
	}
	if _, ok := snap.Lookup("x"); !ok {
		t.Fatalf("expected sub-instance 'x' carried into snapshot children")
	}
}

func TestMarshalBinaryRoundTrips(t *testing.T) {
	root := object.NewScope("root", nil)
	strType := object.NewType(object.TypeNameString, root)
	greeting := strType.CreateInstance("greeting")
	_ = greeting.SetFromString(`"hi"`)
	root.AddChild(greeting)

	snap := Snapshot(root)
	data, err := MarshalBinary(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := UnmarshalBinary(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	child, ok := got.Lookup("greeting")
	if !ok || child.StringValue != "hi" {
		t.Fatalf("round trip lost data: %+v", got)
	}
}

func TestMarshalJSONProducesReadableOutput(t *testing.T) {
	snap := Node{Name: "x", Kind: KindInstance, TypeName: object.TypeNameInt, PayloadKind: "int", IntValue: 7}
	data, err := MarshalJSON(snap)
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty JSON output")
	}
}
