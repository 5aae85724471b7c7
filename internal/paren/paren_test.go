package paren

import "testing"

func TestParseFlatExpressionHasNoPlaceholders(t *testing.T) {
	tree := Parse([]string{"a", "+", "b"})
	slot := tree[0][0]
	if len(slot) != 3 || slot[0] != "a" || slot[1] != "+" || slot[2] != "b" {
		t.Fatalf("unexpected flat slot: %v", slot)
	}
}

func TestParseGroupBecomesPlaceholder(t *testing.T) {
	// "a+(b*c)" tokenized as a, +, (, b, *, c, )
	tree := Parse([]string{"a", "+", "(", "b", "*", "c", ")"})

	outer := tree[0][0]
	if len(outer) != 3 {
		t.Fatalf("expected 3 tokens in outer slot, got %v", outer)
	}
	idx, ok := IsPlaceholder(outer[2])
	if !ok {
		t.Fatalf("expected outer[2] to be a placeholder, got %q", outer[2])
	}

	inner := tree[1][idx]
	if len(inner) != 3 || inner[0] != "b" || inner[1] != "*" || inner[2] != "c" {
		t.Fatalf("unexpected inner slot: %v", inner)
	}
}

func TestParseSiblingGroupsGetDistinctIndices(t *testing.T) {
	// "(a)+(b)"
	tree := Parse([]string{"(", "a", ")", "+", "(", "b", ")"})
	outer := tree[0][0]
	if len(outer) != 3 {
		t.Fatalf("expected 3 tokens, got %v", outer)
	}
	firstIdx, ok := IsPlaceholder(outer[0])
	if !ok {
		t.Fatalf("expected outer[0] to be a placeholder")
	}
	secondIdx, ok := IsPlaceholder(outer[2])
	if !ok {
		t.Fatalf("expected outer[2] to be a placeholder")
	}
	if firstIdx == secondIdx {
		t.Fatalf("sibling groups must get distinct indices, both got %d", firstIdx)
	}
	if tree[1][firstIdx][0] != "a" || tree[1][secondIdx][0] != "b" {
		t.Fatalf("placeholders resolved to wrong slots")
	}
}

func TestParseNestedGroups(t *testing.T) {
	// "((a))"
	tree := Parse([]string{"(", "(", "a", ")", ")"})
	idx0, ok := IsPlaceholder(tree[0][0][0])
	if !ok {
		t.Fatalf("expected depth-0 placeholder")
	}
	idx1, ok := IsPlaceholder(tree[1][idx0][0])
	if !ok {
		t.Fatalf("expected depth-1 placeholder")
	}
	if tree[2][idx1][0] != "a" {
		t.Fatalf("expected innermost slot to contain 'a', got %v", tree[2][idx1])
	}
}
