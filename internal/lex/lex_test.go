package lex

import (
	"reflect"
	"testing"
)

func TestSplitSurroundingOperatorsAreIsolated(t *testing.T) {
	got := Split("foo[bar]")
	want := []string{"foo", "[", "bar", "]"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitOperatorRunFusesThenCutsOnAlnum(t *testing.T) {
	got := Split("+=56")
	want := []string{"+=", "56"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitAlnumRunCutsOnOperator(t *testing.T) {
	got := Split("test+552")
	want := []string{"test", "+", "552"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitKeepsStringLiteralWhole(t *testing.T) {
	got := Split(`x="a+b".len`)
	want := []string{"x", "=", `"a+b"`, ".", "len"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitWhitespaceSeparatesWithoutProducingToken(t *testing.T) {
	got := Split("a + b")
	want := []string{"a", "+", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTrimOnlyStripsSpacesAndTabs(t *testing.T) {
	if got := Trim("  \tfoo\t  "); got != "foo" {
		t.Fatalf("expected %q, got %q", "foo", got)
	}
	if got := Trim("\nfoo\n"); got != "\nfoo\n" {
		t.Fatalf("Trim must not strip newlines, got %q", got)
	}
}

func TestUnquoteStripsOneLayer(t *testing.T) {
	if got := Unquote(`"hi"`); got != "hi" {
		t.Fatalf("expected hi, got %q", got)
	}
	if got := Unquote("hi"); got != "hi" {
		t.Fatalf("unquote on bare text should be a no-op, got %q", got)
	}
}

func TestRemoveCarriageReturnStripsAllCR(t *testing.T) {
	if got := RemoveCarriageReturn("a\r\nb\r"); got != "a\nb" {
		t.Fatalf("expected %q, got %q", "a\nb", got)
	}
}
