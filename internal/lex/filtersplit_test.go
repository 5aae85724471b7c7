package lex

import (
	"reflect"
	"testing"
)

func TestFilterSplitDispatchVerb(t *testing.T) {
	got := FilterSplit(`%use "shared.conf"`, DispatchFilter, true, true)
	want := []string{"%", "use", `"shared.conf"`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFilterSplitDispatchDeclaration(t *testing.T) {
	got := FilterSplit("int x=5", DispatchFilter, true, true)
	want := []string{"int", "x", "=", "5"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFilterSplitDiscardedDelimiterIsNotEmitted(t *testing.T) {
	spec := NewFilterSpec(" ", false)
	got := FilterSplit("a b  c", spec, false, false)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFilterSplitKeptDelimiterEmitsItsOwnToken(t *testing.T) {
	spec := NewFilterSpec("+", true)
	got := FilterSplit("a+b", spec, false, false)
	want := []string{"a", "+", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFilterSplitHonorsStringsAgainstDelimiters(t *testing.T) {
	spec := NewFilterSpec(".", false)
	got := FilterSplit(`"a.b".c`, spec, true, false)
	want := []string{"a.b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFilterSplitWithoutHonorStringsSplitsInsideQuotes(t *testing.T) {
	spec := NewFilterSpec(".", true)
	got := FilterSplit(`"a.b"`, spec, false, false)
	want := []string{`"a`, ".", `b"`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFilterSplitKeepQuoteFalseDropsQuoteCharacters(t *testing.T) {
	got := FilterSplit(`"shared.conf"`, NewFilterSpec(".", false), true, false)
	want := []string{"shared.conf"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}
