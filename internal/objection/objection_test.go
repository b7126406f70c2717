package objection

import (
	"strings"
	"testing"
)

func TestCompose_EmptySet(t *testing.T) {
	if got := Compose(ToggleSet{}); got != StandardResponse {
		t.Errorf("Compose(empty) = %q, want standard response", got)
	}
}

func TestCompose_TwoToggles(t *testing.T) {
	got := Compose(ToggleSet{OverlyBroad: true, Vague: true})
	want := Sentence(OverlyBroad) + " " + Sentence(Vague) + " " + WaiverTransition + StandardResponse
	if got != want {
		t.Errorf("Compose() = %q, want %q", got, want)
	}
}

func TestCompose_EnumerationOrderFixed(t *testing.T) {
	// Composition order must follow the enumeration order, not activation
	// order, so any construction of the same set yields the same text.
	set := ToggleSet{Confidentiality: true, OverlyBroad: true}
	got := Compose(set)

	broadIdx := strings.Index(got, Sentence(OverlyBroad))
	confIdx := strings.Index(got, Sentence(Confidentiality))
	if broadIdx == -1 || confIdx == -1 {
		t.Fatalf("Compose() missing an active objection sentence: %q", got)
	}
	if broadIdx > confIdx {
		t.Errorf("overlyBroad should precede confidentiality, got %q", got)
	}
}

func TestCompose_Deterministic(t *testing.T) {
	// All 128 subsets: composing twice yields identical output, and any
	// non-empty subset ends with the waiver transition + standard sentence.
	for mask := 0; mask < 1<<len(Order); mask++ {
		set := ToggleSet{
			OverlyBroad:      mask&1 != 0,
			UndulyBurdensome: mask&2 != 0,
			NotProportional:  mask&4 != 0,
			Vague:            mask&8 != 0,
			OutsideControl:   mask&16 != 0,
			Irrelevant:       mask&32 != 0,
			Confidentiality:  mask&64 != 0,
		}

		first := Compose(set)
		second := Compose(set)
		if first != second {
			t.Fatalf("mask %d: Compose not deterministic", mask)
		}
		if mask == 0 {
			continue
		}
		if !strings.HasSuffix(first, WaiverTransition+StandardResponse) {
			t.Fatalf("mask %d: missing waiver transition suffix: %q", mask, first)
		}
	}
}

func TestQuickObjections(t *testing.T) {
	objs := QuickObjections()
	if len(objs) != len(Order) {
		t.Fatalf("QuickObjections() returned %d entries, want %d", len(objs), len(Order))
	}
	for i, obj := range objs {
		if obj.Key != Order[i] {
			t.Errorf("entry %d key = %q, want %q", i, obj.Key, Order[i])
		}
		if !strings.HasPrefix(obj.Text, "Objection.") {
			t.Errorf("entry %q text should start with Objection., got %q", obj.Key, obj.Text)
		}
	}
}
