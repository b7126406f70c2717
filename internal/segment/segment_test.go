package segment

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestSplit_TwoRequests(t *testing.T) {
	input := "REQUEST NO. 1\nProduce bank statements.\nREQUEST NO. 2\nProduce tax returns."

	items := Split(input)
	if len(items) != 2 {
		t.Fatalf("Split() returned %d items, want 2", len(items))
	}
	if items[0].ID != "1" || items[0].Text != "Produce bank statements." {
		t.Errorf("items[0] = {%s, %q}, want {1, %q}", items[0].ID, items[0].Text, "Produce bank statements.")
	}
	if items[1].ID != "2" || items[1].Text != "Produce tax returns." {
		t.Errorf("items[1] = {%s, %q}, want {2, %q}", items[1].ID, items[1].Text, "Produce tax returns.")
	}
}

func TestSplit_HeaderVariants(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID RequestID
	}{
		{name: "for production", input: "REQUEST FOR PRODUCTION NO. 3\nProduce deeds.", wantID: "3"},
		{name: "number keyword", input: "REQUEST NUMBER 7\nProduce titles.", wantID: "7"},
		{name: "bare request", input: "REQUEST 9\nProduce leases.", wantID: "9"},
		{name: "lowercase", input: "request no. 4\nProduce notes.", wantID: "4"},
		{name: "sub-letter reduces to integer", input: "REQUEST NO. 4(a)\nProduce W-2s.", wantID: "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := Split(tt.input)
			if len(items) != 1 {
				t.Fatalf("Split() returned %d items, want 1", len(items))
			}
			if items[0].ID != tt.wantID {
				t.Errorf("id = %s, want %s", items[0].ID, tt.wantID)
			}
		})
	}
}

func TestSplit_BodyBoundaries(t *testing.T) {
	input := "preamble text\nREQUEST NO. 1: Produce all pay stubs.\nREQUEST NO. 2 - Produce all leases."

	items := Split(input)
	if len(items) != 2 {
		t.Fatalf("Split() returned %d items, want 2", len(items))
	}
	if items[0].Text != "Produce all pay stubs." {
		t.Errorf("items[0].Text = %q, leading punctuation not stripped", items[0].Text)
	}
	if items[1].Text != "Produce all leases." {
		t.Errorf("items[1].Text = %q, want %q", items[1].Text, "Produce all leases.")
	}
}

func TestSplit_EmptyBodyPlaceholder(t *testing.T) {
	input := "REQUEST NO. 1\nREQUEST NO. 2\nProduce tax returns."

	items := Split(input)
	if len(items) != 2 {
		t.Fatalf("Split() returned %d items, want 2", len(items))
	}
	want := "[Empty Request Content for Request 1]"
	if items[0].Text != want {
		t.Errorf("items[0].Text = %q, want %q", items[0].Text, want)
	}
}

func TestSplit_NoHeadersShortText(t *testing.T) {
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, fmt.Sprintf("ordinary line %d", i))
	}

	items := Split(strings.Join(lines, "\n"))
	if len(items) != 1 {
		t.Fatalf("Split() returned %d items, want 1", len(items))
	}
	if items[0].ID != "1" {
		t.Errorf("id = %s, want 1", items[0].ID)
	}
	if items[0].Text != FallbackMessage {
		t.Errorf("text = %q, want fallback message", items[0].Text)
	}
}

func TestSplit_NoHeadersLongText(t *testing.T) {
	var lines []string
	for i := 0; i < 60; i++ {
		lines = append(lines, fmt.Sprintf("ordinary line %d", i))
	}

	if items := Split(strings.Join(lines, "\n")); len(items) != 0 {
		t.Errorf("Split() returned %d items, want 0 for long unstructured text", len(items))
	}
}

func TestSplit_DuplicateIDsKeepFirst(t *testing.T) {
	input := "REQUEST NO. 1\nFirst body.\nREQUEST NO. 1\nSecond body.\nREQUEST NO. 2\nOther body."

	items := Split(input)
	if len(items) != 2 {
		t.Fatalf("Split() returned %d items, want 2", len(items))
	}
	if items[0].ID != "1" || items[0].Text != "First body." {
		t.Errorf("items[0] = {%s, %q}, want first occurrence kept", items[0].ID, items[0].Text)
	}
}

func TestSplit_Idempotent(t *testing.T) {
	input := "REQUEST NO. 1\nProduce bank statements.\nREQUEST NO. 2\nProduce tax returns.\nREQUEST NO. 3\nProduce deeds."

	first := Split(input)
	second := Split(input)
	if len(first) != len(second) {
		t.Fatalf("repeat run returned %d items, want %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("item %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestRequestID_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		id   RequestID
		want string
	}{
		{name: "integer id", id: "4", want: `4`},
		{name: "sub-part id", id: "4(a)", want: `"4(a)"`},
		{name: "multi digit", id: "12", want: `12`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.id)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal(%s) = %s, want %s", tt.id, got, tt.want)
			}
		})
	}
}

func TestRequestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  RequestID
	}{
		{name: "number", input: `7`, want: "7"},
		{name: "string", input: `"4(b)"`, want: "4(b)"},
		{name: "numeric string", input: `"9"`, want: "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id RequestID
			if err := json.Unmarshal([]byte(tt.input), &id); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if id != tt.want {
				t.Errorf("Unmarshal(%s) = %s, want %s", tt.input, id, tt.want)
			}
		})
	}
}

func TestDedupe_DoesNotMutateInput(t *testing.T) {
	in := []RequestItem{{ID: "1", Text: "a"}, {ID: "1", Text: "b"}, {ID: "2", Text: "c"}}

	out := Dedupe(in)
	if len(out) != 2 {
		t.Fatalf("Dedupe() returned %d items, want 2", len(out))
	}
	if in[1].Text != "b" {
		t.Errorf("input slice mutated: in[1].Text = %q", in[1].Text)
	}
}
