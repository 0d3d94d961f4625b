package engine

import (
	"reflect"
	"testing"
)

func TestFindReferences(t *testing.T) {
	content := "Hello [[world]] and [[test_prompt]]!"
	refs := FindReferences(content)

	if len(refs) != 2 {
		t.Fatalf("FindReferences() returned %d refs, want 2", len(refs))
	}
	if refs[0].Name != "world" {
		t.Errorf("refs[0].Name = %q, want world", refs[0].Name)
	}
	if refs[0].FullMatch != "[[world]]" {
		t.Errorf("refs[0].FullMatch = %q, want [[world]]", refs[0].FullMatch)
	}
	if refs[1].Name != "test_prompt" {
		t.Errorf("refs[1].Name = %q, want test_prompt", refs[1].Name)
	}
}

func TestFindReferencesSpans(t *testing.T) {
	content := "A [[b]] C [[d]]"
	refs := FindReferences(content)

	if len(refs) != 2 {
		t.Fatalf("got %d refs, want 2", len(refs))
	}
	for i, ref := range refs {
		if content[ref.Start:ref.End] != ref.FullMatch {
			t.Errorf("refs[%d] span [%d,%d) = %q, want %q",
				i, ref.Start, ref.End, content[ref.Start:ref.End], ref.FullMatch)
		}
	}
	if refs[0].End > refs[1].Start {
		t.Errorf("spans overlap: [%d,%d) and [%d,%d)",
			refs[0].Start, refs[0].End, refs[1].Start, refs[1].End)
	}
}

func TestFindReferencesRejectsInvalidNames(t *testing.T) {
	// Uppercase, spaces, and hyphens are not reference names.
	content := "[[UPPER]] [[with space]] [[with-dash]]"
	if refs := FindReferences(content); len(refs) != 0 {
		t.Errorf("FindReferences() = %v, want none", refs)
	}
}

func TestFindReferencesFlatScan(t *testing.T) {
	// No nesting: the scan picks the first valid closing brackets.
	refs := FindReferences("[[[[x]]]]")
	if len(refs) != 1 {
		t.Fatalf("got %d refs, want 1", len(refs))
	}
	if refs[0].FullMatch != "[[x]]" || refs[0].Start != 2 {
		t.Errorf("got %q at %d, want [[x]] at 2", refs[0].FullMatch, refs[0].Start)
	}
}

func TestFindReferencesIgnoresFileTokens(t *testing.T) {
	// [[file:...]] is a different token shape; the colon keeps it out of
	// the name pattern.
	refs := FindReferences("[[file:notes.txt]] but [[real]]")
	if len(refs) != 1 || refs[0].Name != "real" {
		t.Errorf("FindReferences() = %v, want only real", refs)
	}
}

func TestFindFileReferences(t *testing.T) {
	content := "Read [[file:notes.txt]] and [[file:/abs/path.md]]"
	refs := FindFileReferences(content)

	if len(refs) != 2 {
		t.Fatalf("got %d file refs, want 2", len(refs))
	}
	if refs[0].Path != "notes.txt" {
		t.Errorf("refs[0].Path = %q, want notes.txt", refs[0].Path)
	}
	if refs[1].Path != "/abs/path.md" {
		t.Errorf("refs[1].Path = %q, want /abs/path.md", refs[1].Path)
	}
	if refs[0].FullMatch != "[[file:notes.txt]]" {
		t.Errorf("refs[0].FullMatch = %q", refs[0].FullMatch)
	}
}

func TestHasReferences(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"Contains [[reference]]", true},
		{"No references here", false},
		{"[[file:x.txt]] only", false},
		{"{{command}} only", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := HasReferences(tt.content); got != tt.want {
			t.Errorf("HasReferences(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}

func TestHasFileReferences(t *testing.T) {
	if !HasFileReferences("see [[file:a.txt]]") {
		t.Error("HasFileReferences() = false for content with a file ref")
	}
	if HasFileReferences("see [[prompt_ref]]") {
		t.Error("HasFileReferences() = true for a plain prompt ref")
	}
}

func TestValidateReferences(t *testing.T) {
	refs := FindReferences("Check [[valid_ref]] and [[invalid_ref]]")
	ValidateReferences(refs, []string{"valid_ref", "other"})

	if len(refs) != 2 {
		t.Fatalf("got %d refs, want 2", len(refs))
	}
	if !refs[0].Valid {
		t.Error("valid_ref not marked valid")
	}
	if refs[1].Valid {
		t.Error("invalid_ref marked valid")
	}
}

func TestReferencedNames(t *testing.T) {
	got := ReferencedNames("[[a]] then [[b]] then [[a]]")
	want := []string{"a", "b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReferencedNames() = %v, want %v", got, want)
	}

	if got := ReferencedNames("plain"); got != nil {
		t.Errorf("ReferencedNames(plain) = %v, want nil", got)
	}
}
