package textproc

import (
	"strings"
	"testing"
)

func TestRemoveSpecialCharacters(t *testing.T) {
	in := "Go developer \U0001F600 caf\u00e9 r\u00e9sum\u00e9"
	got := RemoveSpecialCharacters(in)
	if strings.ContainsRune(got, 0x1F600) {
		t.Fatalf("emoji not removed: %q", got)
	}
	for _, r := range got {
		if r > 0x7F {
			t.Fatalf("non-ASCII rune %q survived: %q", r, got)
		}
	}
	if !strings.Contains(got, "caf sum") {
		t.Fatalf("expected non-ASCII runs collapsed to single spaces, got %q", got)
	}
}

func TestRemoveSpecialCharactersRunCollapse(t *testing.T) {
	got := RemoveSpecialCharacters("a\u00e9\u00e9\u00e9b")
	if got != "a b" {
		t.Fatalf("expected run of non-ASCII to become one space, got %q", got)
	}
}

func TestPreprocessSectionReorder(t *testing.T) {
	in := strings.Join([]string{
		"Jane Doe",
		"jane@example.com",
		"SKILLS",
		"Go, SQL",
		"EXPERIENCE",
		"Acme Corp, backend engineer",
		"PROJECTS",
		"cvtoaster",
	}, "\n")

	got := Preprocess(in)

	expIdx := strings.Index(got, "Acme Corp")
	skillsIdx := strings.Index(got, "Go, SQL")
	projIdx := strings.Index(got, "cvtoaster")
	if expIdx < 0 || skillsIdx < 0 || projIdx < 0 {
		t.Fatalf("missing content in %q", got)
	}
	if !(expIdx < skillsIdx && skillsIdx < projIdx) {
		t.Fatalf("sections not reordered experience<skills<projects: %q", got)
	}
	if !strings.HasPrefix(got, "Jane Doe") {
		t.Fatalf("header lines should come first, got %q", got)
	}
	if strings.Contains(got, "SKILLS") || strings.Contains(got, "EXPERIENCE") {
		t.Fatalf("section keyword lines should be consumed, got %q", got)
	}
}

func TestPreprocessUnrecognizedHeadings(t *testing.T) {
	in := "Jane Doe\nWORK HISTORY\nAcme Corp"
	got := Preprocess(in)
	// Headings outside the known set degrade gracefully to the header bucket.
	if !strings.Contains(got, "WORK HISTORY") || !strings.Contains(got, "Acme Corp") {
		t.Fatalf("unrecognized sections should be kept verbatim, got %q", got)
	}
}

func TestPreprocessIdempotent(t *testing.T) {
	inputs := []string{
		"Jane Doe\nEXPERIENCE\nAcme\nSKILLS\nGo",
		"just a paragraph with no sections",
		"",
		"\U0001F680 launch \u00e9\u00e9",
	}
	for _, in := range inputs {
		once := Preprocess(in)
		twice := Preprocess(once)
		if once != twice {
			t.Errorf("Preprocess not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestPreprocessNonEmptyForTextWithGlyphs(t *testing.T) {
	if got := Preprocess("x"); got == "" {
		t.Fatal("expected non-empty output for input with a glyph")
	}
}
