package synthesizer

import (
	"testing"

	"codemend/internal/defect"
)

func TestDiffLineAligned(t *testing.T) {
	original := "a\nb\nc"
	updated := "a\nx\nc\nd"
	got := Diff(original, updated)
	want := []defect.DiffLine{
		{Op: defect.DiffUnchanged, Line: 1, Text: "a"},
		{Op: defect.DiffRemoved, Line: 2, Text: "b"},
		{Op: defect.DiffAdded, Line: 2, Text: "x"},
		{Op: defect.DiffUnchanged, Line: 3, Text: "c"},
		{Op: defect.DiffAdded, Line: 4, Text: "d"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDiffShrinkingFile(t *testing.T) {
	got := Diff("a\nb\nc", "a")
	want := []defect.DiffLine{
		{Op: defect.DiffUnchanged, Line: 1, Text: "a"},
		{Op: defect.DiffRemoved, Line: 2, Text: "b"},
		{Op: defect.DiffRemoved, Line: 3, Text: "c"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDiffRoundTrip(t *testing.T) {
	cases := []struct{ original, updated string }{
		{"a\nb\nc", "a\nx\nc\nd"},
		{"", "new file"},
		{"only line", ""},
		{"same\ncontent\n", "same\ncontent\n"},
		{"one\ntwo\nthree\n", "one\nthree\n"},
	}
	for _, tc := range cases {
		if got := Reconstruct(Diff(tc.original, tc.updated)); got != tc.updated {
			t.Errorf("round trip of %q -> %q produced %q", tc.original, tc.updated, got)
		}
	}
}

func TestDiffIdenticalContent(t *testing.T) {
	for _, dl := range Diff("a\nb", "a\nb") {
		if dl.Op != defect.DiffUnchanged {
			t.Fatalf("identical content produced op %q", dl.Op)
		}
	}
}
