package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/carelog-backend/internal/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func noteOn(t *testing.T, date time.Time, tags ...string) *types.Note {
	t.Helper()
	n := &types.Note{ID: uuid.New(), Date: date}
	if err := n.SetTags(tags); err != nil {
		t.Fatalf("SetTags: %v", err)
	}
	return n
}

func TestSelectNotes_EmptyInputNeverNil(t *testing.T) {
	got := SelectNotes(nil, NoteFilter{})
	if got == nil {
		t.Fatalf("expected non-nil slice for nil input")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestSelectNotes_DateRangeInclusive(t *testing.T) {
	notes := []*types.Note{
		noteOn(t, day(2026, 3, 1)),
		noteOn(t, day(2026, 3, 2)),
		noteOn(t, day(2026, 3, 3)),
		noteOn(t, day(2026, 3, 4)),
	}
	start := day(2026, 3, 2)
	end := day(2026, 3, 3)
	got := SelectNotes(notes, NoteFilter{Start: &start, End: &end})
	if len(got) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(got))
	}
	// Both boundary days included.
	if !got[0].Date.Equal(day(2026, 3, 3)) || !got[1].Date.Equal(day(2026, 3, 2)) {
		t.Fatalf("unexpected dates: %v, %v", got[0].Date, got[1].Date)
	}
}

func TestSelectNotes_DayGranularityIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2026, 3, 2, 23, 45, 0, 0, time.UTC)
	notes := []*types.Note{noteOn(t, late)}
	start := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	end := start
	got := SelectNotes(notes, NoteFilter{Start: &start, End: &end})
	if len(got) != 1 {
		t.Fatalf("note at 23:45 should match an end bound on the same day, got %d", len(got))
	}
}

func TestSelectNotes_TagsMatchAny(t *testing.T) {
	notes := []*types.Note{
		noteOn(t, day(2026, 3, 1), "Crisis"),
		noteOn(t, day(2026, 3, 2), "Consulta médica"),
		noteOn(t, day(2026, 3, 3), "Sueño", "Crisis"),
		noteOn(t, day(2026, 3, 4)),
	}
	got := SelectNotes(notes, NoteFilter{Tags: []string{"Crisis", "Consulta médica"}})
	if len(got) != 3 {
		t.Fatalf("expected 3 notes matching any tag, got %d", len(got))
	}
	for _, n := range got {
		if len(n.TagList()) == 0 {
			t.Fatalf("untagged note must not match a tag filter")
		}
	}
}

func TestSelectNotes_TagAndDateCombine(t *testing.T) {
	notes := []*types.Note{
		noteOn(t, day(2026, 3, 1), "Crisis"),
		noteOn(t, day(2026, 3, 5), "Crisis"),
		noteOn(t, day(2026, 3, 5), "Sueño"),
	}
	start := day(2026, 3, 4)
	got := SelectNotes(notes, NoteFilter{Start: &start, Tags: []string{"Crisis"}})
	if len(got) != 1 {
		t.Fatalf("expected 1 note, got %d", len(got))
	}
	if !got[0].Date.Equal(day(2026, 3, 5)) {
		t.Fatalf("wrong note selected: %v", got[0].Date)
	}
}

func TestSelectNotes_OrderedDateDescending(t *testing.T) {
	notes := []*types.Note{
		noteOn(t, day(2026, 3, 2)),
		noteOn(t, day(2026, 3, 9)),
		noteOn(t, day(2026, 3, 5)),
	}
	got := SelectNotes(notes, NoteFilter{})
	if len(got) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.After(got[i-1].Date) {
			t.Fatalf("notes not date-descending at index %d", i)
		}
	}
}

func TestSelectNotes_NoMatchesReturnsEmptyNotNil(t *testing.T) {
	notes := []*types.Note{noteOn(t, day(2026, 3, 1), "Sueño")}
	got := SelectNotes(notes, NoteFilter{Tags: []string{"Crisis"}})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}
