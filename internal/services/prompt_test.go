package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/carelog-backend/internal/types"
)

func TestMoodLabel_Mapping(t *testing.T) {
	cases := map[int]string{
		0: "",
		1: "Very Bad",
		2: "Bad",
		3: "Neutral",
		4: "Good",
		5: "Very Good",
		6: "",
	}
	for mood, want := range cases {
		if got := MoodLabel(mood); got != want {
			t.Fatalf("MoodLabel(%d) = %q, want %q", mood, got, want)
		}
	}
}

func TestBuildSummaryPrompt_PayloadShape(t *testing.T) {
	mood := 1
	sleep := "22:30"
	patient := &types.Patient{ID: uuid.New(), FirstName: "María", LastName: "José"}
	note := &types.Note{
		ID:        uuid.New(),
		Date:      day(2026, 4, 7),
		Mood:      &mood,
		SleepTime: &sleep,
		Detail:    "Calm morning <script>alert(1)</script>",
	}
	if err := note.SetTags([]string{"Sueño"}); err != nil {
		t.Fatalf("SetTags: %v", err)
	}
	note.HourlyEntries = []types.HourlyEntry{{Time: "09:00", Description: "Breakfast"}}

	system, user, err := BuildSummaryPrompt(patient, []*types.Note{note}, nil, nil)
	if err != nil {
		t.Fatalf("BuildSummaryPrompt: %v", err)
	}
	if !strings.Contains(system, "## Behavioral Summary") {
		t.Fatalf("system instruction missing report heading")
	}
	if !strings.Contains(user, `"date": "2026-04-07"`) {
		t.Fatalf("date not serialized as YYYY-MM-DD:\n%s", user)
	}
	if !strings.Contains(user, `"mood": "Very Bad"`) {
		t.Fatalf("mood 1 should serialize as Very Bad:\n%s", user)
	}
	if strings.Contains(user, "<script>") {
		t.Fatalf("detail was not sanitized:\n%s", user)
	}
	if !strings.Contains(user, "María José") {
		t.Fatalf("patient name missing from prompt:\n%s", user)
	}
	if !strings.Contains(user, "Sueño") {
		t.Fatalf("tags missing from payload:\n%s", user)
	}
	if !strings.Contains(user, "Breakfast") {
		t.Fatalf("hourly entries missing from payload:\n%s", user)
	}
}

func TestBuildSummaryPrompt_NilMoodOmitted(t *testing.T) {
	patient := &types.Patient{ID: uuid.New(), FirstName: "Ana"}
	note := &types.Note{ID: uuid.New(), Date: day(2026, 4, 7), Detail: "quiet day"}

	_, user, err := BuildSummaryPrompt(patient, []*types.Note{note}, nil, nil)
	if err != nil {
		t.Fatalf("BuildSummaryPrompt: %v", err)
	}
	if strings.Contains(user, `"mood"`) {
		t.Fatalf("nil mood must be omitted from payload:\n%s", user)
	}
}

func TestBuildSummaryPrompt_Deterministic(t *testing.T) {
	patient := &types.Patient{ID: uuid.New(), FirstName: "Ana"}
	notes := []*types.Note{
		{ID: uuid.New(), Date: day(2026, 4, 9), Detail: "b"},
		{ID: uuid.New(), Date: day(2026, 4, 8), Detail: "a"},
	}
	start := day(2026, 4, 1)
	end := day(2026, 4, 10)

	s1, u1, err := BuildSummaryPrompt(patient, notes, &start, &end)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	s2, u2, err := BuildSummaryPrompt(patient, notes, &start, &end)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if s1 != s2 || u1 != u2 {
		t.Fatalf("same inputs must produce identical prompts")
	}
	if !strings.Contains(u1, "Period: 2026-04-01 to 2026-04-10") {
		t.Fatalf("period line missing:\n%s", u1)
	}
}
