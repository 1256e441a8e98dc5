package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/carelog-backend/internal/normalization"
	"github.com/yungbote/carelog-backend/internal/types"
)

var moodLabels = [5]string{"Very Bad", "Bad", "Neutral", "Good", "Very Good"}

// MoodLabel maps the 1-5 ordinal mood onto its fixed label. Out-of-range
// values yield an empty label, which downstream omits.
func MoodLabel(mood int) string {
	if mood < 1 || mood > 5 {
		return ""
	}
	return moodLabels[mood-1]
}

// The instruction block is a contract on the model's output shape: the
// layout engine assumes these heading levels and this table shape. Do not
// reword it casually.
const summarySystemInstruction = `You are a clinical documentation assistant. You write concise, factual behavioral summaries for clinicians from structured daily notes. Never invent information that is not present in the notes.

Produce a markdown report with EXACTLY this structure:

## Behavioral Summary

**Patient:** <patient name>
**Period:** <first date> to <last date>

| Metric | Value |
| :--- | :--- |
| Days recorded | <n> |
| Average mood | <label> |
| Days with crisis events | <n> |
| Most frequent tags | <comma separated> |

---

Then ONE section per day, newest first:

#### <date in YYYY-MM-DD>

* **Routine:** <sleep/wake routine for the day>
* **Behavior:** <notable behavior>
* **Health:** <health-related events>
* **Crisis:** <crisis events, if any>
* **Sleep:** <sleep quality/times>
* **Observations:** <other observations>

RULES:
- Omit any table row or day sub-bullet for which the notes contain no supporting data. Never write "N/A" or "no data".
- Use only the markdown constructs shown above: ## and #### headings, bold spans, bullet lists, one table, and --- rules.
- Keep each bullet to one or two sentences.
- Write in neutral clinical language.`

type hourlyPayload struct {
	Time        string `json:"time"`
	Description string `json:"description"`
}

type notePayload struct {
	Date          string          `json:"date"`
	SleepTime     string          `json:"sleep_time,omitempty"`
	WakeTime      string          `json:"wake_time,omitempty"`
	Mood          string          `json:"mood,omitempty"`
	Detail        string          `json:"detail,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	HourlyEntries []hourlyPayload `json:"hourly_entries,omitempty"`
}

// BuildSummaryPrompt serializes the filtered notes into a deterministic,
// sanitized JSON payload embedded in the fixed instruction template. Notes
// are expected ordered date-descending already; order is preserved.
func BuildSummaryPrompt(patient *types.Patient, notes []*types.Note, start, end *time.Time) (string, string, error) {
	payload := make([]notePayload, 0, len(notes))
	for _, note := range notes {
		p := notePayload{
			Date:   note.Date.Format("2006-01-02"),
			Detail: normalization.SanitizeText(note.Detail),
		}
		if note.SleepTime != nil {
			p.SleepTime = normalization.SanitizeText(*note.SleepTime)
		}
		if note.WakeTime != nil {
			p.WakeTime = normalization.SanitizeText(*note.WakeTime)
		}
		if note.Mood != nil {
			p.Mood = MoodLabel(*note.Mood)
		}
		for _, tag := range note.TagList() {
			if clean := normalization.SanitizeText(tag); clean != "" {
				p.Tags = append(p.Tags, clean)
			}
		}
		for _, entry := range note.HourlyEntries {
			p.HourlyEntries = append(p.HourlyEntries, hourlyPayload{
				Time:        normalization.SanitizeText(entry.Time),
				Description: normalization.SanitizeText(entry.Description),
			})
		}
		payload = append(payload, p)
	}

	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("failed to encode note payload: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Patient: %s\n", normalization.SanitizeText(patient.FullName()))
	if start != nil || end != nil {
		sb.WriteString("Period: ")
		if start != nil {
			sb.WriteString(start.Format("2006-01-02"))
		} else {
			sb.WriteString("beginning of record")
		}
		sb.WriteString(" to ")
		if end != nil {
			sb.WriteString(end.Format("2006-01-02"))
		} else {
			sb.WriteString("today")
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\nDaily notes, newest first, as JSON:\n%s\n", string(raw))

	return summarySystemInstruction, sb.String(), nil
}
