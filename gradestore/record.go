package gradestore

import "time"

// TimeLayout is the human-readable timestamp format used in the durable
// record, kept stable so external tooling can read saved_time directly.
const TimeLayout = "2006-01-02 15:04:05"

// SessionRecord is the persisted unit of grading progress. It is always
// written wholesale; a new save fully replaces the previous record.
type SessionRecord struct {
	Scores       []int  `json:"scores"`
	EssayPrompt  string `json:"essay_prompt,omitempty"`
	CurrentIndex int    `json:"current_index,omitempty"`
	FileHash     string `json:"file_hash"`
	SavedTime    string `json:"saved_time"`
}

// SavedAt parses the record's timestamp. A malformed or absent timestamp
// yields the zero time; the record is still usable for recovery.
func (r *SessionRecord) SavedAt() time.Time {
	t, err := time.ParseInLocation(TimeLayout, r.SavedTime, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
