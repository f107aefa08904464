package grading

import (
	"slices"
	"time"

	"github.com/gradelab/backend/dataset"
)

// session is the in-memory mirror of grading progress for one dataset.
// Mutators touch memory only; persistence is a separate step owned by the
// service. The snapshot fields hold the last successfully persisted state
// and drive the dirtiness check.
type session struct {
	ds           *dataset.Dataset
	scores       []int
	prompt       string
	currentIndex int
	archiveID    string

	hasSnapshot    bool
	snapshotScores []int
	snapshotPrompt string

	lastSavedAt time.Time
	saveWarning string
}

// newSession binds fresh all-unscored state to a freshly loaded dataset.
// Any previous dataset's progress is discarded by the caller simply by
// replacing its session with this one.
func newSession(ds *dataset.Dataset) *session {
	scores := make([]int, ds.Len())
	for i := range scores {
		scores[i] = Unscored
	}
	return &session{
		ds:           ds,
		scores:       scores,
		currentIndex: 0,
	}
}

// dirty reports whether in-memory state has diverged from the last
// persisted snapshot. With no snapshot yet, everything is unsaved.
func (s *session) dirty() bool {
	if !s.hasSnapshot {
		return true
	}
	return !slices.Equal(s.scores, s.snapshotScores) || s.prompt != s.snapshotPrompt
}

// markPersisted records that the current state just reached disk.
func (s *session) markPersisted(at time.Time) {
	s.hasSnapshot = true
	s.snapshotScores = slices.Clone(s.scores)
	s.snapshotPrompt = s.prompt
	s.lastSavedAt = at
	s.saveWarning = ""
}

func (s *session) setScore(row int, v int) {
	s.scores[row] = v
}

// clampIndex keeps the position inside the dataset. Out-of-range requests
// are clamped, never rejected.
func (s *session) clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i > s.ds.Len()-1 {
		return s.ds.Len() - 1
	}
	return i
}

func (s *session) setIndex(i int) {
	s.currentIndex = s.clampIndex(i)
}

func (s *session) gradedCount() int {
	n := 0
	for _, v := range s.scores {
		if v != Unscored {
			n++
		}
	}
	return n
}

// adoptRecord overwrites progress from a persisted record whose
// fingerprint already matched. Scores are sanitized into the valid range
// and the index re-clamped so a hand-edited save file cannot corrupt the
// session.
func (s *session) adoptRecord(scores []int, prompt string, index int, savedAt time.Time) {
	restored := make([]int, s.ds.Len())
	for i := range restored {
		restored[i] = Unscored
		if i < len(scores) && ValidScore(scores[i]) {
			restored[i] = scores[i]
		}
	}
	s.scores = restored
	s.prompt = prompt
	s.currentIndex = s.clampIndex(index)

	s.hasSnapshot = true
	s.snapshotScores = slices.Clone(s.scores)
	s.snapshotPrompt = s.prompt
	s.lastSavedAt = savedAt
	s.saveWarning = ""
}
