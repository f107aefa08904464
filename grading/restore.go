package grading

import (
	"errors"

	"github.com/gradelab/backend/gradestore"
)

// restoreLocked applies persisted progress onto the freshly bound session
// when the stored fingerprint matches the new dataset's. It reports
// whether anything was restored; a missing record, a corrupt record or a
// fingerprint mismatch all leave the fresh all-unscored state in place.
// Callers hold g.mu and have already consumed the restore intent flag.
func (g *GradingSrvc) restoreLocked() bool {
	record, err := g.store.Load()
	if err != nil {
		parseErr := &gradestore.ParseError{}
		if errors.As(err, &parseErr) {
			g.logger.Warn("saved progress is unreadable, treating as absent", "error", err)
		} else {
			g.logger.Warn("failed to read saved progress", "error", err)
		}
		return false
	}
	if record == nil {
		return false
	}

	if record.FileHash != g.sess.ds.Fingerprint() {
		g.logger.Info("saved progress belongs to a different roster",
			"saved_hash", record.FileHash,
			"roster_hash", g.sess.ds.Fingerprint())
		return false
	}

	g.sess.adoptRecord(record.Scores, record.EssayPrompt, record.CurrentIndex, record.SavedAt())
	g.logger.Info("restored saved grading progress",
		"graded", g.sess.gradedCount(),
		"total", g.sess.ds.Len(),
		"saved_time", record.SavedTime)
	return true
}
