package grading

import (
	"context"
	"time"

	"github.com/gradelab/backend/gradestore"
)

// maybeSaveLocked persists the session iff it has diverged from the last
// snapshot. On success the snapshot is advanced; on failure the in-memory
// state is kept as-is and a warning is recorded for the grader — only
// durability is at risk until the next successful save. Callers hold g.mu.
func (g *GradingSrvc) maybeSaveLocked() {
	s := g.sess
	if s == nil || !s.dirty() {
		return
	}

	now := g.now()
	record := &gradestore.SessionRecord{
		Scores:       append([]int{}, s.scores...),
		EssayPrompt:  s.prompt,
		CurrentIndex: s.currentIndex,
		FileHash:     s.ds.Fingerprint(),
		SavedTime:    now.Format(gradestore.TimeLayout),
	}

	if err := g.store.Persist(record); err != nil {
		g.logger.Warn("autosave failed", "error", err, "path", g.store.Path())
		s.saveWarning = "进度保存失败，批改可以继续，但请尽快检查本地存储"
		return
	}

	s.markPersisted(now)
	g.logger.Debug("session persisted",
		"graded", s.gradedCount(),
		"total", s.ds.Len(),
		"path", g.store.Path())
}

// RunPeriodicAutosave drives the timer-based autosave tick until ctx is
// done. Missed ticks are harmless: every mutation already runs the same
// check.
func (g *GradingSrvc) RunPeriodicAutosave(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.mu.Lock()
			g.maybeSaveLocked()
			g.mu.Unlock()
		}
	}
}
