// Package grading implements the grading workbench core: the in-memory
// session bound to an uploaded roster, score/prompt/navigation mutations,
// snapshot-based autosave and restore of persisted progress.
package grading

import (
	"bytes"
	"log/slog"
	"sync"
	"time"

	"github.com/gradelab/backend/dataset"
	"github.com/gradelab/backend/gradestore"
)

// ProgressStore is the durable side of the workbench. *gradestore.Store
// is the real implementation; tests substitute failing ones.
type ProgressStore interface {
	Persist(record *gradestore.SessionRecord) error
	Load() (*gradestore.SessionRecord, error)
	Path() string
	ArchiveUpload(content []byte) (string, error)
	ReadArchive(id string) ([]byte, error)
}

// GradingSrvc serializes every operation of the single local grader
// behind one mutex, which also covers the periodic autosave tick. Each
// operation runs to completion, including its autosave check, before the
// next one is admitted.
type GradingSrvc struct {
	mu     sync.Mutex
	logger *slog.Logger
	store  ProgressStore
	now    func() time.Time

	sess          *session
	restoreIntent bool
}

func NewGradingSrvc(store ProgressStore, logger *slog.Logger) *GradingSrvc {
	if logger == nil {
		logger = slog.Default()
	}
	return &GradingSrvc{
		logger: logger,
		store:  store,
		now:    time.Now,
	}
}

// StateView is a consistent read of the session for display surfaces.
type StateView struct {
	DatasetLoaded bool
	Total         int
	CurrentIndex  int
	Scores        []int
	Prompt        string
	GradedCount   int
	Fingerprint   string

	CurrentImage1 string
	CurrentImage2 string
	CurrentRubric string
	CurrentScore  int

	LastSavedAt    time.Time
	SaveWarning    string
	HasSavedRecord bool
}

// UploadResult reports the outcome of a roster upload, including whether
// a previously saved session was restored onto it.
type UploadResult struct {
	Total       int
	Fingerprint string
	Restored    bool
	Message     string
}

// LoadDataset parses an uploaded roster and binds a fresh session to it.
// The previous dataset's progress, if any, is discarded entirely. When a
// restore was requested beforehand, persisted progress is re-applied if
// its fingerprint matches the new roster. A parse failure leaves the
// prior session untouched.
func (g *GradingSrvc) LoadDataset(content []byte) (*UploadResult, error) {
	ds, err := dataset.Read(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	sess := newSession(ds)

	archiveID, err := g.store.ArchiveUpload(content)
	if err != nil {
		g.logger.Warn("failed to archive uploaded roster", "error", err)
	} else {
		sess.archiveID = archiveID
	}

	g.sess = sess

	result := &UploadResult{
		Total:       ds.Len(),
		Fingerprint: ds.Fingerprint(),
		Message:     "文件加载成功！现在可以开始批改。",
	}
	if g.restoreIntent {
		g.restoreIntent = false
		if g.restoreLocked() {
			result.Restored = true
			result.Message = "文件加载成功，已恢复上次批改进度！"
		} else {
			result.Message = "文件加载成功，但未找到匹配的保存进度！"
		}
	}

	g.maybeSaveLocked()

	return result, nil
}

// RequestRestore marks the intent to restore saved progress. Nothing
// changes until the roster is uploaded; the flag is consumed by the next
// LoadDataset regardless of outcome.
func (g *GradingSrvc) RequestRestore() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.restoreIntent = true
}

// SetScore assigns an exact score to a row (the current one when row is
// negative) and runs the autosave check.
func (g *GradingSrvc) SetScore(row int, score int) (StateView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sess == nil {
		return StateView{}, ErrNoDatasetLoaded()
	}
	if !ValidScore(score) {
		return StateView{}, ErrScoreOutOfRange(score)
	}
	if row < 0 {
		row = g.sess.currentIndex
	}
	if row >= g.sess.ds.Len() {
		return StateView{}, ErrRowIndexOutOfRange(row)
	}

	g.sess.setScore(row, score)
	g.maybeSaveLocked()
	return g.viewLocked(), nil
}

// SelectTier applies a tier's default score to the current row, but only
// when the row is still unscored; an exact selection always wins.
func (g *GradingSrvc) SelectTier(tier int) (StateView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sess == nil {
		return StateView{}, ErrNoDatasetLoaded()
	}
	if tier < 0 || tier >= len(Tiers) {
		return StateView{}, ErrInvalidTier(tier)
	}

	if g.sess.scores[g.sess.currentIndex] == Unscored {
		g.sess.setScore(g.sess.currentIndex, Tiers[tier].Default)
		g.maybeSaveLocked()
	}
	return g.viewLocked(), nil
}

// SetPrompt replaces the essay prompt text and runs the autosave check.
func (g *GradingSrvc) SetPrompt(text string) (StateView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sess == nil {
		return StateView{}, ErrNoDatasetLoaded()
	}
	g.sess.prompt = text
	g.maybeSaveLocked()
	return g.viewLocked(), nil
}

// Prev moves to the previous submission; a no-op at the first row.
func (g *GradingSrvc) Prev() (StateView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sess == nil {
		return StateView{}, ErrNoDatasetLoaded()
	}
	g.sess.setIndex(g.sess.currentIndex - 1)
	return g.viewLocked(), nil
}

// Next moves to the next submission; a no-op at the last row.
func (g *GradingSrvc) Next() (StateView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sess == nil {
		return StateView{}, ErrNoDatasetLoaded()
	}
	g.sess.setIndex(g.sess.currentIndex + 1)
	return g.viewLocked(), nil
}

// JumpTo moves to a 1-based position, clamped into the roster.
func (g *GradingSrvc) JumpTo(oneBased int) (StateView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sess == nil {
		return StateView{}, ErrNoDatasetLoaded()
	}
	g.sess.setIndex(oneBased - 1)
	return g.viewLocked(), nil
}

// Save is the manual save request. Like every save it only persists when
// state has diverged from the last snapshot.
func (g *GradingSrvc) Save() (StateView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sess == nil {
		return StateView{}, ErrNoDatasetLoaded()
	}
	g.maybeSaveLocked()
	return g.viewLocked(), nil
}

// View returns the current state for display.
func (g *GradingSrvc) View() StateView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewLocked()
}

// Export produces the graded result workbook.
func (g *GradingSrvc) Export() ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sess == nil {
		return nil, ErrNoDatasetLoaded()
	}
	content, err := dataset.Export(g.sess.ds, g.sess.scores, g.sess.prompt)
	if err != nil {
		return nil, ErrExportFailed().SetDebug(err)
	}
	return content, nil
}

// OriginalUpload returns the raw bytes of the roster the grader uploaded,
// restored from the compressed archive.
func (g *GradingSrvc) OriginalUpload() ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sess == nil || g.sess.archiveID == "" {
		return nil, ErrNoUploadArchive()
	}
	content, err := g.store.ReadArchive(g.sess.archiveID)
	if err != nil {
		return nil, ErrNoUploadArchive().SetDebug(err)
	}
	return content, nil
}

// ImageRefs returns the two answer-image references of a row.
func (g *GradingSrvc) ImageRefs(row int) (string, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sess == nil {
		return "", "", ErrNoDatasetLoaded()
	}
	if row < 0 || row >= g.sess.ds.Len() {
		return "", "", ErrRowIndexOutOfRange(row)
	}
	subm := g.sess.ds.Submission(row)
	return subm.Image1, subm.Image2, nil
}

func (g *GradingSrvc) viewLocked() StateView {
	view := StateView{}
	if g.sess == nil {
		// the restore offer is only relevant before a roster is loaded
		if record, err := g.store.Load(); err == nil && record != nil {
			view.HasSavedRecord = true
		}
		return view
	}

	s := g.sess
	subm := s.ds.Submission(s.currentIndex)
	view.DatasetLoaded = true
	view.Total = s.ds.Len()
	view.CurrentIndex = s.currentIndex
	view.Scores = append([]int{}, s.scores...)
	view.Prompt = s.prompt
	view.GradedCount = s.gradedCount()
	view.Fingerprint = s.ds.Fingerprint()
	view.CurrentImage1 = subm.Image1
	view.CurrentImage2 = subm.Image2
	view.CurrentRubric = subm.Rubric
	view.CurrentScore = s.scores[s.currentIndex]
	view.LastSavedAt = s.lastSavedAt
	view.SaveWarning = s.saveWarning
	return view
}
