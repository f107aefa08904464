package http

import (
	"github.com/gradelab/backend/gradestore"
	"github.com/gradelab/backend/grading"
)

// SessionView is the JSON shape of the session for the UI. Field names
// stay aligned with the durable record where they overlap.
type SessionView struct {
	DatasetLoaded  bool   `json:"dataset_loaded"`
	Total          int    `json:"total"`
	CurrentIndex   int    `json:"current_index"`
	Scores         []int  `json:"scores"`
	EssayPrompt    string `json:"essay_prompt"`
	GradedCount    int    `json:"graded_count"`
	FileHash       string `json:"file_hash,omitempty"`
	LastSavedTime  string `json:"last_saved_time,omitempty"`
	SaveWarning    string `json:"save_warning,omitempty"`
	HasSavedRecord bool   `json:"has_saved_record"`

	CurrentRow *RowView `json:"current_row,omitempty"`
}

// RowView describes the submission currently on screen.
type RowView struct {
	Image1 string `json:"image1"`
	Image2 string `json:"image2"`
	Rubric string `json:"rubric"`
	Score  int    `json:"score"`
}

func mapView(view grading.StateView) SessionView {
	mapped := SessionView{
		DatasetLoaded:  view.DatasetLoaded,
		Total:          view.Total,
		CurrentIndex:   view.CurrentIndex,
		Scores:         view.Scores,
		EssayPrompt:    view.Prompt,
		GradedCount:    view.GradedCount,
		FileHash:       view.Fingerprint,
		SaveWarning:    view.SaveWarning,
		HasSavedRecord: view.HasSavedRecord,
	}
	if !view.LastSavedAt.IsZero() {
		mapped.LastSavedTime = view.LastSavedAt.Format(gradestore.TimeLayout)
	}
	if view.DatasetLoaded {
		mapped.CurrentRow = &RowView{
			Image1: view.CurrentImage1,
			Image2: view.CurrentImage2,
			Rubric: view.CurrentRubric,
			Score:  view.CurrentScore,
		}
	}
	return mapped
}
