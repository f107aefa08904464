package http

import (
	"encoding/json"
	"net/http"

	"github.com/gradelab/backend/httpjson"
	"github.com/gradelab/backend/logger"
)

func (httpserver *HttpServer) setScore(w http.ResponseWriter, r *http.Request) {
	type setScoreRequest struct {
		Row   *int `json:"row"` // optional; defaults to the current row
		Score int  `json:"score"`
	}

	var request setScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	row := -1
	if request.Row != nil {
		row = *request.Row
	}

	view, err := httpserver.gradingSrvc.SetScore(row, request.Score)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}
	httpjson.WriteSuccessJson(w, mapView(view))
}

func (httpserver *HttpServer) selectTier(w http.ResponseWriter, r *http.Request) {
	type selectTierRequest struct {
		Tier int `json:"tier"`
	}

	var request selectTierRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	view, err := httpserver.gradingSrvc.SelectTier(request.Tier)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}
	httpjson.WriteSuccessJson(w, mapView(view))
}
