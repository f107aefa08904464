package http

import (
	"encoding/json"
	"net/http"

	"github.com/gradelab/backend/httpjson"
	"github.com/gradelab/backend/logger"
)

func (httpserver *HttpServer) setPrompt(w http.ResponseWriter, r *http.Request) {
	type setPromptRequest struct {
		EssayPrompt string `json:"essay_prompt"`
	}

	var request setPromptRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	view, err := httpserver.gradingSrvc.SetPrompt(request.EssayPrompt)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}
	httpjson.WriteSuccessJson(w, mapView(view))
}

func (httpserver *HttpServer) manualSave(w http.ResponseWriter, r *http.Request) {
	view, err := httpserver.gradingSrvc.Save()
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}
	httpjson.WriteSuccessJson(w, mapView(view))
}
