package http

import (
	"encoding/json"
	"net/http"

	"github.com/gradelab/backend/grading"
	"github.com/gradelab/backend/httpjson"
	"github.com/gradelab/backend/logger"
	"github.com/gradelab/backend/srvcerror"
)

func (httpserver *HttpServer) navigate(w http.ResponseWriter, r *http.Request) {
	type navigateRequest struct {
		Action string `json:"action"`  // "prev", "next" or "jump"
		JumpTo int    `json:"jump_to"` // 1-based, for "jump"
	}

	var request navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var view grading.StateView
	var err error
	switch request.Action {
	case "prev":
		view, err = httpserver.gradingSrvc.Prev()
	case "next":
		view, err = httpserver.gradingSrvc.Next()
	case "jump":
		view, err = httpserver.gradingSrvc.JumpTo(request.JumpTo)
	default:
		err = srvcerror.New("invalid_nav_action", "无效的导航操作").
			SetHttpStatusCode(http.StatusBadRequest)
	}
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}
	httpjson.WriteSuccessJson(w, mapView(view))
}
