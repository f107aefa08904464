package http

import (
	"net/http"

	"github.com/gradelab/backend/httpjson"
)

func (httpserver *HttpServer) getSession(w http.ResponseWriter, r *http.Request) {
	view := httpserver.gradingSrvc.View()
	httpjson.WriteSuccessJson(w, mapView(view))
}

func (httpserver *HttpServer) requestRestore(w http.ResponseWriter, r *http.Request) {
	httpserver.gradingSrvc.RequestRestore()
	httpjson.WriteSuccessJson(w, map[string]string{
		"message": "请重新上传相同的 XLSX 文件以恢复进度",
	})
}
