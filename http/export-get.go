package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gradelab/backend/dataset"
	"github.com/gradelab/backend/httpjson"
	"github.com/gradelab/backend/logger"
)

func (httpserver *HttpServer) exportResults(w http.ResponseWriter, r *http.Request) {
	content, err := httpserver.gradingSrvc.Export()
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	writeAttachment(w, dataset.ExportFileName, dataset.ExportMimeType, content)
}

func (httpserver *HttpServer) downloadOriginal(w http.ResponseWriter, r *http.Request) {
	content, err := httpserver.gradingSrvc.OriginalUpload()
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	writeAttachment(w, "上传原始文件.xlsx", dataset.ExportMimeType, content)
}

func writeAttachment(w http.ResponseWriter, filename string, mimeType string, content []byte) {
	// RFC 5987 encoding for the non-ASCII filename
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}
