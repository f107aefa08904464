package http

import (
	"io"
	"net/http"

	"github.com/gradelab/backend/httpjson"
	"github.com/gradelab/backend/logger"
)

const maxUploadBytes = 64 << 20

func (httpserver *HttpServer) uploadDataset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "缺少上传文件字段 file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	result, err := httpserver.gradingSrvc.LoadDataset(content)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	type uploadResponse struct {
		Total    int    `json:"total"`
		FileHash string `json:"file_hash"`
		Restored bool   `json:"restored"`
		Message  string `json:"message"`
	}

	httpjson.WriteSuccessJson(w, uploadResponse{
		Total:    result.Total,
		FileHash: result.Fingerprint,
		Restored: result.Restored,
		Message:  result.Message,
	})
}
