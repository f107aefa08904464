package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gradelab/backend/httpjson"
	"github.com/gradelab/backend/imgproc"
	"github.com/gradelab/backend/logger"
	"github.com/gradelab/backend/srvcerror"
)

// getRowImage serves a downscaled copy of one of the two answer images of
// a row, resolving the reference stored in the roster.
func (httpserver *HttpServer) getRowImage(w http.ResponseWriter, r *http.Request) {
	rowIdx, err := strconv.Atoi(chi.URLParam(r, "rowIdx"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	imageNum, err := strconv.Atoi(chi.URLParam(r, "imageNum"))
	if err != nil || (imageNum != 1 && imageNum != 2) {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	img1, img2, err := httpserver.gradingSrvc.ImageRefs(rowIdx)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	ref := img1
	if imageNum == 2 {
		ref = img2
	}
	if ref == "" {
		httpjson.HandleError(logger.FromContext(r.Context()), w, srvcerror.New(
			"image_not_available", "该行没有对应的作答图片",
		).SetHttpStatusCode(http.StatusNotFound))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), httpserver.imageFetchTimeout)
	defer cancel()

	content, err := imgproc.Fetch(ctx, ref)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, srvcerror.New(
			"image_fetch_failed", "作答图片获取失败",
		).SetHttpStatusCode(http.StatusBadGateway).SetDebug(err))
		return
	}

	scaled, mimeType, err := imgproc.Downscale(content, httpserver.imageMaxWidth)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, srvcerror.New(
			"image_decode_failed", "作答图片无法解析",
		).SetHttpStatusCode(http.StatusUnprocessableEntity).SetDebug(err))
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(scaled)
}
