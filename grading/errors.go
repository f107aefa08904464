package grading

import (
	"fmt"
	"net/http"

	"github.com/gradelab/backend/srvcerror"
)

const ErrCodeNoDatasetLoaded = "no_dataset_loaded"

func ErrNoDatasetLoaded() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNoDatasetLoaded,
		"尚未上传学生作文文件",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeScoreOutOfRange = "score_out_of_range"

func ErrScoreOutOfRange(v int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeScoreOutOfRange,
		fmt.Sprintf("分数 %d 超出范围，应为 0 到 %d", v, MaxScore),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidTier = "invalid_tier"

func ErrInvalidTier(i int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidTier,
		fmt.Sprintf("无效的评分档位 %d", i),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeRowIndexOutOfRange = "row_index_out_of_range"

func ErrRowIndexOutOfRange(i int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeRowIndexOutOfRange,
		fmt.Sprintf("第 %d 行不存在", i+1),
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeNoUploadArchive = "no_upload_archive"

func ErrNoUploadArchive() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNoUploadArchive,
		"原始上传文件不可用",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeExportFailed = "export_failed"

func ErrExportFailed() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeExportFailed,
		"导出批改结果失败",
	).SetHttpStatusCode(http.StatusInternalServerError)
}
