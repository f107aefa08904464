package dataset

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gradelab/backend/srvcerror"
)

const ErrCodeDatasetUnreadable = "dataset_unreadable"

func ErrDatasetUnreadable() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeDatasetUnreadable,
		"文件读取失败，请确认上传的是有效的 XLSX 文件",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeMissingColumns = "dataset_missing_columns"

func ErrMissingColumns(missing []string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeMissingColumns,
		fmt.Sprintf("上传的文件缺少必要的列: %s", strings.Join(missing, ", ")),
	).SetHttpStatusCode(http.StatusUnprocessableEntity)
}

const ErrCodeDatasetEmpty = "dataset_empty"

func ErrDatasetEmpty() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeDatasetEmpty,
		"上传的文件不包含任何学生作答数据",
	).SetHttpStatusCode(http.StatusUnprocessableEntity)
}
