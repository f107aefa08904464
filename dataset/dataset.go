package dataset

// Required column headers of the uploaded roster. The reader matches them
// by exact name against the header row of the first sheet.
const (
	ColImage1 = "学生作答图片1"
	ColImage2 = "学生作答图片2"
	ColRubric = "评分标准"
)

// Submission is one row of the roster: references to the student's two
// answer images and the rubric text used to grade them. Rows are read-only
// after load; grading never mutates the dataset.
type Submission struct {
	Image1 string
	Image2 string
	Rubric string
}

// Dataset is an uploaded roster, immutable after load. Columns preserves
// the original header order so the exporter can reproduce the file the
// grader uploaded. Rows holds every cell of every data row, parallel to
// Columns; Submissions is the typed view of the required columns.
type Dataset struct {
	Columns     []string
	Rows        [][]string
	Submissions []Submission

	fingerprint string
}

func (d *Dataset) Len() int {
	return len(d.Submissions)
}

// Fingerprint returns the content digest computed at load time.
func (d *Dataset) Fingerprint() string {
	return d.fingerprint
}

func (d *Dataset) Submission(i int) Submission {
	return d.Submissions[i]
}
