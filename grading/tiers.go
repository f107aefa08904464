package grading

// Scores run 0..15; Unscored marks a submission the grader has not
// touched yet.
const (
	Unscored = -1
	MaxScore = 15
)

// Tier is a coarse 5-way bucket the grader picks first. Selecting a tier
// pre-fills its default score; the exact score selection refines it.
type Tier struct {
	Label   string
	Default int
}

var Tiers = []Tier{
	{Label: "差 (2分档)", Default: 2},
	{Label: "中下 (5分档)", Default: 5},
	{Label: "中等 (8分档)", Default: 8},
	{Label: "中上 (11分档)", Default: 11},
	{Label: "优 (14分档)", Default: 14},
}

func ValidScore(v int) bool {
	return v >= 0 && v <= MaxScore
}
