package srs

// Rating は自己評価の3段階
type Rating int

const (
	Hard Rating = iota + 1
	Medium
	Easy
)

const (
	MinQuality = 1
	MaxQuality = 5

	// CorrectThreshold 以上の評価を正解として扱う
	CorrectThreshold = 4
)

func (r Rating) String() string {
	switch r {
	case Hard:
		return "hard"
	case Medium:
		return "medium"
	case Easy:
		return "easy"
	default:
		return "unknown"
	}
}

// ClampQuality は評価値を 1..5 に丸める。範囲外はエラーにしない。
func ClampQuality(q int) int {
	if q < MinQuality {
		return MinQuality
	}
	if q > MaxQuality {
		return MaxQuality
	}
	return q
}

// RatingFromQuality は丸め後の評価値を3段階に変換する
func RatingFromQuality(q int) Rating {
	q = ClampQuality(q)
	switch {
	case q < 3:
		return Hard
	case q == MaxQuality:
		return Easy
	default:
		return Medium
	}
}

// IsCorrect は統計上の正解判定
func IsCorrect(quality int) bool {
	return ClampQuality(quality) >= CorrectThreshold
}

// QuizQuality はクイズの正誤を評価値に変換する
func QuizQuality(correct bool) int {
	if correct {
		return MaxQuality
	}
	return MinQuality
}
