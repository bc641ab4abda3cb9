// Package srs は間隔反復の計算を行う。状態の保存は呼び出し側の責務。
package srs

import (
	"time"

	"go_vocab_srs/internal/model"
)

// Schedule は評価を受けて次のレビュー状態を計算する。
// 間隔は評価前のレベルから決まる: level>0 なら level 日 (Easy は2倍)、
// 初回は Medium 1日 / Easy 3日。Hard はレベルと回数を0に戻し翌日。
func Schedule(state model.ReviewState, quality int, now time.Time) model.ReviewState {
	next := state
	reviewedAt := now
	next.LastReviewedAt = &reviewedAt

	rating := RatingFromQuality(quality)
	var days int
	switch rating {
	case Hard:
		next.Repetitions = 0
		next.Level = 0
		days = 1
	case Medium, Easy:
		days = intervalDays(state.Level, rating)
		next.Repetitions = state.Repetitions + 1
		next.Level = state.Level + 1
	}

	due := now.AddDate(0, 0, days)
	next.NextDueAt = &due
	return next
}

func intervalDays(level int, rating Rating) int {
	if level > 0 {
		if rating == Easy {
			return level * 2
		}
		return level
	}
	if rating == Easy {
		return 3
	}
	return 1
}

// IsDue は復習期限が来ているか。キューの組み立てで使う。
func IsDue(state model.ReviewState, now time.Time) bool {
	return state.IsDue(now)
}
