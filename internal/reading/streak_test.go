package reading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func reads(pairs ...string) []ReadArticle {
	out := make([]ReadArticle, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, ReadArticle{ArticleID: pairs[i], ReadDate: Date(pairs[i+1])})
	}
	return out
}

func TestUpdateStreak(t *testing.T) {
	tests := []struct {
		name   string
		streak StreakData
		reads  []ReadArticle
		today  Date
		want   StreakData
	}{
		{
			name:   "no read today is a no-op",
			streak: StreakData{CurrentStreak: 4, LongestStreak: 6, LastReadDate: "2025-06-01"},
			reads:  reads("a", "2025-06-01"),
			today:  "2025-06-02",
			want:   StreakData{CurrentStreak: 4, LongestStreak: 6, LastReadDate: "2025-06-01"},
		},
		{
			name:   "already counted today",
			streak: StreakData{CurrentStreak: 2, LongestStreak: 2, LastReadDate: "2025-06-02"},
			reads:  reads("a", "2025-06-01", "b", "2025-06-02", "c", "2025-06-02"),
			today:  "2025-06-02",
			want:   StreakData{CurrentStreak: 2, LongestStreak: 2, LastReadDate: "2025-06-02"},
		},
		{
			name:   "first read ever",
			streak: StreakData{},
			reads:  reads("a", "2025-06-01"),
			today:  "2025-06-01",
			want:   StreakData{CurrentStreak: 1, LongestStreak: 1, LastReadDate: "2025-06-01"},
		},
		{
			name:   "continues from yesterday",
			streak: StreakData{CurrentStreak: 3, LongestStreak: 5, LastReadDate: "2025-06-01"},
			reads:  reads("a", "2025-06-01", "b", "2025-06-02"),
			today:  "2025-06-02",
			want:   StreakData{CurrentStreak: 4, LongestStreak: 5, LastReadDate: "2025-06-02"},
		},
		{
			name:   "continuation raises longest",
			streak: StreakData{CurrentStreak: 5, LongestStreak: 5, LastReadDate: "2025-06-01"},
			reads:  reads("a", "2025-06-01", "b", "2025-06-02"),
			today:  "2025-06-02",
			want:   StreakData{CurrentStreak: 6, LongestStreak: 6, LastReadDate: "2025-06-02"},
		},
		{
			name:   "three day gap resets",
			streak: StreakData{CurrentStreak: 7, LongestStreak: 9, LastReadDate: "2025-06-01"},
			reads:  reads("a", "2025-06-01", "b", "2025-06-04"),
			today:  "2025-06-04",
			want:   StreakData{CurrentStreak: 1, LongestStreak: 9, LastReadDate: "2025-06-04"},
		},
		{
			name:   "month boundary counts as yesterday",
			streak: StreakData{CurrentStreak: 1, LongestStreak: 1, LastReadDate: "2025-05-31"},
			reads:  reads("a", "2025-05-31", "b", "2025-06-01"),
			today:  "2025-06-01",
			want:   StreakData{CurrentStreak: 2, LongestStreak: 2, LastReadDate: "2025-06-01"},
		},
		{
			name:   "empty last date with history leaves current streak",
			streak: StreakData{CurrentStreak: 0, LongestStreak: 0},
			reads:  reads("a", "2025-05-20", "b", "2025-06-01"),
			today:  "2025-06-01",
			want:   StreakData{CurrentStreak: 0, LongestStreak: 0, LastReadDate: "2025-06-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UpdateStreak(tt.streak, tt.reads, tt.today)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.LongestStreak, got.CurrentStreak)
			assert.GreaterOrEqual(t, got.CurrentStreak, 0)
		})
	}
}

func TestUpdateStreak_Idempotent(t *testing.T) {
	streak := StreakData{CurrentStreak: 2, LongestStreak: 3, LastReadDate: "2025-06-01"}
	log := reads("a", "2025-06-01")

	first := UpdateStreak(streak, log, "2025-06-02")
	second := UpdateStreak(first, log, "2025-06-02")
	assert.Equal(t, first, second)

	log = append(log, ReadArticle{ArticleID: "b", ReadDate: "2025-06-02"})
	first = UpdateStreak(streak, log, "2025-06-02")
	second = UpdateStreak(first, log, "2025-06-02")
	assert.Equal(t, first, second)
	assert.Equal(t, 3, second.CurrentStreak)
}

func TestUpdateStreak_LongestNeverDecreases(t *testing.T) {
	streak := StreakData{}
	var log []ReadArticle
	days := []Date{"2025-06-01", "2025-06-02", "2025-06-03", "2025-06-07", "2025-06-08", "2025-06-20"}

	prevLongest := 0
	for i, d := range days {
		log = append(log, ReadArticle{ArticleID: string(rune('a' + i)), ReadDate: d})
		streak = UpdateStreak(streak, log, d)
		assert.GreaterOrEqual(t, streak.LongestStreak, prevLongest)
		prevLongest = streak.LongestStreak
	}
	assert.Equal(t, 3, streak.LongestStreak)
	assert.Equal(t, 1, streak.CurrentStreak)
}
