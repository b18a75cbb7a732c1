package reading

import "slices"

// MarkRead records that p read articleID on today and advances the streak.
// It is the only way reads are added to a profile.
//
// Reading an article twice is a no-op: the profile is returned unchanged and
// changed is false. The input profile is never mutated.
func MarkRead(p Profile, articleID string, today Date) (updated Profile, changed bool) {
	if IsRead(p, articleID) {
		return p, false
	}

	reads := slices.Clone(p.ReadArticles)
	reads = append(reads, ReadArticle{ArticleID: articleID, ReadDate: today})

	p.ReadArticles = reads
	p.Streak = UpdateStreak(p.Streak, reads, today)
	p.LastActive = today
	return p, true
}

// IsRead reports whether articleID is in the read log.
func IsRead(p Profile, articleID string) bool {
	return slices.ContainsFunc(p.ReadArticles, func(r ReadArticle) bool {
		return r.ArticleID == articleID
	})
}

// TodayReadCount counts reads dated today.
func TodayReadCount(p Profile, today Date) int {
	n := 0
	for _, r := range p.ReadArticles {
		if r.ReadDate == today {
			n++
		}
	}
	return n
}

// GoalReached reports whether the daily reading goal is met. The goal is
// informational; reading more than DailyLimit articles a day is allowed.
func GoalReached(p Profile, today Date) bool {
	return TodayReadCount(p, today) >= DailyLimit
}
