package reading

// UpdateStreak advances streak after the read log changed on today.
//
// The result is unchanged when nothing in reads is dated today, or when the
// streak already counted today. Otherwise the first qualifying read of the
// day either continues the streak (last read yesterday, or the very first
// read ever) or resets it to 1 when more than one day was skipped.
//
// When neither applies, for example when LastReadDate is empty but the log
// holds several reads, CurrentStreak is left as it is. Callers relying on
// that branch should not expect an increment.
func UpdateStreak(streak StreakData, reads []ReadArticle, today Date) StreakData {
	if !hasReadOn(reads, today) {
		return streak
	}
	if streak.LastReadDate == today {
		return streak
	}

	yesterday := today.AddDays(-1)
	if streak.LastReadDate == yesterday || len(reads) == 1 {
		streak.CurrentStreak++
	} else if days, ok := DaysBetween(streak.LastReadDate, today); ok && days > 1 {
		streak.CurrentStreak = 1
	}

	streak.LongestStreak = max(streak.LongestStreak, streak.CurrentStreak)
	streak.LastReadDate = today
	return streak
}

func hasReadOn(reads []ReadArticle, day Date) bool {
	for _, r := range reads {
		if r.ReadDate == day {
			return true
		}
	}
	return false
}
