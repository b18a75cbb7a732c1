package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/client/models"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/dustin/go-humanize"
)

// now is a test seam for relative times.
var now = time.Now

func relDate(d reading.Date) string {
	t, ok := d.Time()
	if !ok {
		return "unknown"
	}
	if reading.TodayIn(now(), time.Local) == d {
		return "today"
	}
	return humanize.RelTime(t, now(), "ago", "from now")
}

func relTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return humanize.RelTime(t, now(), "ago", "from now")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}

func formatArticle(i int, a reading.Article) string {
	var b strings.Builder
	mark := ""
	if a.Featured {
		mark = "* "
	}
	fmt.Fprintf(&b, "%d. %s%s [%s] %d min, published %s\n", i, mark, a.Title, a.CategoryID, a.EstimatedReadingTime, relDate(a.PublishDate))
	if a.Description != "" {
		fmt.Fprintf(&b, "   %s\n", a.Description)
	}
	fmt.Fprintf(&b, "   %s\n   id: %s", a.SourceURL, a.ID)
	return b.String()
}

func formatRecommended(i int, r models.Recommended) string {
	var b strings.Builder
	b.WriteString(formatArticle(i, r.Article))
	fmt.Fprintf(&b, "\n   shared by %s %s, %s, %s", r.RecommenderName, relTime(r.RecommendedAt),
		plural(r.LikesCount, "like"), plural(r.CommentsCount, "comment"))
	if r.LikedByMe {
		b.WriteString(", liked by you")
	}
	if r.UserCommentary != "" {
		fmt.Fprintf(&b, "\n   \"%s\"", r.UserCommentary)
	}
	return b.String()
}

func formatProgress(todayRead int, goal bool) string {
	s := fmt.Sprintf("Today: %d/%d read", todayRead, reading.DailyLimit)
	if goal {
		s += ", daily goal reached"
	}
	return s
}

func formatStreak(s reading.StreakData) string {
	return fmt.Sprintf("Streak: %s (longest %s)", plural(s.CurrentStreak, "day"), plural(s.LongestStreak, "day"))
}
