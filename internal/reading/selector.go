package reading

import (
	"slices"
	"strings"
)

// DailyLimit caps the daily feed.
const DailyLimit = 3

// SelectDaily picks up to DailyLimit articles for p on today.
//
// Only unread articles from subscribed categories are eligible. Featured
// articles published today come first, then the rest of today's articles,
// both in pool order. Remaining slots are filled from the backlog, most
// recently published first. Articles dated after today are never picked.
// An empty result is not an error.
func SelectDaily(p Profile, pool []Article, today Date) []Article {
	read := make(map[string]struct{}, len(p.ReadArticles))
	for _, r := range p.ReadArticles {
		read[r.ArticleID] = struct{}{}
	}

	var featured, regular, backlog []Article
	for _, a := range pool {
		if !p.Preferences.Has(a.CategoryID) {
			continue
		}
		if _, ok := read[a.ID]; ok {
			continue
		}
		switch {
		case a.PublishDate == today && a.Featured:
			featured = append(featured, a)
		case a.PublishDate == today:
			regular = append(regular, a)
		case a.PublishDate != "" && a.PublishDate < today:
			backlog = append(backlog, a)
		}
	}

	slices.SortStableFunc(backlog, func(a, b Article) int {
		return strings.Compare(string(b.PublishDate), string(a.PublishDate))
	})

	out := make([]Article, 0, DailyLimit)
	for _, tier := range [][]Article{featured, regular, backlog} {
		for _, a := range tier {
			if len(out) == DailyLimit {
				return out
			}
			out = append(out, a)
		}
	}
	return out
}
