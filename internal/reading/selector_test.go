package reading

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(articles []Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}

func art(id, category string, date Date, featured bool) Article {
	return Article{ID: id, Title: "title " + id, CategoryID: category, PublishDate: date, Featured: featured, EstimatedReadingTime: 3}
}

func reader(categories ...string) Profile {
	return NewProfile("u-1", "Ann", "ann@example.com", categories, "2025-01-01")
}

const today Date = "2025-06-01"

func TestSelectDaily_Tiering(t *testing.T) {
	pool := []Article{
		art("n1", "tech", today, false),
		art("f1", "tech", today, true),
		art("n2", "tech", today, false),
		art("f2", "tech", today, true),
		art("n3", "tech", today, false),
		art("n4", "tech", today, false),
		art("n5", "tech", today, false),
	}

	got := SelectDaily(reader("tech"), pool, today)
	assert.Equal(t, []string{"f1", "f2", "n1"}, ids(got))
}

func TestSelectDaily_BacklogMostRecentFirst(t *testing.T) {
	pool := []Article{
		art("old", "tech", "2025-05-01", true),
		art("t1", "tech", today, false),
		art("mid", "tech", "2025-05-20", false),
		art("new", "tech", "2025-05-31", false),
		art("future", "tech", "2025-06-02", true),
	}

	got := SelectDaily(reader("tech"), pool, today)
	assert.Equal(t, []string{"t1", "new", "mid"}, ids(got))
}

func TestSelectDaily_BacklogStableForSameDate(t *testing.T) {
	pool := []Article{
		art("b1", "tech", "2025-05-30", false),
		art("b2", "tech", "2025-05-30", false),
		art("b3", "tech", "2025-05-30", false),
		art("b4", "tech", "2025-05-30", false),
	}

	got := SelectDaily(reader("tech"), pool, today)
	assert.Equal(t, []string{"b1", "b2", "b3"}, ids(got))
}

func TestSelectDaily_FiltersCategoriesAndReads(t *testing.T) {
	p := reader("tech", "science")
	p, _ = MarkRead(p, "f-read", "2025-05-31")

	pool := []Article{
		art("f-read", "tech", today, true),
		art("f-other", "sports", today, true),
		art("s1", "science", today, false),
		art("t-back", "tech", "2025-05-29", false),
	}

	got := SelectDaily(p, pool, today)
	assert.Equal(t, []string{"s1", "t-back"}, ids(got))
}

func TestSelectDaily_EmptyPool(t *testing.T) {
	got := SelectDaily(reader("tech"), nil, today)
	require.NotNil(t, got)
	assert.Empty(t, got)

	got = SelectDaily(reader(), []Article{art("a", "tech", today, true)}, today)
	assert.Empty(t, got)
}

func TestSelectDaily_CapAndEligibility(t *testing.T) {
	categories := []string{"tech", "science", "health"}
	p := reader("tech", "science")
	p, _ = MarkRead(p, "a3", "2025-05-31")
	p, _ = MarkRead(p, "a7", "2025-05-31")

	var pool []Article
	for i := 0; i < 30; i++ {
		date := today.AddDays(-(i % 5))
		pool = append(pool, art(fmt.Sprintf("a%d", i), categories[i%3], date, i%4 == 0))
	}

	got := SelectDaily(p, pool, today)
	require.LessOrEqual(t, len(got), DailyLimit)
	for _, a := range got {
		assert.True(t, p.Preferences.Has(a.CategoryID), "category %s not subscribed", a.CategoryID)
		assert.False(t, IsRead(p, a.ID), "article %s already read", a.ID)
	}
}

func TestSelectDaily_DoesNotMutatePool(t *testing.T) {
	pool := []Article{
		art("b1", "tech", "2025-05-01", false),
		art("b2", "tech", "2025-05-30", false),
	}
	_ = SelectDaily(reader("tech"), pool, today)
	assert.Equal(t, []string{"b1", "b2"}, ids(pool))
}
