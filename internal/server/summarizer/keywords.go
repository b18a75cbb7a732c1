package summarizer

import (
	"slices"
	"strings"
)

// DefaultCategory is used when nothing else matches.
const DefaultCategory = "technology"

var keywords = map[string][]string{
	"technology":   {"software", "programming", "code", "computer", "ai", "app", "developer", "cloud", "golang", "data", "tech", "robot"},
	"science":      {"science", "research", "physics", "biology", "space", "chemistry", "experiment", "climate", "study", "nasa"},
	"business":     {"business", "market", "startup", "finance", "economy", "invest", "money", "company", "sales", "stock"},
	"health":       {"health", "fitness", "diet", "sleep", "medical", "exercise", "nutrition", "mental", "doctor", "wellness"},
	"culture":      {"culture", "art", "music", "film", "movie", "book", "history", "design", "travel", "food"},
	"productivity": {"productivity", "habit", "focus", "time", "routine", "workflow", "goals", "notes", "planning", "tips"},
}

// KeywordCategory picks the known category whose keywords occur most often
// in text. Ties resolve in the order of known. With no hit it returns
// DefaultCategory when known, otherwise the first known id.
func KeywordCategory(text string, known []string) string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})

	best, bestScore := "", 0
	for _, cat := range known {
		score := 0
		for _, w := range words {
			if slices.Contains(keywords[cat], w) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = cat, score
		}
	}

	switch {
	case best != "":
		return best
	case slices.Contains(known, DefaultCategory) || len(known) == 0:
		return DefaultCategory
	default:
		return known[0]
	}
}
