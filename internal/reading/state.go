package reading

import (
	"encoding/json"
	"fmt"
)

// State is the serialized form of the mutable parts of a profile, as stored
// in the text columns of a flat user record.
type State struct {
	Preferences  string
	ReadArticles string
	StreakData   string
}

// EncodeState serializes the preferences, read log and streak of p.
func EncodeState(p Profile) (State, error) {
	prefs := p.Preferences
	if prefs.Categories == nil {
		prefs.Categories = []string{}
	}
	reads := p.ReadArticles
	if reads == nil {
		reads = []ReadArticle{}
	}

	var (
		s   State
		err error
	)
	if s.Preferences, err = marshal(prefs); err != nil {
		return State{}, fmt.Errorf("encode preferences: %w", err)
	}
	if s.ReadArticles, err = marshal(reads); err != nil {
		return State{}, fmt.Errorf("encode read articles: %w", err)
	}
	if s.StreakData, err = marshal(p.Streak); err != nil {
		return State{}, fmt.Errorf("encode streak: %w", err)
	}
	return s, nil
}

// DecodeState fills the preferences, read log and streak of p from s.
// Empty columns decode to empty values. Duplicate reads keep the first entry.
func DecodeState(s State, p *Profile) error {
	var prefs Preferences
	if err := unmarshal(s.Preferences, &prefs); err != nil {
		return fmt.Errorf("decode preferences: %w", err)
	}
	var reads []ReadArticle
	if err := unmarshal(s.ReadArticles, &reads); err != nil {
		return fmt.Errorf("decode read articles: %w", err)
	}
	var streak StreakData
	if err := unmarshal(s.StreakData, &streak); err != nil {
		return fmt.Errorf("decode streak: %w", err)
	}

	p.Preferences = Preferences{Categories: NormalizeCategories(prefs.Categories)}
	p.ReadArticles = dedupeReads(reads)
	p.Streak = streak
	return nil
}

func dedupeReads(reads []ReadArticle) []ReadArticle {
	seen := make(map[string]struct{}, len(reads))
	out := make([]ReadArticle, 0, len(reads))
	for _, r := range reads {
		if _, ok := seen[r.ArticleID]; ok {
			continue
		}
		seen[r.ArticleID] = struct{}{}
		out = append(out, r)
	}
	return out
}

func marshal(v any) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

func unmarshal(s string, v any) error {
	if s == "" {
		return nil
	}
	return json.Unmarshal([]byte(s), v)
}
