package cli

import (
	"context"
	"fmt"
	"strings"
)

// readArg returns args[0] or prompts for it.
func (a *App) readArg(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("%s: empty input", strings.ToLower(prompt))
	}
	return v, nil
}

func (a *App) Categories(ctx context.Context) error {
	cats, err := a.service.Categories(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Categories:")
	for _, c := range cats {
		fmt.Fprintf(a.out, "  %-14s %s\n", c.ID, c.Name)
	}
	return nil
}

// Feed prints today's selection.
func (a *App) Feed(ctx context.Context) error {
	feed, err := a.service.Feed(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Daily feed for %s. %s\n", feed.Date, formatProgress(feed.TodayReadCount, feed.GoalReached))
	if len(feed.Articles) == 0 {
		fmt.Fprintln(a.out, "Nothing new today. Add categories with 'prefs'.")
		return nil
	}
	for i, art := range feed.Articles {
		fmt.Fprintln(a.out, formatArticle(i+1, art))
	}
	return nil
}

// Read marks the article given as argument, or prompted for, as read.
func (a *App) Read(ctx context.Context, args []string) error {
	id, err := a.readArg(args, "Enter article id")
	if err != nil {
		return err
	}

	res, err := a.service.MarkRead(ctx, id)
	if err != nil {
		return err
	}

	if res.Changed {
		fmt.Fprintln(a.out, "Marked as read.")
	} else {
		fmt.Fprintln(a.out, "Already read.")
	}
	fmt.Fprintln(a.out, formatStreak(res.Streak))
	fmt.Fprintln(a.out, formatProgress(res.TodayReadCount, res.GoalReached))
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	p, err := a.service.Profile(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s <%s>, %s\n", p.Name, p.Email, p.Role)
	fmt.Fprintf(a.out, "Joined %s, last active %s\n", relDate(p.JoinDate), relDate(p.LastActive))
	fmt.Fprintf(a.out, "Categories: %s\n", strings.Join(p.Preferences.Categories, ", "))
	fmt.Fprintf(a.out, "Read so far: %s\n", plural(len(p.ReadArticles), "article"))
	fmt.Fprintln(a.out, formatStreak(p.Streak))
	fmt.Fprintln(a.out, formatProgress(p.TodayReadCount, p.GoalReached))
	return nil
}

// Prefs replaces the category preferences with the given list, or a
// prompted one.
func (a *App) Prefs(ctx context.Context, args []string) error {
	var cats []string
	if len(args) > 0 {
		cats = splitList(strings.Join(args, ","))
	} else {
		if err := a.Categories(ctx); err != nil {
			return err
		}
		text, err := getSimpleText(a.reader, "Choose categories (comma separated ids)", a.out)
		if err != nil {
			return err
		}
		cats = splitList(text)
	}

	p, err := a.service.UpdatePreferences(ctx, cats)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Categories: %s\n", strings.Join(p.Preferences.Categories, ", "))
	return nil
}
