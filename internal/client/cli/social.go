package cli

import (
	"context"
	"fmt"
	"strconv"
)

const defaultRecommendedLimit = 10

func (a *App) Like(ctx context.Context, args []string) error {
	id, err := a.readArg(args, "Enter article id")
	if err != nil {
		return err
	}
	res, err := a.service.Like(ctx, id)
	if err != nil {
		return err
	}
	verb := "Unliked"
	if res.Liked {
		verb = "Liked"
	}
	fmt.Fprintf(a.out, "%s (%s)\n", verb, plural(res.LikesCount, "like"))
	return nil
}

func (a *App) Comment(ctx context.Context, args []string) error {
	id, err := a.readArg(args, "Enter article id")
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Your comment", a.out)
	if err != nil {
		return err
	}
	if _, err := a.service.Comment(ctx, id, content); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Comment posted.")
	return nil
}

func (a *App) Comments(ctx context.Context, args []string) error {
	id, err := a.readArg(args, "Enter article id")
	if err != nil {
		return err
	}
	list, err := a.service.Comments(ctx, id)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No comments yet.")
		return nil
	}
	for _, c := range list {
		fmt.Fprintf(a.out, "%s, %s:\n  %s\n", c.UserName, relTime(c.CommentedAt), c.Content)
	}
	return nil
}

// Share prompts for a URL, its category and an optional commentary.
func (a *App) Share(ctx context.Context) error {
	url, err := getSimpleText(a.reader, "Enter article URL", a.out)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Enter category id", a.out)
	if err != nil {
		return err
	}
	commentary, err := getMultiline(a.reader, "Why should others read it? (optional)", a.out)
	if err != nil {
		return err
	}

	art, err := a.service.Share(ctx, url, category, commentary)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Shared %q, id: %s\n", art.Title, art.ID)
	return nil
}

func (a *App) Recommended(ctx context.Context, args []string) error {
	limit := defaultRecommendedLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid limit %q", args[0])
		}
		limit = n
	}

	list, err := a.service.Recommended(ctx, limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No recommendations yet. Be the first to 'share'.")
		return nil
	}
	for i, r := range list {
		fmt.Fprintln(a.out, formatRecommended(i+1, r))
	}
	return nil
}
