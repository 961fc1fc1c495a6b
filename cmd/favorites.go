package main

import (
	"context"
	"fmt"

	"github.com/st-doval17/myflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints the favorited movies, resolving titles when possible.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	ids := r.index.List()
	if len(ids) == 0 {
		r.writePlain("No favorites yet\n")
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(ids, cmd.Bool("pretty"))
	}

	// Titles come from the catalog; fall back to the raw id when a favorite
	// no longer resolves.
	titles := map[string]string{}
	if movies, err := r.flix.Movies(ctx); err == nil {
		for _, movie := range movies {
			titles[movie.ID] = movie.Title
		}
	} else {
		r.logger.Warnf("failed to fetch catalog for titles: %v", err)
	}

	r.writePlainHeader(fmt.Sprintf("Favorites (%d)", len(ids)))
	for i, id := range ids {
		title, ok := titles[id]
		if !ok {
			title = id
		}
		r.writePlain("%d. %s\n", i+1, title)
	}
	return nil
}

// FavoritesAdd favorites a movie by id.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	movieID := cmd.StringArg("id")
	if movieID == "" {
		return fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	if err := r.index.Add(ctx, movieID); err != nil {
		return err
	}

	r.writePlain("✓ Added %s to favorites\n", movieID)
	return nil
}

// FavoritesRemove unfavorites a movie by id.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	movieID := cmd.StringArg("id")
	if movieID == "" {
		return fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	if err := r.index.Remove(ctx, movieID); err != nil {
		return err
	}

	r.writePlain("✓ Removed %s from favorites\n", movieID)
	return nil
}

// FavoritesToggle flips a movie's favorite status.
func (r *Runner) FavoritesToggle(ctx context.Context, cmd *cli.Command) error {
	movieID := cmd.StringArg("id")
	if movieID == "" {
		return fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	favorited, err := r.index.Toggle(ctx, movieID)
	if err != nil {
		return err
	}

	if favorited {
		r.writePlain("✓ Added %s to favorites\n", movieID)
	} else {
		r.writePlain("✓ Removed %s from favorites\n", movieID)
	}
	return nil
}
