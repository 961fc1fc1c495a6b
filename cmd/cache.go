package main

import (
	"context"
	"fmt"

	"github.com/st-doval17/myflix/internal/models"
	"github.com/st-doval17/myflix/internal/repositories"
	"github.com/urfave/cli/v3"
)

// CacheSync replaces the local movie cache with the current remote catalog.
func (r *Runner) CacheSync(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	r.logger.Info("syncing catalog to local cache")

	movies, err := r.flix.Movies(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch catalog: %w", err)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewMovieRepository(db)
	if err := repo.ReplaceAll(movies); err != nil {
		return err
	}

	r.writePlain("✓ Cached %d movies to %s\n", len(movies), r.config.Database.Path)
	return nil
}

// CacheList prints the cached catalog without touching the network.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewMovieRepository(db)

	var (
		movies []models.Movie
	)
	switch {
	case cmd.String("search") != "":
		movies, err = repo.Search(cmd.String("search"))
	case cmd.String("genre") != "":
		movies, err = repo.ListByGenre(cmd.String("genre"))
	case cmd.String("director") != "":
		movies, err = repo.ListByDirector(cmd.String("director"))
	default:
		movies, err = repo.List()
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	stamp, err := repo.CachedAt()
	if err != nil {
		return err
	}

	if stamp.IsZero() {
		r.writePlain("Cache is empty, run 'myflix cache sync' first\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Cached catalog (%d movies, synced %s)", len(movies), stamp.Format("2006-01-02 15:04")))
	for i := range movies {
		r.printMovieLine(&movies[i])
	}
	return nil
}

// CacheClear removes every cached movie.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewMovieRepository(db)
	if err := repo.Clear(); err != nil {
		return err
	}

	r.writePlain("✓ Cache cleared\n")
	return nil
}
