package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/st-doval17/myflix/internal/formatter"
	"github.com/st-doval17/myflix/internal/models"
	"github.com/st-doval17/myflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// MoviesList prints the full catalog.
func (r *Runner) MoviesList(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	r.logger.Info("fetching catalog")

	movies, err := r.flix.Movies(ctx)
	if err != nil {
		return err
	}

	if limit := cmd.Int("limit"); limit > 0 && limit < len(movies) {
		movies = movies[:limit]
	}

	if cmd.Bool("save") {
		r.saveResponse(movies, "myflix_movies.json")
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Catalog (%d movies)", len(movies)))
	for _, movie := range movies {
		r.printMovieLine(&movie)
	}
	return nil
}

// MovieGet prints a single movie looked up by title.
func (r *Runner) MovieGet(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	if title == "" {
		return fmt.Errorf("%w: movie title", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	movie, err := r.flix.Movie(ctx, title)
	if err != nil {
		return err
	}

	if cmd.Bool("save") {
		r.saveResponse(movie, "myflix_movie.json")
	}

	if cmd.Bool("open") && movie.ImagePath != "" {
		if err := shared.OpenBrowser(movie.ImagePath); err != nil {
			r.logger.Warnf("failed to open image: %v", err)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(movie, cmd.Bool("pretty"))
	}

	r.writePlainHeader(movie.Title)
	if movie.Description != "" {
		r.writePlain("%s\n\n", movie.Description)
	}
	if movie.Genre.Name != "" {
		r.writePlain("Genre: %s\n", movie.Genre.Name)
	}
	if movie.Director.Name != "" {
		r.writePlain("Director: %s\n", movie.Director.Name)
	}
	if movie.Featured {
		r.writePlain("Featured: yes\n")
	}
	if r.index.IsFavorite(movie.ID) {
		r.writePlain("Favorite: yes\n")
	}
	return nil
}

// MoviesByDirector prints the movies credited to a director, plus their bio.
func (r *Runner) MoviesByDirector(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: director name", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	movies, err := r.flix.MoviesByDirector(ctx, name)
	if err != nil {
		return err
	}

	if cmd.Bool("save") {
		r.saveResponse(movies, "myflix_director.json")
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Directed by %s", name))
	if len(movies) > 0 && movies[0].Director.Bio != "" {
		r.writePlain("%s\n\n", movies[0].Director.Bio)
	}
	for _, movie := range movies {
		r.printMovieLine(&movie)
	}
	return nil
}

// MoviesByGenre prints the movies in a genre, plus its description.
func (r *Runner) MoviesByGenre(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: genre name", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	movies, err := r.flix.MoviesByGenre(ctx, name)
	if err != nil {
		return err
	}

	if cmd.Bool("save") {
		r.saveResponse(movies, "myflix_genre.json")
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Genre: %s", name))
	if len(movies) > 0 && movies[0].Genre.Description != "" {
		r.writePlain("%s\n\n", movies[0].Genre.Description)
	}
	for _, movie := range movies {
		r.printMovieLine(&movie)
	}
	return nil
}

// MoviesExport writes the catalog to a file in the requested format.
func (r *Runner) MoviesExport(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	movies, err := r.flix.Movies(ctx)
	if err != nil {
		return err
	}

	catalog := &formatter.Catalog{Name: "myflix_catalog", Movies: movies}
	output := cmd.String("output")

	switch format := strings.ToLower(cmd.String("format")); format {
	case "csv":
		result, err := formatter.WriteCSVExport(catalog, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d movies to %s\n", len(movies), result.MoviesFile)
		r.writePlain("✓ Metadata written to %s\n", result.MetadataFile)
	case "markdown", "md":
		path, err := formatter.WriteMarkdownExport(catalog, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d movies to %s\n", len(movies), path)
	case "text", "txt":
		path, err := formatter.WriteTextExport(catalog, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d movies to %s\n", len(movies), path)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}

	return nil
}

// saveResponse writes a decoded API response to a local JSON file.
// Write failures are logged, not returned.
func (r *Runner) saveResponse(v any, file string) {
	data, err := shared.MarshalJSON(v, true)
	if err != nil {
		r.logger.Warn("failed to marshal response", "error", err)
		return
	}
	if err := os.WriteFile(file, data, 0644); err != nil {
		r.logger.Warn("failed to save response", "file", file, "error", err)
		return
	}
	r.logger.Info("response saved", "file", file)
}

func (r *Runner) printMovieLine(movie *models.Movie) {
	marker := " "
	if r.index.IsFavorite(movie.ID) {
		marker = "♥"
	}

	line := fmt.Sprintf("%s %s", marker, movie.Title)
	if movie.Director.Name != "" {
		line = fmt.Sprintf("%s • %s", line, movie.Director.Name)
	}
	r.writePlain("%s\n", line)
}
