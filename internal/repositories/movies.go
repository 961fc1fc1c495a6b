// package repositories provides the persistence layer for the offline movie cache.
//
// The cache mirrors the remote catalog in a local SQLite database so that
// browsing and exporting keep working without a connection.
package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/st-doval17/myflix/internal/models"
)

// MovieRepository persists [models.Movie] rows in the local cache.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a repository backed by the given database.
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

const movieColumns = `id, title, description, genre_name, genre_description,
	director_name, director_bio, director_birth, director_death,
	image_path, featured, cached_at`

// Upsert inserts a movie or replaces the cached row with the same id.
func (r *MovieRepository) Upsert(movie *models.Movie) error {
	if movie.ID == "" || movie.Title == "" {
		return fmt.Errorf("movie requires an id and a title")
	}

	query := `
		INSERT INTO movies (` + movieColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			genre_name = excluded.genre_name,
			genre_description = excluded.genre_description,
			director_name = excluded.director_name,
			director_bio = excluded.director_bio,
			director_birth = excluded.director_birth,
			director_death = excluded.director_death,
			image_path = excluded.image_path,
			featured = excluded.featured,
			cached_at = excluded.cached_at
	`

	_, err := r.db.Exec(query,
		movie.ID, movie.Title, movie.Description,
		movie.Genre.Name, movie.Genre.Description,
		movie.Director.Name, movie.Director.Bio,
		movie.Director.BirthYear, movie.Director.DeathYear,
		movie.ImagePath, movie.Featured, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert movie: %w", err)
	}

	return nil
}

// Get retrieves a cached movie by id.
func (r *MovieRepository) Get(id string) (*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByTitle retrieves a cached movie by exact title.
func (r *MovieRepository) GetByTitle(title string) (*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE title = ?`
	return r.scanOne(r.db.QueryRow(query, title))
}

// List returns all cached movies ordered by title.
func (r *MovieRepository) List() ([]models.Movie, error) {
	return r.list(`SELECT `+movieColumns+` FROM movies ORDER BY title`, nil)
}

// ListByGenre returns cached movies matching the genre name.
func (r *MovieRepository) ListByGenre(name string) ([]models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE genre_name = ? COLLATE NOCASE ORDER BY title`
	return r.list(query, []any{name})
}

// ListByDirector returns cached movies matching the director name.
func (r *MovieRepository) ListByDirector(name string) ([]models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE director_name = ? COLLATE NOCASE ORDER BY title`
	return r.list(query, []any{name})
}

// Search returns cached movies whose title contains the given fragment.
func (r *MovieRepository) Search(fragment string) ([]models.Movie, error) {
	pattern := "%" + strings.ReplaceAll(fragment, "%", `\%`) + "%"
	query := `SELECT ` + movieColumns + ` FROM movies WHERE title LIKE ? ESCAPE '\' COLLATE NOCASE ORDER BY title`
	return r.list(query, []any{pattern})
}

// ReplaceAll swaps the entire cache for the given catalog in one transaction.
func (r *MovieRepository) ReplaceAll(movies []models.Movie) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM movies`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO movies (` + movieColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i := range movies {
		m := &movies[i]
		_, err := stmt.Exec(
			m.ID, m.Title, m.Description,
			m.Genre.Name, m.Genre.Description,
			m.Director.Name, m.Director.Bio,
			m.Director.BirthYear, m.Director.DeathYear,
			m.ImagePath, m.Featured, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert movie %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cache swap: %w", err)
	}

	return nil
}

// Clear removes every cached movie.
func (r *MovieRepository) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM movies`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Count returns the number of cached movies.
func (r *MovieRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM movies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}

// CachedAt returns the time of the most recent cache write, or the zero time
// when the cache is empty.
func (r *MovieRepository) CachedAt() (time.Time, error) {
	var stamp sql.NullTime
	if err := r.db.QueryRow(`SELECT MAX(cached_at) FROM movies`).Scan(&stamp); err != nil {
		return time.Time{}, fmt.Errorf("failed to read cache timestamp: %w", err)
	}

	if !stamp.Valid {
		return time.Time{}, nil
	}
	return stamp.Time, nil
}

func (r *MovieRepository) scanOne(row *sql.Row) (*models.Movie, error) {
	movie, err := scanMovie(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan movie: %w", err)
	}
	return movie, nil
}

func (r *MovieRepository) list(query string, args []any) ([]models.Movie, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, *movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movies: %w", err)
	}

	return movies, nil
}

func scanMovie(scan func(dest ...any) error) (*models.Movie, error) {
	var (
		movie    models.Movie
		death    sql.NullInt64
		cachedAt time.Time
	)

	err := scan(
		&movie.ID, &movie.Title, &movie.Description,
		&movie.Genre.Name, &movie.Genre.Description,
		&movie.Director.Name, &movie.Director.Bio,
		&movie.Director.BirthYear, &death,
		&movie.ImagePath, &movie.Featured, &cachedAt,
	)
	if err != nil {
		return nil, err
	}

	if death.Valid {
		year := int(death.Int64)
		movie.Director.DeathYear = &year
	}

	return &movie, nil
}
