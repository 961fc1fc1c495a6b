package repositories

import (
	"testing"

	"github.com/st-doval17/myflix/internal/models"
	"github.com/st-doval17/myflix/internal/shared"
)

func newRepo(t *testing.T) *MovieRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewMovieRepository(db)
}

func sampleMovies() []models.Movie {
	death := 1999
	return []models.Movie{
		{
			ID:          "m1",
			Title:       "Alien",
			Description: "A commercial crew picks up a distress call.",
			Genre:       models.Genre{Name: "Science Fiction", Description: "Speculative futures."},
			Director:    models.Director{Name: "Ridley Scott", Bio: "British filmmaker.", BirthYear: 1937},
			ImagePath:   "https://example.com/alien.jpg",
			Featured:    true,
		},
		{
			ID:       "m2",
			Title:    "Eyes Wide Shut",
			Genre:    models.Genre{Name: "Drama"},
			Director: models.Director{Name: "Stanley Kubrick", BirthYear: 1928, DeathYear: &death},
		},
		{
			ID:       "m3",
			Title:    "Blade Runner",
			Genre:    models.Genre{Name: "Science Fiction"},
			Director: models.Director{Name: "Ridley Scott", BirthYear: 1937},
		},
	}
}

func TestMovieRepository(t *testing.T) {
	t.Run("upsert then get round-trips all fields", func(t *testing.T) {
		repo := newRepo(t)
		movies := sampleMovies()

		if err := repo.Upsert(&movies[1]); err != nil {
			t.Fatalf("expected upsert to succeed, got %v", err)
		}

		got, err := repo.Get("m2")
		if err != nil {
			t.Fatalf("expected get to succeed, got %v", err)
		}

		if got == nil {
			t.Fatal("expected a movie, got nil")
		}

		if got.Title != "Eyes Wide Shut" {
			t.Errorf("expected title Eyes Wide Shut, got %q", got.Title)
		}

		if got.Director.DeathYear == nil || *got.Director.DeathYear != 1999 {
			t.Errorf("expected death year 1999, got %v", got.Director.DeathYear)
		}
	})

	t.Run("upsert replaces an existing row", func(t *testing.T) {
		repo := newRepo(t)
		movie := sampleMovies()[0]

		if err := repo.Upsert(&movie); err != nil {
			t.Fatalf("expected first upsert to succeed, got %v", err)
		}

		movie.Description = "updated"
		if err := repo.Upsert(&movie); err != nil {
			t.Fatalf("expected second upsert to succeed, got %v", err)
		}

		got, _ := repo.Get("m1")
		if got.Description != "updated" {
			t.Errorf("expected updated description, got %q", got.Description)
		}

		count, _ := repo.Count()
		if count != 1 {
			t.Errorf("expected 1 row, got %d", count)
		}
	})

	t.Run("get of a missing movie returns nil", func(t *testing.T) {
		repo := newRepo(t)
		got, err := repo.Get("missing")
		if err != nil {
			t.Fatalf("expected get to succeed, got %v", err)
		}

		if got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("replace all swaps the cache atomically", func(t *testing.T) {
		repo := newRepo(t)
		stale := sampleMovies()[0]
		stale.ID = "stale"
		if err := repo.Upsert(&stale); err != nil {
			t.Fatalf("expected seed upsert to succeed, got %v", err)
		}

		if err := repo.ReplaceAll(sampleMovies()); err != nil {
			t.Fatalf("expected replace to succeed, got %v", err)
		}

		if got, _ := repo.Get("stale"); got != nil {
			t.Error("expected the stale row to be gone")
		}

		count, _ := repo.Count()
		if count != 3 {
			t.Errorf("expected 3 rows, got %d", count)
		}

		stamp, err := repo.CachedAt()
		if err != nil || stamp.IsZero() {
			t.Errorf("expected a cache timestamp, got %v, %v", stamp, err)
		}
	})

	t.Run("list orders by title", func(t *testing.T) {
		repo := newRepo(t)
		if err := repo.ReplaceAll(sampleMovies()); err != nil {
			t.Fatalf("expected replace to succeed, got %v", err)
		}

		movies, err := repo.List()
		if err != nil {
			t.Fatalf("expected list to succeed, got %v", err)
		}

		want := []string{"Alien", "Blade Runner", "Eyes Wide Shut"}
		for i, title := range want {
			if movies[i].Title != title {
				t.Errorf("position %d: expected %q, got %q", i, title, movies[i].Title)
			}
		}
	})

	t.Run("filters by genre and director", func(t *testing.T) {
		repo := newRepo(t)
		if err := repo.ReplaceAll(sampleMovies()); err != nil {
			t.Fatalf("expected replace to succeed, got %v", err)
		}

		scifi, err := repo.ListByGenre("science fiction")
		if err != nil {
			t.Fatalf("expected genre query to succeed, got %v", err)
		}

		if len(scifi) != 2 {
			t.Errorf("expected 2 science fiction movies, got %d", len(scifi))
		}

		scott, err := repo.ListByDirector("Ridley Scott")
		if err != nil {
			t.Fatalf("expected director query to succeed, got %v", err)
		}

		if len(scott) != 2 {
			t.Errorf("expected 2 Ridley Scott movies, got %d", len(scott))
		}
	})

	t.Run("search matches title fragments case-insensitively", func(t *testing.T) {
		repo := newRepo(t)
		if err := repo.ReplaceAll(sampleMovies()); err != nil {
			t.Fatalf("expected replace to succeed, got %v", err)
		}

		hits, err := repo.Search("blade")
		if err != nil {
			t.Fatalf("expected search to succeed, got %v", err)
		}

		if len(hits) != 1 || hits[0].ID != "m3" {
			t.Errorf("expected to find Blade Runner, got %+v", hits)
		}
	})

	t.Run("clear empties the cache", func(t *testing.T) {
		repo := newRepo(t)
		if err := repo.ReplaceAll(sampleMovies()); err != nil {
			t.Fatalf("expected replace to succeed, got %v", err)
		}

		if err := repo.Clear(); err != nil {
			t.Fatalf("expected clear to succeed, got %v", err)
		}

		count, _ := repo.Count()
		if count != 0 {
			t.Errorf("expected an empty cache, got %d rows", count)
		}

		stamp, _ := repo.CachedAt()
		if !stamp.IsZero() {
			t.Errorf("expected a zero timestamp, got %v", stamp)
		}
	})
}
