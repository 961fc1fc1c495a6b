package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/st-doval17/myflix/internal/favorites"
	"github.com/st-doval17/myflix/internal/models"
	"github.com/st-doval17/myflix/internal/services"
	"github.com/st-doval17/myflix/internal/session"
	"github.com/st-doval17/myflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	flix       services.Service
	api        *services.APIService
	store      session.Store
	index      *favorites.Index
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Flix       services.Service
	API        *services.APIService
	Store      session.Store
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Store == nil {
		opts.Store = session.NewMemStore()
	}

	// Every invocation gets a correlation id so interleaved log lines from
	// the TUI file logger stay attributable.
	logger := shared.WithLogger(opts.Logger, "run", shared.GenerateID()[:8])

	return &Runner{
		config:     opts.Config,
		flix:       opts.Flix,
		api:        opts.API,
		store:      opts.Store,
		index:      favorites.NewIndex(opts.Flix, opts.Store),
		httpClient: opts.HTTPClient,
		logger:     logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		authCommand, moviesCommand, favoritesCommand, profileCommand, apiCommand, setupCommand, cacheCommand, browseCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireSession loads the stored session, installs its token on the service,
// and seeds the favorites index. Commands that talk to protected endpoints
// call this first.
func (r *Runner) requireSession() (*models.Session, error) {
	sess, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("%w: run 'myflix auth login' first", shared.ErrNotAuthenticated)
	}

	r.flix.Authenticate(sess.Token)
	r.index.Initialize(sess)
	return sess, nil
}

// openDatabase opens the configured cache database and applies pending migrations.
func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, err
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
