package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/auth"
	"github.com/desertthunder/marquee/internal/favorites"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/desertthunder/marquee/internal/store"
	"github.com/desertthunder/marquee/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config        *shared.Config
	configPath    string
	catalog       services.Catalog
	api           *services.APIService
	store         store.Store
	codec         *auth.TokenCodec
	session       *auth.Session
	authenticator *auth.Authenticator
	favorites     *favorites.Store
	fetcher       *tasks.DetailsFetcher
	logger        *log.Logger
	output        io.Writer
	openURL       func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Catalog    services.Catalog
	API        *services.APIService
	Store      store.Store
	Logger     *log.Logger
	Output     io.Writer
	Now        func() time.Time
	Latency    time.Duration // Overrides the configured simulated latency when non-zero
	OpenURL    func(string) error
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
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore(nil)
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}

	latency := opts.Config.Auth.SimulatedLatency
	if opts.Latency != 0 {
		latency = opts.Latency
	} else if latency == 0 {
		latency = -1
	}

	codec := auth.NewTokenCodec(opts.Now)
	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		catalog:    opts.Catalog,
		api:        opts.API,
		store:      opts.Store,
		codec:      codec,
		output:     opts.Output,
		openURL:    opts.OpenURL,
	}
	r.authenticator = auth.NewAuthenticator(auth.AuthenticatorOpts{
		Codec:   codec,
		TTL:     opts.Config.Auth.TokenTTL,
		Latency: latency,
	})
	r.SetLogger(opts.Logger)
	return r
}

// SetLogger replaces the runner's logger and rebuilds the components that log through it.
//
// Call it before any command touches the session or favorites.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	r.session = auth.NewSession(r.store, r.codec, shared.WithLogger(logger, "component", "session"))
	r.favorites = favorites.New(r.store, shared.WithLogger(logger, "component", "favorites"))
	if r.catalog != nil {
		r.fetcher = tasks.NewDetailsFetcher(r.catalog, shared.WithLogger(logger, "component", "details"))
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, moviesCommand, favoritesCommand, storeCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireCatalog fails when no catalog service was configured.
func (r *Runner) requireCatalog() error {
	if r.catalog == nil {
		return fmt.Errorf("%w: movie catalog not initialized", shared.ErrServiceUnavailable)
	}
	return nil
}

// requireUser restores the persisted session and returns its user.
func (r *Runner) requireUser() (*models.User, error) {
	if err := r.session.Load(); err != nil {
		r.logger.Warn("failed to clear stale session", "error", err)
	}
	return r.session.RequireUser()
}

// movieIDArg parses the "id" argument as a positive TMDB movie id.
func movieIDArg(cmd *cli.Command) (int, error) {
	raw := cmd.StringArg("id")
	if raw == "" {
		return 0, fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: movie id must be a positive integer, got %q", shared.ErrInvalidArgument, raw)
	}
	return id, nil
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
