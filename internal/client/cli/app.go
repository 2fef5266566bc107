package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/vinaykumardeekonda/srsp-cli/internal/client/api"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/config"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/models"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/repositories/metadata"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/services"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/session"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/storage"
	"github.com/vinaykumardeekonda/srsp-cli/internal/logging"
)

// App wires configuration, local storage, the REST client and the
// application services behind the interactive REPL.
type App struct {
	config     *config.Config
	db         *sql.DB
	store      *session.Store
	auth       services.AuthService
	resources  services.ResourceService
	moderation *services.ModerationService
	activity   services.ActivityService
	log        logging.Logger
	reader     *bufio.Reader
	out        io.Writer

	// lastUploads caches the most recent "mine" listing so that resubmit,
	// delete and download can address entries by list position.
	lastUploads []models.Resource

	// logFilter remembers the last "logs" narrowing so that "export"
	// writes what the admin is looking at.
	logFilter logFilter
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "initializing local database", "error", err)
		return nil, err
	}

	repo := metadata.NewSQLiteRepository(db)

	store := session.NewStore(repo)
	if err := store.Restore(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	jar, err := api.NewPersistentJar(ctx, repo, base)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	client, err := api.New(cfg.BaseURL, jar, cfg.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:     cfg,
		db:         db,
		store:      store,
		auth:       services.NewAuthService(client, store, log),
		resources:  services.NewResourceService(client),
		moderation: services.NewModerationService(client, store),
		activity:   services.NewActivityService(client),
		log:        log,
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
	}, nil
}

// verdict evaluates one route against the current session state.
func (a *App) verdict(route Route) Verdict {
	return Evaluate(route, a.store.Confirmed(), a.store.Current())
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	return a.store.IsAdmin()
}

// getStatus renders the prompt decoration: the restored or confirmed
// identity, if any.
func (a *App) getStatus() string {
	s := a.store.Current()
	if s == nil {
		return ""
	}
	if s.IsAdmin() {
		return fmt.Sprintf("(%s, admin)", s.Email)
	}
	return fmt.Sprintf("(%s)", s.Email)
}

// Run resolves the restored session against the backend, then hands control
// to the REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to SRSP CLI (type 'help' for commands)")

	if restored := a.store.Current(); restored != nil {
		fmt.Fprintf(a.out, "Restoring session for %s...\n", restored.Email)
	}

	// Synchronous: nothing protected renders before the answer.
	if user := a.auth.CheckSession(ctx); user != nil {
		fmt.Fprintf(a.out, "Logged in as %s\n", user.Email)
	} else {
		fmt.Fprintln(a.out, "Not logged in.")
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) Close() {
	if err := a.db.Close(); err != nil {
		a.log.Error(context.Background(), "closing local database", "error", err)
	}
}
