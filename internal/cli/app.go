package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/dmitrijs2005/bucketlist/internal/config"
	"github.com/dmitrijs2005/bucketlist/internal/localdb"
	"github.com/dmitrijs2005/bucketlist/internal/logging"
	"github.com/dmitrijs2005/bucketlist/internal/persistence"
	"github.com/dmitrijs2005/bucketlist/internal/store"
)

// User-facing notices.
const (
	noticeNameRequired = "Please enter a destination name"
	noticeLoadFailed   = "Failed to load your destinations"
	noticeSaveFailed   = "Failed to save your destinations"
)

type App struct {
	store *store.Store
	db    *sql.DB
	log   logging.Logger

	in          io.Reader
	lines       <-chan string
	interactive bool

	outMu sync.Mutex
	out   io.Writer

	closeOnce sync.Once
	closeErr  error
}

// NewApp opens the database named in cfg and builds an App reading commands
// from stdin and writing to stdout.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := localdb.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", cfg.DatabasePath, "error", err)
		return nil, err
	}

	gw := persistence.NewSQLiteGateway(db, persistence.WithLogger(log.With("component", "persistence")))
	st := store.New(gw,
		store.WithLogger(log.With("component", "store")),
		store.WithSaveDelay(cfg.SaveDelay),
	)

	a := newApp(st, os.Stdin, os.Stdout, log)
	a.db = db
	a.interactive = term.IsTerminal(int(os.Stdin.Fd()))
	return a, nil
}

func newApp(st *store.Store, in io.Reader, out io.Writer, log logging.Logger) *App {
	return &App{store: st, in: in, out: out, log: log}
}

// Run hydrates the store, then serves the REPL until the input ends, the user
// quits or ctx is cancelled. The store is torn down before Run returns.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.lines = scanLines(ctx, a.in)

	a.store.OnError(func(err error) {
		a.log.Error(ctx, "error saving destinations", "error", err)
		a.notice(noticeSaveFailed)
	})

	if err := a.store.Initialize(ctx); err != nil {
		a.notice(noticeLoadFailed)
	}

	a.printf("My Travel Bucket List (type 'help' for commands)\n")
	a.render(a.store.List())
	unsubscribe := a.store.OnChange(a.render)
	defer unsubscribe()

	runREPL(ctx, a, a.lines, a.prompt)

	// ctx may already be cancelled by a signal; the final flush still runs.
	closeCtx, closeCancel := context.WithTimeout(context.WithoutCancel(ctx), persistence.DefaultWriteTimeout)
	defer closeCancel()
	return a.Close(closeCtx)
}

// Close flushes pending saves and closes the database. Safe to call more
// than once.
func (a *App) Close(ctx context.Context) error {
	a.closeOnce.Do(func() {
		var errs []error
		if err := a.store.Teardown(ctx); err != nil {
			a.log.Error(ctx, "error saving destinations on exit", "error", err)
			a.notice(noticeSaveFailed)
			errs = append(errs, err)
		}
		if a.db != nil {
			if err := a.db.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close database: %w", err))
			}
		}
		a.closeErr = errors.Join(errs...)
	})
	return a.closeErr
}

func (a *App) prompt() {
	if a.interactive {
		a.printf("bucketlist> ")
	}
}

func (a *App) notice(msg string) {
	a.printf("Error: %s\n", msg)
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

// scanLines feeds input lines to the returned channel until EOF or until ctx
// is done.
func scanLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
