package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/services"
	"github.com/google/uuid"
)

// SessionCloser drops every open session when the host shuts down.
type SessionCloser interface {
	CloseAll()
}

// App is the REPL host. It owns one connection identity for its lifetime.
type App struct {
	authService     services.AuthService
	documentService services.DocumentService
	sessions        SessionCloser
	connID          string
	documentsDir    string
	reader          *bufio.Reader
	out             io.Writer
	log             logging.Logger
}

// NewApp wires an App reading commands from in and writing to out.
func NewApp(auth services.AuthService, docs services.DocumentService, sessions SessionCloser,
	documentsDir string, in io.Reader, out io.Writer, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	connID := uuid.NewString()
	return &App{
		authService:     auth,
		documentService: docs,
		sessions:        sessions,
		connID:          connID,
		documentsDir:    documentsDir,
		reader:          bufio.NewReader(in),
		out:             out,
		log:             log.With("conn", connID),
	}
}

// Run offers registration on an empty store, then serves commands until the
// user leaves. All sessions are closed on return.
func (a *App) Run(ctx context.Context) error {
	defer a.shutdown(ctx)

	fmt.Fprintln(a.out, "Welcome to gophnotes (type 'help' for commands)")

	hasUsers, err := a.authService.HasAnyUsers(ctx)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	if !hasUsers {
		fmt.Fprintln(a.out, "No accounts yet, let's create one.")
		if err := a.Register(ctx); err != nil {
			fmt.Fprintln(a.out, errorLine(err))
		}
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) shutdown(ctx context.Context) {
	a.sessions.CloseAll()
	a.log.Debug(ctx, "sessions closed")
}

func (a *App) isLoggedIn() bool {
	_, err := a.authService.CurrentUser(a.connID)
	return err == nil
}

func (a *App) status() string {
	user, err := a.authService.CurrentUser(a.connID)
	if err != nil {
		return ""
	}
	return "(" + user + ")"
}

// documentPath resolves a relative path against the documents directory.
func (a *App) documentPath(name string) string {
	if filepath.IsAbs(name) || a.documentsDir == "" {
		return name
	}
	return filepath.Join(a.documentsDir, name)
}
