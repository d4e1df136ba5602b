// Package server wires the application together: configuration, logging,
// database access and the account service, exposed through a small
// operator command line (migrate, register, signin, refresh).
package server

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/dmitrijs2005/authgate/internal/flagx"
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/config"
	"github.com/dmitrijs2005/authgate/internal/server/passwords"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authgate/internal/server/services"
)

const commandTimeout = 30 * time.Second

// readPasswordFn is a seam for tests; term.ReadPassword needs a real tty.
var readPasswordFn = func(fd int) ([]byte, error) {
	return term.ReadPassword(fd)
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	manager  repomanager.RepositoryManager
	accounts *services.AccountService
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	logger := logging.NewSlogLogger(sl).With("module", "server")

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	as := services.NewAccountService(db, m, passwords.NewBcryptHasher(), c)

	return &App{config: c, logger: logger, db: db, manager: m, accounts: as}, nil
}

func (app *App) Close() error {
	return app.db.Close()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run dispatches one operator command and returns when it has finished.
func (app *App) Run(args []string) error {

	ctx, cancelFunc := context.WithTimeout(context.Background(), commandTimeout)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	if len(args) == 0 {
		return fmt.Errorf("usage: authgate <migrate|register|signin|refresh> [flags]")
	}

	cmd, cmdArgs := args[0], args[1:]

	switch cmd {
	case "migrate":
		return app.runMigrate(ctx)
	case "register":
		return app.runRegister(ctx, cmdArgs)
	case "signin":
		return app.runSignIn(ctx, cmdArgs)
	case "refresh":
		return app.runRefresh(ctx, cmdArgs)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func (app *App) runMigrate(ctx context.Context) error {
	app.logger.Info(ctx, "running migrations")
	if err := app.manager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	app.logger.Info(ctx, "migrations applied")
	return nil
}

func (app *App) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fullName := fs.String("n", "", "full name")
	email := fs.String("e", "", "email")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-n", "-e"})); err != nil {
		return err
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	account, err := app.accounts.Register(ctx, *fullName, *email, password)
	if err != nil {
		return err
	}

	app.logger.Info(ctx, "account registered", "id", account.ID, "email", account.Email)
	fmt.Println("Account created!")
	return nil
}

func (app *App) runSignIn(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signin", flag.ContinueOnError)
	email := fs.String("e", "", "email")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-e"})); err != nil {
		return err
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	pair, err := app.accounts.SignIn(ctx, *email, password)
	if err != nil {
		return err
	}

	fmt.Println("Login successfully")
	printTokenPair(pair)
	return nil
}

func (app *App) runRefresh(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("refresh", flag.ContinueOnError)
	token := fs.String("r", "", "refresh token")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-r"})); err != nil {
		return err
	}

	pair, err := app.accounts.Refresh(ctx, *token)
	if err != nil {
		return err
	}

	fmt.Println("Token refreshed successfully")
	printTokenPair(pair)
	return nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := readPasswordFn(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("password read error: %w", err)
	}
	return string(b), nil
}

func printTokenPair(pair *services.TokenPair) {
	fmt.Printf("access_token: %s\n", pair.AccessToken)
	fmt.Printf("refresh_token: %s\n", pair.RefreshToken)
}
