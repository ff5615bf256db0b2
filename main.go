package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"pizza-store-cli/config"
	"pizza-store-cli/console"
	"pizza-store-cli/database"
	"pizza-store-cli/handlers"
	"pizza-store-cli/logger"
	"pizza-store-cli/middleware"
	"pizza-store-cli/repository"
	"pizza-store-cli/routes"
	"pizza-store-cli/services"
)

const exitInterrupted = 130

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) != 4 {
		fmt.Fprintf(stderr, "Usage: %s <dbname> <port> <user>\n", args[0])
		return 1
	}

	cfg, err := config.Load(args[1], args[2], args[3])
	if err != nil {
		fmt.Fprintf(stderr, "configuration: %v\n", err)
		return 1
	}
	log, err := logger.Setup(cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return 1
	}

	greeting(stdout)

	dialector, err := cfg.DB.Dialector()
	if err != nil {
		fmt.Fprintf(stderr, "configuration: %v\n", err)
		return 1
	}
	fmt.Fprint(stdout, "Connecting to database...")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	gw, err := database.Open(ctx, dialector, &gorm.Config{
		Logger:         logger.NewGormLogger(log),
		TranslateError: true,
	})
	if err != nil {
		log.WithError(err).WithField("dsn", cfg.DB.Redacted()).Error("connection failed")
		fmt.Fprintln(stdout)
		fmt.Fprintf(stderr, "%v\nMake sure the database server is running and reachable.\n", err)
		return 1
	}
	fmt.Fprintln(stdout, "Done")
	log.WithField("dsn", cfg.DB.Redacted()).Info("connected")

	defer func() {
		fmt.Fprint(stdout, "Disconnecting from database...")
		if err := gw.Close(); err != nil {
			log.WithError(err).Warn("close failed")
		}
		fmt.Fprintln(stdout, "Done\n\nBye !")
	}()

	dispatcher, err := wire(cfg, gw, stdin, stdout, log)
	if err != nil {
		fmt.Fprintf(stderr, "startup: %v\n", err)
		return 1
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	runErrCh := make(chan error, 1)
	go func() {
		runErrCh <- guard(func() error { return dispatcher.Run(ctx) })
	}()

	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("interrupted")
		fmt.Fprintln(stdout)
		cancel()
		return exitInterrupted
	case err := <-runErrCh:
		if err != nil {
			log.WithError(err).Error("session aborted")
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		return 0
	}
}

// guard turns a panic in fn into an error so the caller's deferred
// teardown still runs.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

func wire(cfg config.Config, gw *database.Gateway, stdin io.Reader, stdout io.Writer, log *logrus.Logger) (*routes.Dispatcher, error) {
	sessions, err := middleware.NewSessions(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		return nil, err
	}

	users := repository.NewUsers(gw)
	svc := handlers.Services{
		Auth:    services.NewAuthService(users, log),
		Profile: services.NewProfileService(users, log),
		Menu:    services.NewMenuService(users, repository.NewItems(gw), log),
		Stores:  services.NewStoreService(repository.NewStores(gw)),
		Orders:  services.NewOrderService(users, repository.NewOrders(gw), log),
		Users:   services.NewUserAdminService(users, log),
	}

	con := console.New(stdin, stdout, cfg.Input.MaxAttempts)
	return routes.NewDispatcher(con, handlers.New(con, svc, log), sessions, log), nil
}

func greeting(w io.Writer) {
	fmt.Fprint(w, "\n\n"+
		"*******************************************************\n"+
		"              Papa's Pizzeria - User Interface         \n"+
		"*******************************************************\n\n")
}
