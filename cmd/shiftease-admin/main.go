package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"shiftease/internal/auth"
	"shiftease/internal/config"
	"shiftease/internal/lib/logger/handlers/slogpretty"
	"shiftease/internal/lib/logger/sl"
	"shiftease/internal/models"
	"shiftease/internal/storage/postgres"
)

type options struct {
	email     string
	password  string
	firstName string
	lastName  string
	role      string
}

func main() {
	var opts options

	flag.StringVar(&opts.email, "email", "", "account email (required)")
	flag.StringVar(&opts.password, "password", os.Getenv("SHIFTEASE_ADMIN_PASSWORD"), "password for a new account; defaults to $SHIFTEASE_ADMIN_PASSWORD")
	flag.StringVar(&opts.firstName, "first-name", "", "first name for a new account")
	flag.StringVar(&opts.lastName, "last-name", "", "last name for a new account")
	flag.StringVar(&opts.role, "role", string(models.RoleAdmin), "role to grant: admin or user")
	flag.Parse()

	log := slog.New(slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: slog.LevelInfo},
	}.NewPrettyHandler(os.Stderr))

	if err := opts.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.MustLoad()
	if cfg.Storage.Type != config.StoragePostgres {
		log.Error("accounts can only be managed on postgres storage", slog.String("storage", cfg.Storage.Type))
		os.Exit(1)
	}

	store, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := auth.EnsureAccount(ctx, store, opts.account())
	if err != nil {
		log.Error("failed to set up account", sl.Err(err), slog.String("email", opts.email))
		os.Exit(1)
	}

	if created {
		log.Info("account created", slog.String("email", opts.email), slog.String("role", opts.role))
		return
	}

	log.Info("role updated", slog.String("email", opts.email), slog.String("role", opts.role))
}

func (o options) validate() error {
	if strings.TrimSpace(o.email) == "" {
		return errors.New("-email is required")
	}
	if !models.Role(o.role).IsValid() {
		return fmt.Errorf("unknown role %q", o.role)
	}
	return nil
}

func (o options) account() auth.Account {
	return auth.Account{
		Email:     o.email,
		Password:  o.password,
		FirstName: o.firstName,
		LastName:  o.lastName,
		Role:      models.Role(o.role),
	}
}
