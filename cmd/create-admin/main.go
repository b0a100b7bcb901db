// Command create-admin provisions an ADMIN account in the timesheet database.
//
//	create-admin --email admin@example.com --name "Site Admin" --password '...'
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/service"
	"github.com/concertshift/timesheet/internal/infrastructure/db/postgres"
	"github.com/concertshift/timesheet/internal/pkg/config"
	"github.com/concertshift/timesheet/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("create-admin", pflag.ContinueOnError)
	email := flags.String("email", "", "admin email address (required)")
	name := flags.String("name", "Administrator", "display name")
	password := flags.String("password", "", "initial password, at least 8 characters (required)")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "create-admin: --email and --password are required")
		flags.PrintDefaults()
		return 2
	}

	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "create-admin", Env: cfg.Env})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxConns: 2})
	if err != nil {
		log.Error().Err(err).Msg("failed to connect postgres")
		return 1
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Error().Err(err).Msg("failed to apply schema")
		return 1
	}

	auth := service.NewAuthService(postgres.NewUserRepository(pool), cfg.JWTSecret, cfg.TokenTTL)
	user, err := auth.CreateAdmin(ctx, *name, *email, *password)
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrUserExists):
			log.Error().Str("email", *email).Msg("a user with this email already exists")
		case errors.As(err, &ve):
			log.Error().Str("details", ve.Error()).Msg("invalid admin details")
		default:
			log.Error().Err(err).Msg("failed to create admin")
		}
		return 1
	}

	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("admin created")
	return 0
}
