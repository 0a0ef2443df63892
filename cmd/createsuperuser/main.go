// Package main создаёт суперпользователя из командной строки.
//
// Использование:
//
//	CONFIG_PATH=config/local.yaml createsuperuser -email admin@example.com
//
// Если -password не задан, пароль запрашивается в терминале дважды.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/user-api/internal/config"
	"github.com/magabrotheeeer/user-api/internal/lib/email"
	"github.com/magabrotheeeer/user-api/internal/lib/logger"
	"github.com/magabrotheeeer/user-api/internal/lib/sl"
	"github.com/magabrotheeeer/user-api/internal/lib/validation"
	"github.com/magabrotheeeer/user-api/internal/migrations"
	"github.com/magabrotheeeer/user-api/internal/models"
	"github.com/magabrotheeeer/user-api/internal/services/accounts"
	"github.com/magabrotheeeer/user-api/internal/storage"
)

var (
	errEmailTaken   = errors.New("that email is already taken")
	errInvalidEmail = errors.New("enter a valid email address")
)

type emailChecker interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

func main() {
	emailFlag := flag.String("email", "", "email суперпользователя")
	passwordFlag := flag.String("password", "", "пароль; если пуст, запрашивается в терминале")
	flag.Parse()

	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		log.Error("failed to connect to storage", sl.Err(err))
		os.Exit(1)
	}
	defer db.Close()

	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		log.Error("failed to apply migrations", sl.Err(err))
		os.Exit(1)
	}

	user, err := run(ctx, db, accounts.NewService(db, log), bufio.NewReader(os.Stdin), os.Stdout, *emailFlag, *passwordFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Info("superuser created", slog.String("uid", user.UUID), slog.String("email", user.Email))
	fmt.Fprintln(os.Stdout, "Superuser created successfully.")
}

type superuserCreator interface {
	CreateSuperuser(ctx context.Context, email, password string) (*models.User, error)
}

// run собирает email и пароль, проверяет их и создаёт суперпользователя.
func run(ctx context.Context, store emailChecker, creator superuserCreator, in *bufio.Reader, out io.Writer, emailAddr, rawPassword string) (*models.User, error) {
	const op = "createsuperuser.run"
	validate := validation.New()

	var err error
	if emailAddr == "" {
		emailAddr, err = promptLine(in, "Email: ", out)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if err = validate.Var(emailAddr, "required,email"); err != nil {
		return nil, errInvalidEmail
	}

	exists, err := store.ExistsByEmail(ctx, email.Normalize(emailAddr))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil, errEmailTaken
	}

	if rawPassword == "" {
		rawPassword, err = promptPassword(out)
		if err != nil {
			return nil, err
		}
	}
	if len(rawPassword) < accounts.MinPasswordLength {
		return nil, fmt.Errorf("this password is too short, it must contain at least %d characters", accounts.MinPasswordLength)
	}

	user, err := creator.CreateSuperuser(ctx, emailAddr, rawPassword)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return nil, errEmailTaken
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
