// Command seed bootstraps the administrator system group and the first
// administrator account. Safe to re-run: an existing system group is
// reused and a taken email or username fails cleanly.
//
// Flags:
//
//	--email      administrator email (required)
//	--username   administrator username (required)
//	--password   administrator password (required, min 8 chars)
//	--first-name optional first name
//	--last-name  optional last name
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/shiftlog/shiftlog-backend/internal/adapter/postgres"
	accountrepo "github.com/shiftlog/shiftlog-backend/internal/adapter/postgres/account"
	grouprepo "github.com/shiftlog/shiftlog-backend/internal/adapter/postgres/group"
	"github.com/shiftlog/shiftlog-backend/internal/app"
	"github.com/shiftlog/shiftlog-backend/internal/config"
	accountsvc "github.com/shiftlog/shiftlog-backend/internal/service/account"
)

func main() {
	email := flag.String("email", "", "administrator email")
	username := flag.String("username", "", "administrator username")
	password := flag.String("password", "", "administrator password")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	flag.Parse()

	if *email == "" || *username == "" || *password == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := accountsvc.NewService(
		logger,
		accountrepo.New(pool),
		grouprepo.New(pool),
		postgres.NewTxManager(pool),
	)

	admin, err := svc.BootstrapAdministrator(ctx, accountsvc.RegisterInput{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Username:  *username,
		Password:  *password,
	})
	if err != nil {
		logger.Error("bootstrap administrator", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Administrator %s created (id %s).\n", admin.Username, admin.ID)
}
