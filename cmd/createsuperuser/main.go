package main

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"recipe-box/internal/config"
	"recipe-box/internal/repository/sqlite"
	"recipe-box/internal/service"
)

// Provisions a staff+superuser account against the configured database.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	email := flag.String("email", "", "account email (required)")
	password := flag.String("password", "", "account password (required)")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	accountRepo := sqlite.NewAccountRepository(db)
	if err := accountRepo.Init(ctx); err != nil {
		logger.Fatalf("init account repository: %v", err)
	}

	accountService := service.NewAccountService(accountRepo)
	account, err := accountService.CreateSuperuser(ctx, *email, *password, *firstName, *lastName)
	if err != nil {
		logger.Fatalf("create superuser: %v", err)
	}

	logger.Infof("superuser %s created (id %d)", account.Email, account.ID)
}
