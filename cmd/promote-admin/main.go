package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dimitrije/futbol-api/internal/config"
	"github.com/dimitrije/futbol-api/internal/database"
	"github.com/dimitrije/futbol-api/internal/roster"
	"github.com/dimitrije/futbol-api/internal/services"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: promote-admin <email>")
		os.Exit(1)
	}

	email := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	user, err := services.NewUserService(db).PromoteToAdmin(ctx, email)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		log.Fatalf("No user found with email: %s", email)
	case errors.Is(err, roster.ErrAdminCannotPlay):
		log.Fatalf("%s belongs to a team; they must leave it before becoming an admin", email)
	case err != nil:
		log.Fatalf("Failed to promote user: %v", err)
	}

	fmt.Printf("Successfully promoted %s (%s) to admin\n", user.Email, user.Name)
}
