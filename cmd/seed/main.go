package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/ischaojie/soulapi/config"
	"github.com/ischaojie/soulapi/pkg/helpers"
)

// Seeds the default superuser from SUPERUSER_* env vars. Safe to re-run:
// an existing account keeps its password.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.SuperuserEmail == "" || cfg.SuperuserPassword == "" {
		log.Fatal("SUPERUSER_EMAIL and SUPERUSER_PASSWORD must be set")
	}

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword(cfg.SuperuserPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (email, full_name, hashed_password, is_active, is_superuser, is_confirmed)
		VALUES ($1, $2, $3, true, true, true)
		ON CONFLICT (email) DO UPDATE SET
			is_active = true,
			is_superuser = true,
			is_confirmed = true,
			updated_at = now()
		RETURNING id
	`, cfg.SuperuserEmail, cfg.SuperuserName, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed superuser: %v", err)
	}
	fmt.Printf("seeded superuser: id=%d email=%s\n", id, cfg.SuperuserEmail)
}
