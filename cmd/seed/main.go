package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/nazarov/footballmanager/config"
	"github.com/nazarov/footballmanager/pkg/helpers"
)

// Seeds the base roles and a demo player account for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	var userRoleID, adminRoleID int64
	if err := db.QueryRow(`
		INSERT INTO roles (name) VALUES ('ROLE_USER')
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING role_id
	`).Scan(&userRoleID); err != nil {
		log.Fatalf("failed to upsert ROLE_USER: %v", err)
	}
	if err := db.QueryRow(`
		INSERT INTO roles (name) VALUES ('ROLE_ADMIN')
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING role_id
	`).Scan(&adminRoleID); err != nil {
		log.Fatalf("failed to upsert ROLE_ADMIN: %v", err)
	}
	fmt.Printf("roles ensured: ROLE_USER=%d ROLE_ADMIN=%d\n", userRoleID, adminRoleID)

	email := "demo@footballmanager.local"
	password := "password123"
	hash, err := helpers.BcryptHasher{}.Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID int64
	if err := db.QueryRow(`
		INSERT INTO users (name, email, password_hash, playing_position)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING user_id
	`, "Demo Player", email, hash, "Midfielder").Scan(&userID); err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}

	for _, roleID := range []int64{userRoleID, adminRoleID} {
		if _, err := db.Exec(`
			INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)
			ON CONFLICT (user_id, role_id) DO NOTHING
		`, userID, roleID); err != nil {
			log.Fatalf("failed to assign role %d: %v", roleID, err)
		}
	}
	fmt.Printf("seeded user: id=%d email=%s password=%s\n", userID, email, password)
}
