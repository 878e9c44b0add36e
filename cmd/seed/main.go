package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/threadline/storefront/config"
	"github.com/threadline/storefront/internal/domain/permission"
	"github.com/threadline/storefront/pkg/helpers"
)

// Seeds a local database with an admin account and a couple of catalog items.
// Intended for development only.

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@example.com"
	password := "changeme123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	perms := permission.NewSet(
		permission.Admin,
		permission.User,
		permission.ItemCreate,
		permission.ItemDelete,
		permission.PermissionUpdate,
	)

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, permissions)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET permissions = EXCLUDED.permissions
		RETURNING id
	`, email, hash, "Admin", perms.Strings()).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", adminID, email, password)

	items := []struct {
		title       string
		description string
		price       int64
	}{
		{"Canvas Tote", "Heavy cotton tote with reinforced handles", 3500},
		{"Enamel Mug", "12oz camp-style enamel mug", 1800},
		{"Wool Beanie", "Merino wool beanie, one size", 2900},
	}
	for _, it := range items {
		var itemID string
		err = db.QueryRow(`
			INSERT INTO items (title, description, price, user_id)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (SELECT 1 FROM items WHERE title = $1)
			RETURNING id
		`, it.title, it.description, it.price, adminID).Scan(&itemID)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			log.Fatalf("failed to seed item %q: %v", it.title, err)
		}
		fmt.Printf("seeded item: id=%s title=%q price=%d\n", itemID, it.title, it.price)
	}
}
