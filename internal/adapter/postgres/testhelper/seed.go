package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed helpers insert fixture rows directly, bypassing the repositories,
// so repository tests never depend on the code they verify.

func SeedAccount(t *testing.T, pool *pgxpool.Pool, username string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO accounts (id, email, username, password_hash) VALUES ($1, $2, $3, 'x')`,
		id, username+"@example.com", username,
	)
	if err != nil {
		t.Fatalf("seed account %s: %v", username, err)
	}
	return id
}

func SeedGroup(t *testing.T, pool *pgxpool.Pool, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO groups (id, name) VALUES ($1, $2)`,
		id, name,
	)
	if err != nil {
		t.Fatalf("seed group %s: %v", name, err)
	}
	return id
}

func SeedSystemGroup(t *testing.T, pool *pgxpool.Pool, role string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO groups (id, name, system_role) VALUES ($1, $2, $2)`,
		id, role,
	)
	if err != nil {
		t.Fatalf("seed system group %s: %v", role, err)
	}
	return id
}

func SeedMembership(t *testing.T, pool *pgxpool.Pool, accountID, groupID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO account_groups (account_id, group_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		accountID, groupID,
	)
	if err != nil {
		t.Fatalf("seed membership: %v", err)
	}
}

func SeedTag(t *testing.T, pool *pgxpool.Pool, title string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO tags (id, title, color) VALUES ($1, $2, 'gray')`,
		id, title,
	)
	if err != nil {
		t.Fatalf("seed tag %s: %v", title, err)
	}
	return id
}
