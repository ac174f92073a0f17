//go:build e2e

package dbtest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"hummane-api/internal/domain/company"
	"hummane-api/internal/domain/user"
)

// ResetDB truncates the document store between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "TRUNCATE TABLE documents"); err != nil {
		return fmt.Errorf("failed to truncate documents: %w", err)
	}
	return nil
}

func insertDocument(pool *pgxpool.Pool, collection, id string, doc any) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", collection, err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`,
		collection, id, string(data))
	if err != nil {
		return fmt.Errorf("failed to insert %s document: %w", collection, err)
	}
	return nil
}

// SeedUser inserts a user document directly, bypassing the API.
func SeedUser(pool *pgxpool.Pool, email, name string, companyID *uuid.UUID) (*user.User, error) {
	u := &user.User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		CompanyID: companyID,
		CreatedAt: time.Now().UTC(),
	}
	if err := insertDocument(pool, "users", u.ID.String(), u); err != nil {
		return nil, err
	}
	return u, nil
}

// SeedCompany inserts a company document directly, bypassing the API.
func SeedCompany(pool *pgxpool.Pool, name string, ownerID uuid.UUID) (*company.Company, error) {
	c := &company.Company{
		ID:        uuid.New(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
	if err := insertDocument(pool, "companies", c.ID.String(), c); err != nil {
		return nil, err
	}
	return c, nil
}
