package docstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hummane-api/internal/infra"
)

const pgUniqueViolation = "23505"

// PostgresStore keeps every collection in a single documents table
// (collection, id, data jsonb). Merge writes use jsonb concatenation, and
// per-collection uniqueness (users.email) is enforced by a partial unique
// index in the schema.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Collection(name string) Collection {
	return &postgresCollection{pool: s.pool, name: name}
}

type postgresCollection struct {
	pool *pgxpool.Pool
	name string
}

func (c *postgresCollection) Doc(id string) Document {
	return &postgresDocument{pool: c.pool, collection: c.name, id: id}
}

func (c *postgresCollection) All(ctx context.Context) ([]json.RawMessage, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT data FROM documents WHERE collection = $1`, c.name)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query collection "+c.name, err)
	}
	return collectDocs(rows, c.name)
}

func (c *postgresCollection) Where(ctx context.Context, field, value string) ([]json.RawMessage, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND data->>$2 = $3`,
		c.name, field, value)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query collection "+c.name, err)
	}
	return collectDocs(rows, c.name)
}

func collectDocs(rows pgx.Rows, collection string) ([]json.RawMessage, error) {
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, infra.WrapRepoErr("failed to scan document from "+collection, err)
		}
		docs = append(docs, json.RawMessage(data))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read documents from "+collection, err)
	}

	return docs, nil
}

type postgresDocument struct {
	pool       *pgxpool.Pool
	collection string
	id         string
}

func (d *postgresDocument) Get(ctx context.Context) (json.RawMessage, error) {
	var data []byte
	err := d.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		d.collection, d.id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("document not found in "+d.collection, err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get document from "+d.collection, err)
	}
	return json.RawMessage(data), nil
}

func (d *postgresDocument) Set(ctx context.Context, doc any, opts ...SetOption) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return infra.WrapRepoErr("failed to encode document for "+d.collection, err)
	}

	query := `INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)
	          ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data`
	if applyOptions(opts).merge {
		query = `INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)
		         ON CONFLICT (collection, id) DO UPDATE SET data = documents.data || EXCLUDED.data`
	}

	if _, err := d.pool.Exec(ctx, query, d.collection, d.id, string(data)); err != nil {
		return infra.WrapRepoErr("failed to set document in "+d.collection, err)
	}
	return nil
}

func (d *postgresDocument) Create(ctx context.Context, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return infra.WrapRepoErr("failed to encode document for "+d.collection, err)
	}

	_, err = d.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`,
		d.collection, d.id, string(data))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return infra.WrapRepoErr("document already exists in "+d.collection, err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create document in "+d.collection, err)
	}
	return nil
}

func (d *postgresDocument) Delete(ctx context.Context) error {
	if _, err := d.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		d.collection, d.id); err != nil {
		return infra.WrapRepoErr("failed to delete document from "+d.collection, err)
	}
	return nil
}
