package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/affordablebilliards/billiards_api/internal/utils"
)

// Postgres keeps every collection in a single JSONB table:
//
//	documents(collection, id, data, created_at, updated_at)
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres wraps a connected database. The documents table is created by
// the migrations in /migrations.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

type documentRow struct {
	Data []byte `db:"data"`
}

func (p *Postgres) Name() string { return "postgres" }

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) Create(ctx context.Context, collection string, data Document) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	doc := Normalize(data)
	if doc == nil {
		doc = Document{}
	}
	doc[FieldID] = id
	doc[FieldCreatedAt] = utils.FormatISO(now)
	doc[FieldUpdatedAt] = utils.FormatISO(now)

	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, $4, $4)
	`, collection, id, string(payload), now)
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", collection, err)
	}
	return id, nil
}

func (p *Postgres) Get(ctx context.Context, collection, id string) (Document, error) {
	var row documentRow
	err := p.db.GetContext(ctx, &row, `
		SELECT data FROM documents WHERE collection = $1 AND id = $2
	`, collection, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return decodeRow(row)
}

func (p *Postgres) Update(ctx context.Context, collection, id string, patch Document) error {
	return updateOne(ctx, p.db, collection, id, patch)
}

func (p *Postgres) Delete(ctx context.Context, collection, id string) error {
	res, err := p.db.ExecContext(ctx, `
		DELETE FROM documents WHERE collection = $1 AND id = $2
	`, collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return affectedOne(res)
}

// List filters with JSONB containment, which the GIN index on data serves.
func (p *Postgres) List(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	var (
		rows []documentRow
		err  error
	)
	if len(filters) == 0 {
		err = p.db.SelectContext(ctx, &rows, `
			SELECT data FROM documents WHERE collection = $1 ORDER BY created_at DESC
		`, collection)
	} else {
		cond := make(map[string]interface{}, len(filters))
		for _, f := range filters {
			cond[f.Field] = f.Value
		}
		var payload []byte
		if payload, err = json.Marshal(Normalize(cond)); err != nil {
			return nil, fmt.Errorf("encode filters: %w", err)
		}
		err = p.db.SelectContext(ctx, &rows, `
			SELECT data FROM documents
			WHERE collection = $1 AND data @> $2::jsonb
			ORDER BY created_at DESC
		`, collection, string(payload))
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	out := make([]Document, 0, len(rows))
	for _, row := range rows {
		doc, err := decodeRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (p *Postgres) UpdateMany(ctx context.Context, collection string, patches map[string]Document) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for id, patch := range patches {
		if err := updateOne(ctx, tx, collection, id, patch); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch update %s: %w", collection, err)
	}
	return nil
}

func updateOne(ctx context.Context, db sqlx.ExecerContext, collection, id string, patch Document) error {
	now := time.Now().UTC()
	doc := Normalize(patch)
	if doc == nil {
		doc = Document{}
	}
	delete(doc, FieldID)
	delete(doc, FieldCreatedAt)
	doc[FieldUpdatedAt] = utils.FormatISO(now)

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode patch: %w", err)
	}
	res, err := db.ExecContext(ctx, `
		UPDATE documents SET data = data || $3::jsonb, updated_at = $4
		WHERE collection = $1 AND id = $2
	`, collection, id, string(payload), now)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return affectedOne(res)
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeRow(row documentRow) (Document, error) {
	var doc Document
	if err := json.Unmarshal(row.Data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}
