package sysconfig

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	"github.com/nishigaki-sys/school-booking-v2/pkg/dbmetrics"
	"github.com/nishigaki-sys/school-booking-v2/pkg/psqlbuilder"
)

// Document keys. One row per key, each holding one JSONB document.
const (
	keySharedContents = "shared_contents"
	keyIPAllowlist    = "ip_allowlist"
)

// Repository stores system-wide configuration documents: the shared content
// catalog venues import from, and the admin IP allow-list.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSharedContents returns the shared content catalog. A missing document
// reads as an empty catalog.
func (r *Repository) GetSharedContents(ctx context.Context) ([]domain.ContentItem, error) {
	var contents []domain.ContentItem
	if err := r.getDoc(ctx, keySharedContents, &contents); err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return []domain.ContentItem{}, nil
		}
		return nil, err
	}
	if contents == nil {
		contents = []domain.ContentItem{}
	}
	return contents, nil
}

// SaveSharedContents replaces the shared content catalog.
func (r *Repository) SaveSharedContents(ctx context.Context, contents []domain.ContentItem) error {
	if contents == nil {
		contents = []domain.ContentItem{}
	}
	return r.saveDoc(ctx, keySharedContents, contents)
}

// GetIPAllowlist returns the admin IP allow-list. A missing document reads
// as an empty list, which the middleware treats as allow-all.
func (r *Repository) GetIPAllowlist(ctx context.Context) ([]string, error) {
	var ips []string
	if err := r.getDoc(ctx, keyIPAllowlist, &ips); err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	if ips == nil {
		ips = []string{}
	}
	return ips, nil
}

// SaveIPAllowlist replaces the admin IP allow-list.
func (r *Repository) SaveIPAllowlist(ctx context.Context, ips []string) error {
	if ips == nil {
		ips = []string{}
	}
	return r.saveDoc(ctx, keyIPAllowlist, ips)
}

func (r *Repository) getDoc(ctx context.Context, key string, out interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("doc").
		From("sys_config").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: getDoc - build select: %v", ErrBuildQuery, err)
	}

	var raw []byte
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrDocumentNotFound, key)
		}
		return fmt.Errorf("%w: getDoc - execute select: %v", ErrExecQuery, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: getDoc - %s: %v", ErrDecodeDocument, key, err)
	}
	return nil
}

func (r *Repository) saveDoc(ctx context.Context, key string, doc interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: saveDoc - %s: %v", ErrEncodeDocument, key, err)
	}

	query, args, err := psqlbuilder.Insert("sys_config").
		Columns("key", "doc").
		Values(key, raw).
		Suffix("ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: saveDoc - build insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: saveDoc - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}
