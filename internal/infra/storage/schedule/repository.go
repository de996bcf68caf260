package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/nishigaki-sys/school-booking-v2/internal/domain"
	"github.com/nishigaki-sys/school-booking-v2/internal/infra/storage/notify"
	"github.com/nishigaki-sys/school-booking-v2/pkg/dbmetrics"
	"github.com/nishigaki-sys/school-booking-v2/pkg/psqlbuilder"
	"github.com/nishigaki-sys/school-booking-v2/pkg/types"
)

// Repository stores one JSONB schedule document per venue and notifies the
// schedule change channel on every write. Whole-document Replace is
// last-writer-wins; slot writes go through MergeDate, which touches only the
// edited date key so concurrent edits to different dates never clobber each
// other.
type Repository struct {
	db DBExecutor
}

// NewRepository returns a schedule document repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get reads a venue's schedule document. Uses the transaction carried in ctx
// when present, so the serializable slot-write path re-reads inside its tx.
func (r *Repository) Get(ctx context.Context, venueID string) (*domain.ScheduleDocument, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("doc").
		From("schedules").
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select: %v", ErrBuildQuery, err)
	}

	var raw []byte
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: venue %s", ErrScheduleNotFound, venueID)
		}
		return nil, fmt.Errorf("%w: Get - execute select: %v", ErrExecQuery, err)
	}

	var doc domain.ScheduleDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: venue %s: %v", ErrDecodeDocument, venueID, err)
	}
	doc.Normalize()
	return &doc, nil
}

// Replace writes the whole document, creating it when absent.
func (r *Repository) Replace(ctx context.Context, doc *domain.ScheduleDocument) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: Replace - venue %s: %v", ErrEncodeDocument, doc.VenueID, err)
	}

	query, args, err := psqlbuilder.Insert("schedules").
		Columns("venue_id", "doc").
		Values(doc.VenueID, raw).
		Suffix("ON CONFLICT (venue_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Replace - build upsert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Replace - execute upsert: %v", ErrExecQuery, err)
	}

	return notify.Emit(ctx, executor, notify.ChannelSchedules, doc.VenueID)
}

// MergeDate replaces only the given date's slot list inside the document.
// An empty slots list removes the date key entirely.
func (r *Repository) MergeDate(ctx context.Context, venueID string, date types.DateString, slots []domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var query string
	var args []interface{}

	if len(slots) == 0 {
		query = `UPDATE schedules SET doc = doc #- ARRAY['schedule', $2], updated_at = now() WHERE venue_id = $1`
		args = []interface{}{venueID, string(date)}
	} else {
		raw, err := json.Marshal(slots)
		if err != nil {
			return fmt.Errorf("%w: MergeDate - venue %s date %s: %v", ErrEncodeDocument, venueID, date, err)
		}
		query = `UPDATE schedules SET doc = jsonb_set(doc, ARRAY['schedule', $2], $3::jsonb, true), updated_at = now() WHERE venue_id = $1`
		args = []interface{}{venueID, string(date), raw}
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MergeDate - execute update: %v", ErrExecQuery, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: venue %s", ErrScheduleNotFound, venueID)
	}

	return notify.Emit(ctx, executor, notify.ChannelSchedules, venueID)
}

// Delete removes a venue's schedule document. Deleting an absent document is
// not an error; venue deletion is best-effort cascade.
func (r *Repository) Delete(ctx context.Context, venueID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedules").
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return notify.Emit(ctx, executor, notify.ChannelSchedules, venueID)
}
