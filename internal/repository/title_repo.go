package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rating_of_titles/internal/models"
)

type TitleRepository struct {
	db *sql.DB
}

func NewTitleRepository(db *sql.DB) *TitleRepository {
	return &TitleRepository{db: db}
}

var _ Titles = (*TitleRepository)(nil)

const (
	// AVG skips NULL ratings; a group of only unrated rows yields NULL.
	selectAggregatedSQL = `SELECT title_name, title_type, AVG(rating) AS avg_rating
		FROM titles GROUP BY title_name ORDER BY title_name`

	// Both owner predicates are ANDed on purpose: a stale denormalized
	// user_name yields no rows rather than someone else's.
	selectByOwnerSQL = `SELECT id, title_name, rating, title_type, title_status, user_id, user_name
		FROM titles WHERE user_id = ? AND user_name = ?`

	selectOwnedSQL = `SELECT id, title_name, rating, title_type, title_status, user_id, user_name
		FROM titles WHERE id = ? AND user_id = ?`

	insertTitleSQL = `INSERT INTO titles (title_name, rating, title_type, title_status, user_id, user_name)
		VALUES (?, ?, ?, ?, ?, ?)`

	deleteTitleSQL = `DELETE FROM titles WHERE id = ?`
)

// ListAggregated groups every title row by name with the mean rating.
func (r *TitleRepository) ListAggregated(ctx context.Context) ([]models.TitleAggregate, error) {
	rows, err := r.db.QueryContext(ctx, selectAggregatedSQL)
	if err != nil {
		return nil, fmt.Errorf("select aggregated titles: %w", err)
	}
	defer rows.Close()

	out := make([]models.TitleAggregate, 0, 16)
	for rows.Next() {
		var (
			agg models.TitleAggregate
			avg sql.NullFloat64
		)
		if err := rows.Scan(&agg.TitleName, &agg.TitleType, &avg); err != nil {
			return nil, fmt.Errorf("scan aggregated title: %w", err)
		}
		if avg.Valid {
			v := avg.Float64
			agg.AvgRating = &v
		}
		out = append(out, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select aggregated titles: %w", err)
	}
	return out, nil
}

// ListByOwner returns all titles whose user_id AND user_name both match.
func (r *TitleRepository) ListByOwner(ctx context.Context, userID int, userName string) ([]models.Title, error) {
	rows, err := r.db.QueryContext(ctx, selectByOwnerSQL, userID, userName)
	if err != nil {
		return nil, fmt.Errorf("select titles of user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Title, 0, 16)
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan title of user %d: %w", userID, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select titles of user %d: %w", userID, err)
	}
	return out, nil
}

// GetOwned fetches one title by id and owner in the same predicate, so a
// title owned by someone else reads as models.ErrTitleNotFound.
func (r *TitleRepository) GetOwned(ctx context.Context, titleID, userID int) (*models.Title, error) {
	row := r.db.QueryRowContext(ctx, selectOwnedSQL, titleID, userID)
	t, err := scanTitle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTitleNotFound
		}
		return nil, fmt.Errorf("select title %d: %w", titleID, err)
	}
	return &t, nil
}

// Create inserts a title row transactionally and returns its ID.
func (r *TitleRepository) Create(ctx context.Context, t models.Title) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create title %q: %w", t.TitleName, err)
	}

	res, err := tx.Exec(insertTitleSQL,
		t.TitleName, ratingArg(t.Rating), t.TitleType, t.TitleStatus, t.UserID, t.UserName)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("insert title %q: %w", t.TitleName, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("get last insert id for title %q: %w", t.TitleName, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create title %q: %w", t.TitleName, err)
	}
	return int(lastID), nil
}

// Update applies only the assignments present in the patch, transactionally.
// Callers must have ownership-checked the title via GetOwned first.
func (r *TitleRepository) Update(ctx context.Context, titleID int, fields models.TitlePatch) error {
	sets, args := buildTitleSet(fields)
	if len(sets) == 0 {
		return nil // nothing to touch
	}
	args = append(args, titleID)
	q := "UPDATE titles SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update title %d: %w", titleID, err)
	}
	if _, err := tx.Exec(q, args...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("update title %d: %w", titleID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update title %d: %w", titleID, err)
	}
	return nil
}

// Delete removes a title row transactionally.
// Callers must have ownership-checked the title via GetOwned first.
func (r *TitleRepository) Delete(ctx context.Context, titleID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete title %d: %w", titleID, err)
	}
	if _, err := tx.Exec(deleteTitleSQL, titleID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete title %d: %w", titleID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete title %d: %w", titleID, err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTitle(s scanner) (models.Title, error) {
	var (
		t      models.Title
		rating sql.NullInt64
	)
	if err := s.Scan(&t.ID, &t.TitleName, &rating, &t.TitleType, &t.TitleStatus, &t.UserID, &t.UserName); err != nil {
		return models.Title{}, err
	}
	if rating.Valid {
		v := int(rating.Int64)
		t.Rating = &v
	}
	return t, nil
}

func ratingArg(rating *int) any {
	if rating == nil {
		return nil
	}
	return *rating
}

func buildTitleSet(p models.TitlePatch) (sets []string, args []any) {
	if p.TitleName != nil {
		sets, args = append(sets, "title_name = ?"), append(args, *p.TitleName)
	}
	if p.Rating != nil {
		sets, args = append(sets, "rating = ?"), append(args, *p.Rating)
	}
	if p.TitleType != nil {
		sets, args = append(sets, "title_type = ?"), append(args, *p.TitleType)
	}
	if p.TitleStatus != nil {
		sets, args = append(sets, "title_status = ?"), append(args, *p.TitleStatus)
	}
	if p.UserName != nil {
		sets, args = append(sets, "user_name = ?"), append(args, *p.UserName)
	}
	return sets, args
}
