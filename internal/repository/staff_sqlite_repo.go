package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rakaarfi/roster-system-be/internal/models"
	zlog "github.com/rs/zerolog/log"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type staffSQLiteRepo struct {
	db *sql.DB
}

func NewStaffSQLiteRepository(db *sql.DB) StaffRepository {
	return &staffSQLiteRepo{db: db}
}

func isSQLiteUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(se.Error(), "UNIQUE")
	}
	return false
}

func (r *staffSQLiteRepo) CreateStaff(ctx context.Context, profile *models.StaffProfile, passwordHash string) error {
	raw, err := EncodeStaffDocument(profile)
	if err != nil {
		return fmt.Errorf("error encoding staff %s: %w", profile.ID, err)
	}
	query := `INSERT INTO staff_documents (id, role, email, password_hash, data, revision) VALUES (?, ?, ?, ?, ?, 1)`
	if _, err := r.db.ExecContext(ctx, query, profile.ID, profile.Role, profile.Email, passwordHash, string(raw)); err != nil {
		if isSQLiteUniqueViolation(err) {
			zlog.Warn().Str("staff_id", profile.ID).Msg("Staff id or email already taken")
			return fmt.Errorf("%w: %s", ErrDuplicate, profile.ID)
		}
		zlog.Error().Err(err).Str("staff_id", profile.ID).Msg("Error creating staff")
		return fmt.Errorf("error creating staff: %w", err)
	}
	profile.Revision = 1
	zlog.Info().Str("staff_id", profile.ID).Msg("Staff created successfully")
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteStaff(row rowScanner, id string) (*models.StaffProfile, string, error) {
	var (
		raw      string
		revision int64
		hash     string
	)
	if err := row.Scan(&raw, &revision, &hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, "", fmt.Errorf("error reading staff %s: %w", id, err)
	}
	p, err := DecodeStaffDocument(id, []byte(raw))
	if err != nil {
		return nil, "", err
	}
	p.Revision = revision
	return p, hash, nil
}

func (r *staffSQLiteRepo) GetStaff(ctx context.Context, id string) (*models.StaffProfile, error) {
	query := `SELECT data, revision, password_hash FROM staff_documents WHERE id = ?`
	p, _, err := scanSQLiteStaff(r.db.QueryRowContext(ctx, query, id), id)
	if err != nil {
		zlog.Warn().Err(err).Str("staff_id", id).Msg("Error getting staff")
		return nil, err
	}
	return p, nil
}

func (r *staffSQLiteRepo) QueryStaffByRole(ctx context.Context, q StaffQuery, page, limit int) ([]models.StaffProfile, int, error) {
	var (
		conds []string
		args  []any
	)
	if q.Role != "" {
		conds = append(conds, "role = ? COLLATE NOCASE")
		args = append(args, q.Role)
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		like := "%" + term + "%"
		conds = append(conds, "(json_extract(data, '$.name') LIKE ? OR email LIKE ? OR role LIKE ?)")
		args = append(args, like, like, like)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff_documents`+where, args...).Scan(&total); err != nil {
		zlog.Error().Err(err).Msg("Error counting staff")
		return nil, 0, fmt.Errorf("error counting staff: %w", err)
	}

	query := `SELECT id, data, revision FROM staff_documents` + where + ` ORDER BY id LIMIT ? OFFSET ?`
	sqlLimit := limit
	if sqlLimit <= 0 {
		sqlLimit = -1
	}
	rows, err := r.db.QueryContext(ctx, query, append(args, sqlLimit, offsetFor(page, limit))...)
	if err != nil {
		zlog.Error().Err(err).Msg("Error querying staff")
		return nil, 0, fmt.Errorf("error querying staff: %w", err)
	}
	defer rows.Close()

	out := []models.StaffProfile{}
	for rows.Next() {
		var (
			id, raw  string
			revision int64
		)
		if err := rows.Scan(&id, &raw, &revision); err != nil {
			zlog.Warn().Err(err).Msg("Error scanning staff row")
			continue
		}
		p, err := DecodeStaffDocument(id, []byte(raw))
		if err != nil {
			zlog.Warn().Err(err).Str("staff_id", id).Msg("Skipping unreadable staff document")
			continue
		}
		p.Revision = revision
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		zlog.Error().Err(err).Msg("Error iterating staff rows")
		return nil, 0, fmt.Errorf("error iterating staff rows: %w", err)
	}
	return out, total, nil
}

func (r *staffSQLiteRepo) UpdateStaff(ctx context.Context, id string, patch StaffPatch) (*models.StaffProfile, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	p, _, err := scanSQLiteStaff(tx.QueryRowContext(ctx, `SELECT data, revision, password_hash FROM staff_documents WHERE id = ?`, id), id)
	if err != nil {
		return nil, err
	}
	if patch.empty() {
		return p, nil
	}
	prevRevision := p.Revision
	if err := applyPatch(p, patch); err != nil {
		zlog.Warn().Err(err).Str("staff_id", id).Msg("Staff update rejected")
		return nil, err
	}
	raw, err := EncodeStaffDocument(p)
	if err != nil {
		return nil, fmt.Errorf("error encoding staff %s: %w", id, err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE staff_documents SET data = ?, revision = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ','now') WHERE id = ? AND revision = ?`,
		string(raw), p.Revision, id, prevRevision)
	if err != nil {
		zlog.Error().Err(err).Str("staff_id", id).Msg("Error updating staff")
		return nil, fmt.Errorf("error updating staff %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: staff %s", ErrRevisionConflict, id)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing staff %s: %w", id, err)
	}
	zlog.Debug().Str("staff_id", id).Int64("revision", p.Revision).Msg("Staff updated")
	return p, nil
}

func (r *staffSQLiteRepo) GetCredentials(ctx context.Context, id string) (*models.Credentials, error) {
	p, hash, err := scanSQLiteStaff(r.db.QueryRowContext(ctx, `SELECT data, revision, password_hash FROM staff_documents WHERE id = ?`, id), id)
	if err != nil {
		return nil, err
	}
	return &models.Credentials{
		Principal:    models.Principal{UserID: p.ID, Name: p.Name, Role: p.Role, Email: p.Email},
		PasswordHash: hash,
		Active:       p.Active,
	}, nil
}
