package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn" // Untuk cek error code
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rakaarfi/roster-system-be/internal/models"
	zlog "github.com/rs/zerolog/log"
)

const pgUniqueViolation = "23505"

type staffPgRepo struct {
	db *pgxpool.Pool
}

func NewStaffPgRepository(db *pgxpool.Pool) StaffRepository {
	return &staffPgRepo{db: db}
}

func (r *staffPgRepo) CreateStaff(ctx context.Context, profile *models.StaffProfile, passwordHash string) error {
	raw, err := EncodeStaffDocument(profile)
	if err != nil {
		return fmt.Errorf("error encoding staff %s: %w", profile.ID, err)
	}
	query := `INSERT INTO staff_documents (id, role, email, password_hash, data, revision) VALUES ($1, $2, $3, $4, $5, 1)`
	if _, err := r.db.Exec(ctx, query, profile.ID, profile.Role, profile.Email, passwordHash, raw); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			zlog.Warn().Str("staff_id", profile.ID).Str("constraint", pgErr.ConstraintName).Msg("Staff id or email already taken")
			return fmt.Errorf("%w: %s", ErrDuplicate, profile.ID)
		}
		zlog.Error().Err(err).Str("staff_id", profile.ID).Msg("Error creating staff")
		return fmt.Errorf("error creating staff: %w", err)
	}
	profile.Revision = 1
	zlog.Info().Str("staff_id", profile.ID).Msg("Staff created successfully")
	return nil
}

func scanPgStaff(row pgx.Row, id string) (*models.StaffProfile, string, error) {
	var (
		raw      []byte
		revision int64
		hash     string
	)
	if err := row.Scan(&raw, &revision, &hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, "", fmt.Errorf("error reading staff %s: %w", id, err)
	}
	p, err := DecodeStaffDocument(id, raw)
	if err != nil {
		return nil, "", err
	}
	p.Revision = revision
	return p, hash, nil
}

func (r *staffPgRepo) GetStaff(ctx context.Context, id string) (*models.StaffProfile, error) {
	query := `SELECT data, revision, password_hash FROM staff_documents WHERE id = $1`
	p, _, err := scanPgStaff(r.db.QueryRow(ctx, query, id), id)
	if err != nil {
		zlog.Warn().Err(err).Str("staff_id", id).Msg("Error getting staff")
		return nil, err
	}
	return p, nil
}

func (r *staffPgRepo) QueryStaffByRole(ctx context.Context, q StaffQuery, page, limit int) ([]models.StaffProfile, int, error) {
	var (
		conds []string
		args  []any
	)
	if q.Role != "" {
		args = append(args, q.Role)
		conds = append(conds, "lower(role) = lower($"+strconv.Itoa(len(args))+")")
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		args = append(args, "%"+term+"%")
		n := "$" + strconv.Itoa(len(args))
		conds = append(conds, "(data->>'name' ILIKE "+n+" OR email ILIKE "+n+" OR role ILIKE "+n+")")
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM staff_documents`+where, args...).Scan(&total); err != nil {
		zlog.Error().Err(err).Msg("Error counting staff")
		return nil, 0, fmt.Errorf("error counting staff: %w", err)
	}

	// LIMIT NULL berarti tanpa batas
	var sqlLimit *int
	if limit > 0 {
		sqlLimit = &limit
	}
	args = append(args, sqlLimit, offsetFor(page, limit))
	query := fmt.Sprintf(`SELECT id, data, revision FROM staff_documents%s ORDER BY id LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zlog.Error().Err(err).Msg("Error querying staff")
		return nil, 0, fmt.Errorf("error querying staff: %w", err)
	}
	defer rows.Close()

	out := []models.StaffProfile{}
	for rows.Next() {
		var (
			id       string
			raw      []byte
			revision int64
		)
		if err := rows.Scan(&id, &raw, &revision); err != nil {
			zlog.Warn().Err(err).Msg("Error scanning staff row") // Log error but continue processing other rows
			continue
		}
		p, err := DecodeStaffDocument(id, raw)
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

	zlog.Debug().Int("record_count", len(out)).Int("total", total).Msg("Staff retrieved successfully")
	return out, total, nil
}

// UpdateStaff locks the row, applies the patch in Go and writes the whole
// document back in the same transaction.
func (r *staffPgRepo) UpdateStaff(ctx context.Context, id string, patch StaffPatch) (*models.StaffProfile, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT data, revision, password_hash FROM staff_documents WHERE id = $1 FOR UPDATE`
	p, _, err := scanPgStaff(tx.QueryRow(ctx, query, id), id)
	if err != nil {
		return nil, err
	}
	if patch.empty() {
		return p, nil
	}
	if err := applyPatch(p, patch); err != nil {
		zlog.Warn().Err(err).Str("staff_id", id).Msg("Staff update rejected")
		return nil, err
	}
	raw, err := EncodeStaffDocument(p)
	if err != nil {
		return nil, fmt.Errorf("error encoding staff %s: %w", id, err)
	}

	update := `UPDATE staff_documents SET data = $1, revision = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`
	if _, err := tx.Exec(ctx, update, raw, p.Revision, id); err != nil {
		zlog.Error().Err(err).Str("staff_id", id).Msg("Error updating staff")
		return nil, fmt.Errorf("error updating staff %s: %w", id, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error committing staff %s: %w", id, err)
	}
	zlog.Debug().Str("staff_id", id).Int64("revision", p.Revision).Msg("Staff updated")
	return p, nil
}

func (r *staffPgRepo) GetCredentials(ctx context.Context, id string) (*models.Credentials, error) {
	query := `SELECT data, revision, password_hash FROM staff_documents WHERE id = $1`
	p, hash, err := scanPgStaff(r.db.QueryRow(ctx, query, id), id)
	if err != nil {
		return nil, err
	}
	return &models.Credentials{
		Principal:    models.Principal{UserID: p.ID, Name: p.Name, Role: p.Role, Email: p.Email},
		PasswordHash: hash,
		Active:       p.Active,
	}, nil
}
