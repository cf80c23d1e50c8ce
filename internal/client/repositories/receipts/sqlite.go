package receipts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobintake/internal/client/models"
	"github.com/dmitrijs2005/jobintake/internal/common"
	"github.com/dmitrijs2005/jobintake/internal/dbx"
)

// SQLiteRepository implements Repository over a dbx.DBTX.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, rc *models.Receipt) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO receipts (id, job_id, role, email, resume_name, resume_digest, reference, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rc.ID, rc.JobID, rc.Role, rc.Email, rc.ResumeName, rc.ResumeDigest, rc.Reference, rc.SubmittedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}
	if err := dbx.ExpectRows(res, 1); err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, job_id, role, email, resume_name, resume_digest, reference, submitted_at FROM receipts`

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Receipt, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY submitted_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select receipts: %w", err)
	}
	defer rows.Close()

	var result []models.Receipt
	for rows.Next() {
		item, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) FindByJobAndDigest(ctx context.Context, jobID int64, digest string) (*models.Receipt, error) {
	row := r.db.QueryRowContext(ctx,
		selectColumns+` WHERE job_id = ? AND resume_digest = ? ORDER BY submitted_at DESC LIMIT 1`,
		jobID, digest)

	item, err := scanReceipt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM receipts`); err != nil {
		return fmt.Errorf("failed to clear receipts: %w", err)
	}
	return nil
}

func scanReceipt(s scanner) (*models.Receipt, error) {
	var item models.Receipt
	var submittedAt time.Time
	err := s.Scan(&item.ID, &item.JobID, &item.Role, &item.Email, &item.ResumeName,
		&item.ResumeDigest, &item.Reference, &submittedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan receipt: %w", err)
	}
	item.SubmittedAt = submittedAt.UTC()
	return &item, nil
}
