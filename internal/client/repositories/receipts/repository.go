// Package receipts persists local records of accepted applications. They
// back the history command and the duplicate-submission warning.
package receipts

import (
	"context"

	"github.com/dmitrijs2005/jobintake/internal/client/models"
)

type Repository interface {
	Insert(ctx context.Context, r *models.Receipt) error
	// List returns receipts, newest first.
	List(ctx context.Context) ([]models.Receipt, error)
	// FindByJobAndDigest returns the latest receipt for the same job and
	// resume content, or common.ErrorNotFound.
	FindByJobAndDigest(ctx context.Context, jobID int64, digest string) (*models.Receipt, error)
	Clear(ctx context.Context) error
}
