package documents

import "context"

// DocumentsRepo defines persistence operations for document metadata.
type DocumentsRepo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userID int64, documentID string) (Document, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Document, error)
}
