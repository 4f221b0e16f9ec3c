package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo implements DocumentsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document metadata row.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    title,
    file_name,
    mime_type,
    size_bytes,
    storage_key,
    extracted_text_key,
    uploaded_by,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	var extractedKey sql.NullString
	if doc.ExtractedTextKey != "" {
		extractedKey = sql.NullString{String: doc.ExtractedTextKey, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.Title,
		doc.FileName,
		doc.MimeType,
		doc.SizeBytes,
		doc.StorageKey,
		extractedKey,
		doc.UploadedBy,
		doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID fetches a document by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID int64, documentID string) (Document, error) {
	const query = `
SELECT id, title, file_name, mime_type, size_bytes, storage_key, extracted_text_key, uploaded_by, created_at
FROM documents
WHERE uploaded_by = $1 AND id = $2
LIMIT 1`

	var doc Document
	var mimeType sql.NullString
	var sizeBytes sql.NullInt64
	var extractedKey sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID, documentID).Scan(
		&doc.ID,
		&doc.Title,
		&doc.FileName,
		&mimeType,
		&sizeBytes,
		&doc.StorageKey,
		&extractedKey,
		&doc.UploadedBy,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("select document: %w", err)
	}
	if mimeType.Valid {
		doc.MimeType = mimeType.String
	}
	if sizeBytes.Valid {
		doc.SizeBytes = sizeBytes.Int64
	}
	if extractedKey.Valid {
		doc.ExtractedTextKey = extractedKey.String
	}
	return doc, nil
}

// ListByUser lists documents ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, title, file_name, mime_type, size_bytes, storage_key, extracted_text_key, uploaded_by, created_at
FROM documents
WHERE uploaded_by = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var doc Document
		var mimeType sql.NullString
		var sizeBytes sql.NullInt64
		var extractedKey sql.NullString
		if err := rows.Scan(
			&doc.ID,
			&doc.Title,
			&doc.FileName,
			&mimeType,
			&sizeBytes,
			&doc.StorageKey,
			&extractedKey,
			&doc.UploadedBy,
			&doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		if mimeType.Valid {
			doc.MimeType = mimeType.String
		}
		if sizeBytes.Valid {
			doc.SizeBytes = sizeBytes.Int64
		}
		if extractedKey.Valid {
			doc.ExtractedTextKey = extractedKey.String
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

var _ DocumentsRepo = (*PGRepo)(nil)
