package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"docmanager-backend/internal/extract"
	"docmanager-backend/internal/shared/metrics"
	"docmanager-backend/internal/shared/storage/object"
	"docmanager-backend/internal/shared/telemetry"
	"docmanager-backend/internal/shared/util"
)

// Service runs the document ingestion pipeline: stage to local disk, extract
// text best-effort, upload to object storage, persist metadata, and remove
// the staging file on every exit path.
type Service struct {
	Store         object.ObjectStore
	Repo          DocumentsRepo
	StagingDir    string
	UploadTimeout time.Duration
	PresignExpiry time.Duration
}

// Receipt is returned to the caller after a successful ingestion.
type Receipt struct {
	DocumentID    string
	FileName      string
	MimeType      string
	SizeBytes     int64
	StorageKey    string
	DownloadURL   string
	TextExtracted bool
}

// Upload ingests a single file for a user. Extraction failures never abort
// the upload; any failure after staging is wrapped as ErrIngestion and the
// staging file is removed regardless of which step failed.
func (s *Service) Upload(ctx context.Context, userID int64, fileName string, r io.Reader) (Receipt, error) {
	start := time.Now()
	metrics.IncUploadStarted()

	receipt, err := s.upload(ctx, userID, fileName, r)
	if err != nil {
		metrics.IncUploadFailed()
		return Receipt{}, err
	}
	metrics.IncUploadSucceeded()
	metrics.ObserveUploadDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	return receipt, nil
}

func (s *Service) upload(ctx context.Context, userID int64, fileName string, r io.Reader) (Receipt, error) {
	if r == nil {
		return Receipt{}, ErrMissingFile
	}
	if userID <= 0 {
		return Receipt{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}

	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// The deadline covers the whole pipeline: staging local I/O, extraction,
	// and the remote transfer. A stalled client reader aborts staging rather
	// than holding the request open.
	uploadCtx := ctx
	if s.UploadTimeout > 0 {
		var cancel context.CancelFunc
		uploadCtx, cancel = context.WithTimeout(ctx, s.UploadTimeout)
		defer cancel()
	}

	docID := uuid.NewString()
	staged, size, mimeType, err := s.stage(uploadCtx, docID, sanitized, r)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Receipt{}, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return Receipt{}, err
	}
	// The staging file never outlives this call, success or failure.
	defer func() {
		if rmErr := os.Remove(staged); rmErr != nil && !os.IsNotExist(rmErr) {
			telemetry.Error("ingest.cleanup", map[string]any{"path": staged, "error": rmErr.Error()})
		}
	}()

	if size == 0 {
		return Receipt{}, ErrEmptyFile
	}

	// Best-effort extraction: failure is recorded, never fatal. Storage must
	// not depend on whether we can parse the content.
	text, extractErr := extract.TextFromFile(uploadCtx, staged, mimeType)
	if extractErr != nil {
		telemetry.Warn("ingest.extract_failed", map[string]any{
			"document_id": docID,
			"file_name":   sanitized,
			"mime_type":   mimeType,
			"error":       extractErr.Error(),
		})
	}

	storageKey := path.Join("documents", util.HashUserKey(strconv.FormatInt(userID, 10)), docID+"_"+sanitized)

	f, err := os.Open(staged)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: open staged file: %v", ErrIngestion, err)
	}
	defer f.Close()

	if _, err := s.Store.Put(uploadCtx, storageKey, mimeType, f); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Receipt{}, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return Receipt{}, fmt.Errorf("%w: %v", ErrIngestion, err)
	}

	extractedKey := ""
	if extractErr == nil && text != "" {
		extractedKey = storageKey + ".extracted.txt"
		if _, err := s.Store.Put(uploadCtx, extractedKey, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
			telemetry.Warn("ingest.extracted_text_store_failed", map[string]any{
				"document_id": docID,
				"error":       err.Error(),
			})
			extractedKey = ""
		}
	}

	expiry := s.PresignExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}
	downloadURL, err := s.Store.PresignGet(uploadCtx, storageKey, expiry)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: presign: %v", ErrIngestion, err)
	}

	doc := Document{
		ID:               docID,
		Title:            titleFromFileName(sanitized),
		FileName:         sanitized,
		MimeType:         mimeType,
		SizeBytes:        size,
		StorageKey:       storageKey,
		ExtractedTextKey: extractedKey,
		UploadedBy:       userID,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Receipt{}, fmt.Errorf("%w: record metadata: %v", ErrIngestion, err)
	}

	telemetry.Info("ingest.uploaded", map[string]any{
		"document_id": docID,
		"user_id":     userID,
		"file_name":   sanitized,
		"size_bytes":  size,
		"extracted":   extractedKey != "",
	})

	return Receipt{
		DocumentID:    docID,
		FileName:      sanitized,
		MimeType:      mimeType,
		SizeBytes:     size,
		StorageKey:    storageKey,
		DownloadURL:   downloadURL,
		TextExtracted: extractedKey != "",
	}, nil
}

// stage writes the incoming stream to a unique local path and sniffs the
// content type from the first 512 bytes. The copy runs under the caller's
// deadline: a reader that stalls past it aborts staging instead of holding
// the request open, and the half-written file is unlinked.
func (s *Service) stage(ctx context.Context, docID, sanitized string, r io.Reader) (string, int64, string, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, "", fmt.Errorf("stage upload: %w", err)
	}
	if err := os.MkdirAll(s.StagingDir, 0o755); err != nil {
		return "", 0, "", fmt.Errorf("%w: staging dir: %v", ErrIngestion, err)
	}

	staged := filepath.Join(s.StagingDir, docID+"_"+sanitized)

	type stageResult struct {
		size     int64
		mimeType string
		err      error
	}
	done := make(chan stageResult, 1)
	go func() {
		size, mimeType, err := copyToStaging(staged, r)
		done <- stageResult{size: size, mimeType: mimeType, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return "", 0, "", res.err
		}
		return staged, res.size, res.mimeType, nil
	case <-ctx.Done():
		// The copy goroutine may still hold the file open; unlinking now
		// guarantees nothing remains on disk once it closes the handle.
		if err := os.Remove(staged); err != nil && !os.IsNotExist(err) {
			telemetry.Error("ingest.cleanup", map[string]any{"path": staged, "error": err.Error()})
		}
		return "", 0, "", fmt.Errorf("stage upload: %w", ctx.Err())
	}
}

func copyToStaging(staged string, r io.Reader) (int64, string, error) {
	f, err := os.OpenFile(staged, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return 0, "", fmt.Errorf("%w: create staging file: %v", ErrIngestion, err)
	}

	var sniff [512]byte
	n, readErr := io.ReadFull(r, sniff[:])
	if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
		f.Close()
		os.Remove(staged)
		return 0, "", fmt.Errorf("%w: read upload: %v", ErrIngestion, readErr)
	}
	mimeType := http.DetectContentType(sniff[:n])

	size := int64(0)
	if n > 0 {
		if _, err := f.Write(sniff[:n]); err != nil {
			f.Close()
			os.Remove(staged)
			return 0, "", fmt.Errorf("%w: write staging file: %v", ErrIngestion, err)
		}
		size += int64(n)
	}

	written, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(staged)
		return 0, "", fmt.Errorf("%w: write staging file: %v", ErrIngestion, err)
	}
	size += written

	if err := f.Close(); err != nil {
		os.Remove(staged)
		return 0, "", fmt.Errorf("%w: close staging file: %v", ErrIngestion, err)
	}
	return size, mimeType, nil
}

// GetByID fetches a document's metadata for a user.
func (s *Service) GetByID(ctx context.Context, userID int64, documentID string) (Document, error) {
	if documentID == "" {
		return Document{}, fmt.Errorf("%w: document id required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// List returns a user's documents, newest first.
func (s *Service) List(ctx context.Context, userID int64, limit, offset int) ([]Document, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// DownloadURL returns a fresh presigned URL for a stored document.
func (s *Service) DownloadURL(ctx context.Context, userID int64, documentID string) (string, error) {
	doc, err := s.GetByID(ctx, userID, documentID)
	if err != nil {
		return "", err
	}
	expiry := s.PresignExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}
	url, err := s.Store.PresignGet(ctx, doc.StorageKey, expiry)
	if err != nil {
		return "", fmt.Errorf("%w: presign: %v", ErrIngestion, err)
	}
	return url, nil
}

func titleFromFileName(name string) string {
	title := strings.TrimSuffix(name, filepath.Ext(name))
	if title == "" {
		return name
	}
	return title
}
