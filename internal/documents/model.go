package documents

import "time"

// Document represents the persisted metadata of an uploaded file. The bytes
// themselves live in object storage under StorageKey; the user-supplied
// filename is kept only as metadata and never used as a storage path.
type Document struct {
	ID               string
	Title            string
	FileName         string
	MimeType         string
	SizeBytes        int64
	StorageKey       string
	ExtractedTextKey string
	UploadedBy       int64
	CreatedAt        time.Time
}
