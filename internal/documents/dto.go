package documents

import "time"

// UploadResponse is the outward-facing result of an upload.
type UploadResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Filename    string `json:"filename"`
	DocumentID  string `json:"documentId"`
	DownloadURL string `json:"downloadUrl"`
	SizeBytes   int64  `json:"sizeBytes"`
	MimeType    string `json:"mimeType"`
	Extracted   bool   `json:"textExtracted"`
}

// DocumentResponse is the outward-facing representation of stored metadata.
type DocumentResponse struct {
	DocumentID string    `json:"documentId"`
	Title      string    `json:"title"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func toUploadResponse(r Receipt) UploadResponse {
	return UploadResponse{
		Status:      "success",
		Message:     "File uploaded successfully",
		Filename:    r.FileName,
		DocumentID:  r.DocumentID,
		DownloadURL: r.DownloadURL,
		SizeBytes:   r.SizeBytes,
		MimeType:    r.MimeType,
		Extracted:   r.TextExtracted,
	}
}

func toDocumentResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID: doc.ID,
		Title:      doc.Title,
		FileName:   doc.FileName,
		MimeType:   doc.MimeType,
		SizeBytes:  doc.SizeBytes,
		UploadedAt: doc.CreatedAt,
	}
}
