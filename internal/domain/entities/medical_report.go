package entities

import "time"

// MedicalReport is the metadata record for an uploaded report file.
// Records are created once at upload completion and never mutated;
// the file itself lives in external object storage at DownloadURL.
type MedicalReport struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	FileName    string    `json:"file_name" db:"file_name"`
	FileType    string    `json:"file_type" db:"file_type"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	DownloadURL string    `json:"download_url" db:"download_url"`
	Description string    `json:"description" db:"description"`
	UploadedAt  time.Time `json:"uploaded_at" db:"uploaded_at"`
}
