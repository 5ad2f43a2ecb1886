package providers

import (
	"context"
	"io"
)

// StorageFolder is the logical namespace all report files are stored under.
const StorageFolder = "medical_reports"

// UploadInput carries the raw bytes and filename of an upload. No size or
// type validation happens at this layer; that is the caller's policy choice.
type UploadInput struct {
	Data     io.Reader
	FileName string
}

// StoredObject is the result of a successful upload: a stable, publicly
// dereferenceable URL and the store's opaque identifier for the object.
type StoredObject struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// StorageProvider streams bytes to the external object store. The call is
// atomic from the caller's perspective: either it returns a URL or it
// fails, with nothing to clean up.
type StorageProvider interface {
	Upload(ctx context.Context, input UploadInput) (*StoredObject, error)
}
