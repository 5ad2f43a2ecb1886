package storage

import (
	"context"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
	apperrors "github.com/arogyamitra/SwasthyaSahayak/backend/pkg/errors"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryAdapter stores uploaded files in Cloudinary.
type CloudinaryAdapter struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryAdapter creates a Cloudinary-backed storage provider.
func NewCloudinaryAdapter(cloudName, apiKey, apiSecret string) (providers.StorageProvider, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to initialize cloudinary client", err)
	}
	return &CloudinaryAdapter{cld: cld}, nil
}

// Upload sends the file to Cloudinary and returns its public URL.
// Resource type detection is delegated to the provider so images and
// PDFs land under the same folder without branching here.
func (a *CloudinaryAdapter) Upload(ctx context.Context, input providers.UploadInput) (*providers.StoredObject, error) {
	result, err := a.cld.Upload.Upload(ctx, input.Data, uploader.UploadParams{
		Folder:       providers.StorageFolder,
		ResourceType: "auto",
	})
	if err != nil {
		return nil, apperrors.NewUploadError("file upload failed", err)
	}

	return &providers.StoredObject{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
	}, nil
}
