package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"github.com/rahulserver/task-management-backend/internal/core/domain"
	"github.com/rahulserver/task-management-backend/internal/core/ports"
)

const imageTransformation = "q_auto:good/f_auto"

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryStore keeps post images in Cloudinary. Payloads are data URIs or
// remote URLs, both accepted by the upload API as-is.
type CloudinaryStore struct {
	api uploadAPI
}

var _ ports.MediaStore = (*CloudinaryStore)(nil)

func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStore{api: &cld.Upload}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, payload, key string) (domain.Image, error) {
	if payload == "" {
		return domain.Image{}, errors.New("empty image payload")
	}

	result, err := s.api.Upload(ctx, payload, uploader.UploadParams{
		PublicID:       key,
		ResourceType:   "image",
		Overwrite:      api.Bool(true),
		Transformation: imageTransformation,
	})
	if err != nil {
		return domain.Image{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if result.Error.Message != "" {
		return domain.Image{}, fmt.Errorf("cloudinary upload: %s", result.Error.Message)
	}

	zap.L().Debug("image uploaded", zap.String("public_id", result.PublicID), zap.Int("bytes", result.Bytes))
	return domain.Image{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	result, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", result.Error.Message)
	}
	// "not found" means the image is already gone.
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: unexpected result %q", result.Result)
	}
	return nil
}
