package media

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploadAPI struct {
	uploadParams  uploader.UploadParams
	uploadFile    interface{}
	uploadResult  *uploader.UploadResult
	uploadErr     error
	destroyed     []string
	destroyResult *uploader.DestroyResult
}

func (f *fakeUploadAPI) Upload(_ context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.uploadFile = file
	f.uploadParams = params
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.uploadResult, nil
}

func (f *fakeUploadAPI) Destroy(_ context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.destroyed = append(f.destroyed, params.PublicID)
	return f.destroyResult, nil
}

func TestUpload_ReturnsSecureURL(t *testing.T) {
	fake := &fakeUploadAPI{uploadResult: &uploader.UploadResult{
		PublicID:  "posts/alice/1700000000000",
		SecureURL: "https://res.cloudinary.com/demo/image/upload/posts/alice/1700000000000.jpg",
	}}
	store := &CloudinaryStore{api: fake}

	image, err := store.Upload(context.Background(), "data:image/png;base64,iVBORw0KGgo=", "posts/alice/1700000000000")
	require.NoError(t, err)

	assert.Equal(t, "posts/alice/1700000000000", image.PublicID)
	assert.Equal(t, fake.uploadResult.SecureURL, image.URL)
	assert.Equal(t, "posts/alice/1700000000000", fake.uploadParams.PublicID)
	assert.Equal(t, imageTransformation, fake.uploadParams.Transformation)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", fake.uploadFile)
}

func TestUpload_Failures(t *testing.T) {
	_, err := (&CloudinaryStore{api: &fakeUploadAPI{}}).Upload(context.Background(), "", "k")
	assert.Error(t, err)

	_, err = (&CloudinaryStore{api: &fakeUploadAPI{uploadErr: errors.New("network")}}).Upload(context.Background(), "data:x", "k")
	assert.Error(t, err)

	rejected := &fakeUploadAPI{uploadResult: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}}
	_, err = (&CloudinaryStore{api: rejected}).Upload(context.Background(), "data:x", "k")
	assert.ErrorContains(t, err, "Invalid image file")
}

func TestDelete(t *testing.T) {
	fake := &fakeUploadAPI{destroyResult: &uploader.DestroyResult{Result: "ok"}}
	store := &CloudinaryStore{api: fake}

	require.NoError(t, store.Delete(context.Background(), "posts/alice/1"))
	assert.Equal(t, []string{"posts/alice/1"}, fake.destroyed)

	fake.destroyResult = &uploader.DestroyResult{Result: "not found"}
	assert.NoError(t, store.Delete(context.Background(), "posts/alice/2"))

	fake.destroyResult = &uploader.DestroyResult{Result: "error"}
	assert.Error(t, store.Delete(context.Background(), "posts/alice/3"))
}

func TestDelete_EmptyPublicIDIsNoop(t *testing.T) {
	fake := &fakeUploadAPI{}
	require.NoError(t, (&CloudinaryStore{api: fake}).Delete(context.Background(), ""))
	assert.Empty(t, fake.destroyed)
}
