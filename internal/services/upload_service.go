package services

import (
	"context"
	"errors"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/justsurfingit/superio-server/internal/apperr"
)

// ErrUploadDisabled is returned when no media host credentials are configured.
var ErrUploadDisabled = errors.New("media upload is not configured")

// MediaUploader is the slice of the cloudinary upload API the relay needs.
// *uploader.API satisfies it.
type MediaUploader interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// UploadService forwards company logos to the media host under a fixed
// preset and format whitelist.
type UploadService struct {
	Uploader       MediaUploader
	Preset         string
	AllowedFormats []string
}

func NewUploadService(u MediaUploader, preset string, formats []string) *UploadService {
	return &UploadService{
		Uploader:       u,
		Preset:         preset,
		AllowedFormats: formats,
	}
}

// UploadLogo sends file (a data URI or remote URL) and returns the provider's
// result. Rejections the provider reports in the body become errors.
func (s *UploadService) UploadLogo(ctx context.Context, file string) (*uploader.UploadResult, error) {
	if s.Uploader == nil {
		return nil, apperr.NewUploadFailure(ErrUploadDisabled)
	}

	res, err := s.Uploader.Upload(ctx, file, uploader.UploadParams{
		UploadPreset:   s.Preset,
		AllowedFormats: api.CldAPIArray(s.AllowedFormats),
	})
	if err != nil {
		return nil, apperr.NewUploadFailure(err)
	}
	// the client reports rejections in the body with a nil error
	if res == nil {
		return nil, apperr.NewUploadFailure(errors.New("empty upload response"))
	}
	if res.Error.Message != "" {
		return nil, apperr.NewUploadFailure(errors.New(res.Error.Message))
	}
	return res, nil
}

// Descriptor is the provider's response body as it was received, falling back
// to the decoded result when the raw body was not kept.
func Descriptor(res *uploader.UploadResult) interface{} {
	if res.Response != nil {
		return res.Response
	}
	return res
}
