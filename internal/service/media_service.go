package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/postpilothq/postpilot/internal/models"
	"github.com/postpilothq/postpilot/internal/repository"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const maxMediaBytes = 100 * 1024 * 1024

type MediaUploader interface {
	Upload(ctx context.Context, key string, file []byte, contentType string) error
	PublicURL(key string) string
}

type MediaService interface {
	UploadMedia(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.MediaAsset, error)
}

type mediaService struct {
	ma repository.MediaAssetRepository
	r2 MediaUploader
}

func NewMediaService(ma repository.MediaAssetRepository, r2 MediaUploader) MediaService {
	return &mediaService{
		ma: ma,
		r2: r2,
	}
}

var allowedMediaTypes = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "mp4": {}, "mov": {},
}

// UploadMedia sniffs the real file type from content, pushes the bytes
// to object storage and records the asset row.
func (s *mediaService) UploadMedia(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*models.MediaAsset, error) {
	if fileHeader == nil {
		err := errors.New("no file provided")
		slog.Info(err.Error())
		return nil, err
	}
	if fileHeader.Size > maxMediaBytes {
		err := errors.New("file exceeds the maximum upload size")
		slog.Info(err.Error())
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	kind, err := filetype.Match(data)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if _, ok := allowedMediaTypes[kind.Extension]; !ok {
		err = fmt.Errorf("unsupported file type %q", kind.Extension)
		slog.Info(err.Error())
		return nil, err
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Error(err.Error())
		return nil, err
	}
	key := fmt.Sprintf("media/%d/%s.%s", userID, id, kind.Extension)

	if err := s.r2.Upload(ctx, key, data, kind.MIME.Value); err != nil {
		return nil, fmt.Errorf("error uploading media: %w", err)
	}

	asset := &models.MediaAsset{
		UserID:   userID,
		FileName: fileHeader.Filename,
		FileType: kind.MIME.Value,
		FileSize: fileHeader.Size,
		FileURL:  s.r2.PublicURL(key),
	}

	assetID, err := s.ma.Create(ctx, asset)
	if err != nil {
		return nil, fmt.Errorf("error saving media asset: %w", err)
	}
	asset.ID = assetID

	return asset, nil
}
