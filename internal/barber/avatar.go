package barber

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/storage"
)

const (
	MaxAvatarSize = 5 << 20

	thumbnailSize = 200
)

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// Avatars manages barber profile pictures.
type Avatars interface {
	UploadAvatar(ctx context.Context, id string, header *multipart.FileHeader) (*Barber, error)
	// OpenAvatar returns the stored picture and its content type.
	OpenAvatar(ctx context.Context, id string, thumbnail bool) (io.ReadCloser, string, error)
}

func (d *directory) UploadAvatar(ctx context.Context, id string, header *multipart.FileHeader) (*Barber, error) {
	if header.Size > MaxAvatarSize {
		return nil, ErrAvatarTooLarge
	}

	b, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, MaxAvatarSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	if len(content) > MaxAvatarSize {
		return nil, ErrAvatarTooLarge
	}

	// The content type is sniffed from the bytes, not taken from the upload header.
	ext, ok := avatarExtensions[http.DetectContentType(content)]
	if !ok {
		return nil, ErrUnsupportedAvatar
	}

	fileID := uuid.New().String()
	shard := fileID[:2]
	avatarPath := fmt.Sprintf("avatars/%s/%s%s", shard, fileID, ext)

	if err := d.storage.Save(ctx, avatarPath, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to save avatar to storage: %w", err)
	}

	var thumbnailPath *string
	thumb, err := d.imgProc.SquareThumbnail(bytes.NewReader(content), thumbnailSize)
	if err != nil {
		d.log.Warn("avatar thumbnail generation failed", zap.String("barber_id", id), zap.Error(err))
	} else {
		tPath := fmt.Sprintf("avatars/%s/%s_thumb.jpg", shard, fileID)
		if err := d.storage.Save(ctx, tPath, thumb); err != nil {
			d.log.Warn("avatar thumbnail save failed", zap.String("barber_id", id), zap.Error(err))
		} else {
			thumbnailPath = &tPath
		}
	}

	if err := d.repo.UpdateAvatar(ctx, id, &avatarPath, thumbnailPath); err != nil {
		d.removeAvatarFiles(ctx, &avatarPath, thumbnailPath)
		return nil, err
	}

	d.removeAvatarFiles(ctx, b.AvatarPath, b.ThumbnailPath)
	b.AvatarPath = &avatarPath
	b.ThumbnailPath = thumbnailPath
	return b, nil
}

// OpenAvatar falls back to the full picture when no thumbnail was generated.
func (d *directory) OpenAvatar(ctx context.Context, id string, thumbnail bool) (io.ReadCloser, string, error) {
	b, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if b.AvatarPath == nil {
		return nil, "", ErrAvatarNotFound
	}

	path := *b.AvatarPath
	if thumbnail && b.ThumbnailPath != nil {
		path = *b.ThumbnailPath
	}

	stream, err := d.storage.Get(ctx, path)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", ErrAvatarNotFound.WithErr(err)
	}
	if err != nil {
		return nil, "", err
	}
	return stream, contentTypeFor(path), nil
}

func (d *directory) removeAvatarFiles(ctx context.Context, paths ...*string) {
	for _, p := range paths {
		if p == nil {
			continue
		}
		if err := d.storage.Delete(ctx, *p); err != nil {
			d.log.Warn("failed to delete avatar file", zap.String("path", *p), zap.Error(err))
		}
	}
}

func contentTypeFor(path string) string {
	for ct, ext := range avatarExtensions {
		if strings.HasSuffix(path, ext) {
			return ct
		}
	}
	return "application/octet-stream"
}
