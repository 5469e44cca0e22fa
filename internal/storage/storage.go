// Package storage keeps uploaded listing photos.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"campdirectory/internal/config"
)

const (
	DriverFileSystem = "filesystem"
	DriverMinIO      = "minio"
)

type Storage interface {
	// Upload stores file under name, replacing any previous object with that name.
	Upload(ctx context.Context, name string, file io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, name string) error
}

// URLSigner is implemented by drivers whose objects are not served by the API itself.
type URLSigner interface {
	PresignedURL(ctx context.Context, name string, expiry time.Duration) (string, error)
}

// New builds the driver selected by cfg.Storage.Driver.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Driver {
	case DriverFileSystem, "":
		return NewFileSystem(cfg.Storage.UploadPath)
	case DriverMinIO:
		return NewMinIOClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
