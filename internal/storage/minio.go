package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	// Folder is the key prefix that plays the role of the parent folder.
	Folder string
	Region string
	Secure bool
	// PublicURL overrides the scheme and host of returned links.
	PublicURL string
	// PresignExpiry, when set, returns presigned GET links instead of public ones.
	PresignExpiry time.Duration
}

type MinIOUploader struct {
	cfg    MinIOConfig
	client *minio.Client
}

func NewMinIOUploader(cfg MinIOConfig) (*MinIOUploader, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, errors.New("storage: MinIO configuration is incomplete")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	return &MinIOUploader{cfg: cfg, client: client}, nil
}

// EnsureBucket creates the configured bucket when it does not exist yet.
func (u *MinIOUploader) EnsureBucket(ctx context.Context) error {
	exists, err := u.client.BucketExists(ctx, u.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := u.client.MakeBucket(ctx, u.cfg.Bucket, minio.MakeBucketOptions{Region: u.cfg.Region}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	slog.Info("MinIO bucket created", "bucket", u.cfg.Bucket)
	return nil
}

// ObjectName places every upload under a fresh id so that identical
// requests never overwrite each other.
func (u *MinIOUploader) ObjectName(fileName string) string {
	return path.Join(u.cfg.Folder, uuid.NewString(), fileName)
}

func (u *MinIOUploader) Upload(ctx context.Context, content []byte, name string, course string) (*UploadResult, error) {
	if len(content) == 0 {
		return nil, ErrEmptyContent
	}

	record := NewFileRecord(content, name, course, u.cfg.Folder)
	objectName := u.ObjectName(record.DisplayName)

	_, err := u.client.PutObject(ctx, u.cfg.Bucket, objectName,
		bytes.NewReader(record.Content),
		int64(len(record.Content)),
		minio.PutObjectOptions{ContentType: record.MimeType},
	)
	if err != nil {
		slog.Error("MinIO Upload PutObject failed", "error", err, "bucket", u.cfg.Bucket, "object", objectName)
		if isAccessError(err) {
			return nil, authError(err)
		}
		return nil, uploadError(err)
	}

	link, err := u.viewLink(ctx, objectName)
	if err != nil {
		slog.Error("MinIO Upload link generation failed", "error", err, "object", objectName)
		return nil, uploadError(err)
	}

	slog.Info("File uploaded to MinIO", "bucket", u.cfg.Bucket, "object", objectName, "link", link)

	return &UploadResult{
		ID:       objectName,
		FileName: record.DisplayName,
		ViewLink: link,
	}, nil
}

func (u *MinIOUploader) viewLink(ctx context.Context, objectName string) (string, error) {
	if u.cfg.PresignExpiry > 0 {
		signed, err := u.client.PresignedGetObject(ctx, u.cfg.Bucket, objectName, u.cfg.PresignExpiry, url.Values{})
		if err != nil {
			return "", err
		}
		return signed.String(), nil
	}

	base := u.cfg.PublicURL
	if base == "" {
		scheme := "http"
		if u.cfg.Secure {
			scheme = "https"
		}
		base = scheme + "://" + u.cfg.Endpoint
	}

	parsed, err := url.Parse(strings.TrimSuffix(base, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid public url %q: %w", base, err)
	}
	parsed.Path = path.Join("/", parsed.Path, u.cfg.Bucket, objectName)
	return parsed.String(), nil
}

func isAccessError(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return true
	}
	return false
}
