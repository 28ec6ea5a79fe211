package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Authenticator exchanges a credential for an authorized HTTP client.
type Authenticator func(ctx context.Context) (*http.Client, error)

type DriveConfig struct {
	// Credentials is the service account key JSON (client_email, private_key, token_uri).
	Credentials       []byte
	FolderID          string
	Scopes            []string
	Endpoint          string
	SupportsAllDrives bool
}

type DriveUploader struct {
	cfg          DriveConfig
	authenticate Authenticator
}

type DriveOption func(*DriveUploader)

// WithAuthenticator replaces the service account exchange, mostly for tests.
func WithAuthenticator(auth Authenticator) DriveOption {
	return func(u *DriveUploader) {
		u.authenticate = auth
	}
}

func NewDriveUploader(cfg DriveConfig, opts ...DriveOption) (*DriveUploader, error) {
	if cfg.FolderID == "" {
		return nil, errors.New("storage: drive folder id is required")
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{drive.DriveFileScope}
	}

	u := &DriveUploader{cfg: cfg}
	for _, opt := range opts {
		opt(u)
	}

	if u.authenticate == nil {
		if len(cfg.Credentials) == 0 {
			return nil, errors.New("storage: drive credentials are required")
		}
		u.authenticate = ServiceAccountAuthenticator(cfg.Credentials, cfg.Scopes...)
	}

	return u, nil
}

// ServiceAccountAuthenticator signs a JWT with the service account key and
// fetches an access token before returning, so a rejected key fails here.
func ServiceAccountAuthenticator(credentials []byte, scopes ...string) Authenticator {
	return func(ctx context.Context) (*http.Client, error) {
		jwtConfig, err := google.JWTConfigFromJSON(credentials, scopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse service account key: %w", err)
		}

		tokenSource := jwtConfig.TokenSource(ctx)
		if _, err := tokenSource.Token(); err != nil {
			return nil, fmt.Errorf("failed to fetch access token: %w", err)
		}

		return oauth2.NewClient(ctx, tokenSource), nil
	}
}

// Upload authenticates from scratch on every call and creates a new file
// under the configured folder.
func (u *DriveUploader) Upload(ctx context.Context, content []byte, name string, course string) (*UploadResult, error) {
	if len(content) == 0 {
		return nil, ErrEmptyContent
	}

	record := NewFileRecord(content, name, course, u.cfg.FolderID)

	client, err := u.authenticate(ctx)
	if err != nil {
		slog.Error("Drive Upload authorization failed", "error", err, "file", record.DisplayName)
		return nil, authError(err)
	}

	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if u.cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(u.cfg.Endpoint))
	}

	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		slog.Error("Drive Upload NewService failed", "error", err)
		return nil, uploadError(err)
	}

	metadata := &drive.File{
		Name:     record.DisplayName,
		Parents:  []string{record.ParentFolderID},
		MimeType: record.MimeType,
	}

	created, err := srv.Files.Create(metadata).
		Media(bytes.NewReader(record.Content), googleapi.ContentType(record.MimeType)).
		Fields("id", "webViewLink").
		SupportsAllDrives(u.cfg.SupportsAllDrives).
		Context(ctx).
		Do()
	if err != nil {
		slog.Error("Drive Upload files.create failed", "error", err, "file", record.DisplayName)
		return nil, uploadError(err)
	}

	if created.WebViewLink == "" {
		slog.Error("Drive Upload response has no webViewLink", "file_id", created.Id)
		return nil, uploadError(errors.New("response is missing webViewLink"))
	}

	slog.Info("File uploaded to Drive", "file_id", created.Id, "file", record.DisplayName, "link", created.WebViewLink)

	return &UploadResult{
		ID:       created.Id,
		FileName: record.DisplayName,
		ViewLink: created.WebViewLink,
	}, nil
}
