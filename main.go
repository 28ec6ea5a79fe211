package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sunthewhat/certificate-automation/api"
	certificate_controller "github.com/sunthewhat/certificate-automation/api/controllers/certificate"
	"github.com/sunthewhat/certificate-automation/common/config"
	"github.com/sunthewhat/certificate-automation/common/util"
	"github.com/sunthewhat/certificate-automation/internal/renderer"
	"github.com/sunthewhat/certificate-automation/internal/storage"
	"github.com/sunthewhat/certificate-automation/type/shared"
)

func main() {
	configPath := flag.String("config", "config.yml", "Path to the YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if *cfg.Environment {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	uploader, err := newUploader(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "storage", *cfg.Storage, "error", err)
		os.Exit(1)
	}

	signer, err := renderer.NewSigner(cfg.Signing, cfg.Renderer.Issuer)
	if err != nil {
		slog.Warn("Failed to initialize PDF signer, signatures will be disabled", "error", err)
	}

	certRenderer := renderer.New(*cfg.Renderer, signer)
	if cfg.Renderer.FontFile != "" {
		if err := certRenderer.LoadFont(cfg.Renderer.FontFile); err != nil {
			slog.Error("Failed to load renderer font", "font_file", cfg.Renderer.FontFile, "error", err)
			os.Exit(1)
		}
	}

	var mailer certificate_controller.LinkMailer
	if cfg.Mail != nil {
		mailer = util.NewMailer(*cfg.Mail)
	}

	ctrl := certificate_controller.NewCertificateController(
		certRenderer,
		uploader,
		mailer,
		time.Duration(*cfg.RequestTimeout)*time.Second,
	)

	cors := make([]string, 0, len(cfg.Cors))
	for _, origin := range cfg.Cors {
		if origin != nil {
			cors = append(cors, *origin)
		}
	}

	if err := api.InitFiber(api.NewApp(ctrl, cors, true), *cfg.Port); err != nil {
		os.Exit(1)
	}
}

func newUploader(cfg *shared.Config) (storage.Uploader, error) {
	if *cfg.Storage == "minio" {
		m := cfg.MinIO
		uploader, err := storage.NewMinIOUploader(storage.MinIOConfig{
			Endpoint:      m.Endpoint,
			AccessKey:     m.AccessKey,
			SecretKey:     m.SecretKey,
			Bucket:        m.Bucket,
			Folder:        m.Folder,
			Region:        m.Region,
			Secure:        m.Secure,
			PublicURL:     m.PublicURL,
			PresignExpiry: time.Duration(m.PresignExpiry) * time.Second,
		})
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := uploader.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return uploader, nil
	}

	credentials, err := os.ReadFile(cfg.Drive.CredentialFile)
	if err != nil {
		return nil, err
	}

	return storage.NewDriveUploader(storage.DriveConfig{
		Credentials:       credentials,
		FolderID:          cfg.Drive.FolderID,
		Scopes:            cfg.Drive.Scopes,
		Endpoint:          cfg.Drive.Endpoint,
		SupportsAllDrives: cfg.Drive.SupportsAllDrives,
	})
}
