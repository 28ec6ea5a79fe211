package certificate_controller

import (
	"context"
	"time"

	"github.com/sunthewhat/certificate-automation/internal/renderer"
	"github.com/sunthewhat/certificate-automation/internal/storage"
)

type Renderer interface {
	Render(ctx context.Context, cert renderer.Certificate) ([]byte, error)
}

type LinkMailer interface {
	SendLink(to string, name string, course string, link string) error
}

// CertificateController handles certificate-related HTTP requests
type CertificateController struct {
	renderer Renderer
	uploader storage.Uploader
	mailer   LinkMailer
	timeout  time.Duration
}

// NewCertificateController creates a new certificate controller with injected dependencies.
// mailer may be nil when link delivery by mail is not configured.
func NewCertificateController(renderer Renderer, uploader storage.Uploader, mailer LinkMailer, timeout time.Duration) *CertificateController {
	return &CertificateController{
		renderer: renderer,
		uploader: uploader,
		mailer:   mailer,
		timeout:  timeout,
	}
}
