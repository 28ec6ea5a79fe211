package certificate_controller

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sunthewhat/certificate-automation/common/util"
	"github.com/sunthewhat/certificate-automation/internal/renderer"
	"github.com/sunthewhat/certificate-automation/internal/storage"
	"github.com/sunthewhat/certificate-automation/type/payload"
	"github.com/sunthewhat/certificate-automation/type/response"
)

func (ctrl *CertificateController) Create(c *fiber.Ctx) error {
	body := new(payload.CreateCertificatePayload)

	if err := c.BodyParser(body); err != nil {
		slog.Warn("Certificate Create body parse failed", "error", err)
		return response.SendFailed(c, "Failed to parse body")
	}

	if err := util.ValidateStruct(body); err != nil {
		msgs := util.GetValidationErrors(err)
		if len(msgs) == 0 {
			return response.SendFailed(c, "Invalid request body")
		}
		return response.SendFailed(c, msgs[0])
	}

	ctx := c.UserContext()
	if ctrl.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ctrl.timeout)
		defer cancel()
	}

	cert := renderer.Certificate{
		ID:     uuid.NewString(),
		Name:   body.Name,
		Course: body.Course,
		Date:   body.Date,
	}

	pdf, err := ctrl.renderer.Render(ctx, cert)
	if err != nil {
		slog.Error("Certificate Create render failed", "error", err, "cert_id", cert.ID)
		return response.SendError(c, "Failed to render certificate")
	}

	result, err := ctrl.uploader.Upload(ctx, pdf, body.Name, body.Course)
	if err != nil {
		slog.Error("Certificate Create upload failed", "error", err, "cert_id", cert.ID)
		if errors.Is(err, storage.ErrAuthentication) {
			return response.SendBadGateway(c, "Failed to authenticate with storage")
		}
		return response.SendBadGateway(c, "Failed to upload certificate")
	}

	if body.Email != "" && ctrl.mailer != nil {
		if err := ctrl.mailer.SendLink(body.Email, body.Name, body.Course, result.ViewLink); err != nil {
			slog.Warn("Certificate Create mail delivery failed", "error", err, "cert_id", cert.ID, "email", body.Email)
		}
	}

	slog.Info("Certificate created", "cert_id", cert.ID, "file", result.FileName, "link", result.ViewLink)

	return response.SendSuccess(c, "Certificate created", payload.CreateCertificateResult{
		ID:       cert.ID,
		FileName: result.FileName,
		ViewLink: result.ViewLink,
	})
}
