package routes

import (
	"github.com/gofiber/fiber/v2"
	certificate_controller "github.com/sunthewhat/certificate-automation/api/controllers/certificate"
)

func Init(router fiber.Router, certificateCtrl *certificate_controller.CertificateController) {
	SetupCertificateRoutes(router, certificateCtrl)
}
