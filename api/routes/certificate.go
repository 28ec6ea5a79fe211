package routes

import (
	"github.com/gofiber/fiber/v2"
	certificate_controller "github.com/sunthewhat/certificate-automation/api/controllers/certificate"
)

func SetupCertificateRoutes(router fiber.Router, ctrl *certificate_controller.CertificateController) {
	certificateGroup := router.Group("certificates")

	certificateGroup.Post("create", ctrl.Create)
}
