package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	certificate_controller "github.com/sunthewhat/certificate-automation/api/controllers/certificate"
	"github.com/sunthewhat/certificate-automation/api/handler"
	"github.com/sunthewhat/certificate-automation/api/middleware"
	"github.com/sunthewhat/certificate-automation/api/routes"
)

// NewApp wires middleware, routes and the not-found fallback.
func NewApp(certificateCtrl *certificate_controller.CertificateController, cors []string, accessLog bool) *fiber.App {
	cfg := fiber.Config{
		AppName:       "certificate-automation api",
		ErrorHandler:  handler.HandleError,
		Prefork:       false,
		StrictRouting: true,
		Network:       fiber.NetworkTCP,
	}
	app := fiber.New(cfg)

	if accessLog {
		app.Use(logger.New())
	}
	app.Use(middleware.Recover())
	app.Use(middleware.Cors(cors))

	routes.Init(app, certificateCtrl)

	app.Use(handler.HandleNotFound)

	return app
}

func InitFiber(app *fiber.App, port string) error {
	slog.Info("Starting server", "port", port)
	if err := app.Listen(port); err != nil {
		slog.Error("Failed to start server", "error", err)
		return err
	}
	return nil
}
