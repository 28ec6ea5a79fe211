package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func Recover() fiber.Handler {
	return recover.New()
}

// Cors allows the configured form origins to call the API.
func Cors(origins []string) fiber.Handler {
	allowOrigins := "*"
	if len(origins) > 0 {
		allowOrigins = strings.Join(origins, ",")
	}

	return cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	})
}
