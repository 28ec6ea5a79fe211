package response

import "github.com/gofiber/fiber/v2"

func SendSuccess(c *fiber.Ctx, msg string, data ...any) error {
	return c.Status(fiber.StatusOK).JSON(Success(msg, data...))
}

func SendFailed(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Error(msg))
}

func SendError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(Error(msg))
}

// SendBadGateway reports a failure of an upstream dependency such as the storage API.
func SendBadGateway(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadGateway).JSON(Error(msg))
}
