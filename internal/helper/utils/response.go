package utils

import "github.com/gofiber/fiber/v2"

// Every response carries success and message; handlers add extra keys
// (token, user, errors) through data.

func ResponseSuccess(ctx *fiber.Ctx, status int, message string, data fiber.Map) error {
	payload := fiber.Map{
		"success": true,
		"message": message,
	}
	for k, v := range data {
		payload[k] = v
	}
	return ctx.Status(status).JSON(payload)
}

func ResponseError(ctx *fiber.Ctx, status int, message string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func ResponseErrorWith(ctx *fiber.Ctx, status int, message string, extra fiber.Map) error {
	payload := fiber.Map{
		"success": false,
		"message": message,
	}
	for k, v := range extra {
		payload[k] = v
	}
	return ctx.Status(status).JSON(payload)
}
