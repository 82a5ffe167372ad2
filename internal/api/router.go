package api

import (
	"smartassist/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func SetupRouter(
	chatHandler *handlers.ChatHandler,
	docHandler *handlers.DocumentHandler,
	bookingHandler *handlers.BookingHandler,
	annHandler *handlers.AnnouncementHandler,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	app.Post("/chat", chatHandler.Chat)
	app.Post("/documents", docHandler.UploadDocument)

	bookings := app.Group("/bookings")
	bookings.Post("/confirm", bookingHandler.ConfirmBooking)
	bookings.Get("", bookingHandler.ListBookings)
	bookings.Patch("/:id", bookingHandler.UpdateBooking)
	bookings.Get("/:id/action", bookingHandler.BookingAction)

	announcements := app.Group("/announcements")
	announcements.Post("", annHandler.CreateAnnouncement)
	announcements.Get("", annHandler.ListAnnouncements)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return app
}
