package middleware

import (
	"errors"

	"kanbanroom/internal/store"
	"kanbanroom/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RoomAuth me-resolve header x-user-id / x-room-code menjadi Identity.
// Token identitas dipercaya apa adanya (tanpa signature, tanpa expiry).
func RoomAuth(s *store.RoomStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("x-user-id")
		roomCode := c.Get("x-room-code")
		if userID == "" || roomCode == "" {
			logger.SecurityLogger.Warn("Missing identity headers",
				zap.String("url", c.OriginalURL()),
			)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Invalid credentials"})
		}

		ident, err := s.Resolve(roomCode, userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				logger.SecurityLogger.Warn("Unknown user in room",
					zap.String("room_code", roomCode),
					zap.String("user_id", userID),
				)
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "User not found"})
			}
			logger.SecurityLogger.Warn("Unknown room code",
				zap.String("room_code", roomCode),
			)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Invalid credentials"})
		}

		c.Locals("identity", ident)
		return c.Next()
	}
}
