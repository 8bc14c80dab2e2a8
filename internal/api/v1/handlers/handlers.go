package handlers

import (
	"kanbanroom/internal/cache"
	"kanbanroom/internal/models"
	"kanbanroom/internal/store"

	"github.com/gofiber/fiber/v2"
)

// Handler memegang dependency yang dipakai semua endpoint. Store dan
// cache di-inject supaya tiap test bisa membuat instance sendiri.
type Handler struct {
	Store *store.RoomStore
	Cache *cache.SnapshotCache
}

func NewHandler(s *store.RoomStore, c *cache.SnapshotCache) *Handler {
	return &Handler{Store: s, Cache: c}
}

// identity mengambil hasil resolusi middleware RoomAuth dari locals.
func identity(c *fiber.Ctx) models.Identity {
	return c.Locals("identity").(models.Identity)
}
