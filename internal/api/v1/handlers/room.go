package handlers

import (
	"kanbanroom/internal/config"
	"kanbanroom/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Room handlers

// CreateRoom adalah fungsi untuk membuat room baru beserta admin-nya
func (h *Handler) CreateRoom(c *fiber.Ctx) error {
	// struct CreateRoomRequest menerima inputan dari user
	type CreateRoomRequest struct {
		AdminName string `json:"admin_name" validate:"required"`
	}

	var req CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		// kembalikan error 400 jika inputan tidak valid
		logger.ErrorLogger.Error("Bad request in create room", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in create room", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	code, adminID := h.Store.CreateRoom(req.AdminName)

	logger.AuditLogger.Info("Room created",
		zap.String("room_code", code),
		zap.String("admin_id", adminID),
	)
	return c.JSON(fiber.Map{
		"room_code": code,
		"user_id":   adminID,
		"role":      "admin",
	})
}

// JoinRoom mendaftarkan user baru ke room; user mulai sebagai unapproved
func (h *Handler) JoinRoom(c *fiber.Ctx) error {
	type JoinRoomRequest struct {
		RoomCode string `json:"room_code" validate:"required"`
		Username string `json:"username" validate:"required"`
	}

	var req JoinRoomRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in join room", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in join room", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	userID, err := h.Store.JoinRoom(req.RoomCode, req.Username)
	if err != nil {
		// kembalikan 404 jika room code tidak dikenal
		logger.ErrorLogger.Error("Room not found in join room", zap.String("room_code", req.RoomCode))
		return c.Status(404).JSON(fiber.Map{"detail": "Room not found"})
	}

	h.Cache.Invalidate(req.RoomCode)

	logger.AuditLogger.Info("User joined room",
		zap.String("room_code", req.RoomCode),
		zap.String("user_id", userID),
	)
	return c.JSON(fiber.Map{
		"user_id":   userID,
		"room_code": req.RoomCode,
		"approved":  false,
	})
}

// RoomState mengembalikan potret penuh room untuk polling client
func (h *Handler) RoomState(c *fiber.Ctx) error {
	ident := identity(c)

	// hanya admin atau user yang sudah approved yang boleh melihat state
	if !ident.Approved && !ident.IsAdmin {
		logger.SecurityLogger.Warn("Unapproved user requested room state",
			zap.String("room_code", ident.RoomCode),
			zap.String("user_id", ident.ID),
		)
		return c.Status(403).JSON(fiber.Map{"detail": "Not approved yet"})
	}

	// Coba ambil snapshot dari cache Redis dulu; stempel versi store
	// memastikan entry yang tertinggal dari mutasi lama dianggap miss
	version, ok := h.Store.Version(ident.RoomCode)
	if !ok {
		return c.Status(404).JSON(fiber.Map{"detail": "Room not found"})
	}
	snap, ok := h.Cache.Get(ident.RoomCode, version)
	if !ok {
		snap, ok = h.Store.Snapshot(ident.RoomCode)
		if !ok {
			return c.Status(404).JSON(fiber.Map{"detail": "Room not found"})
		}
		h.Cache.Set(ident.RoomCode, version, snap)
	}

	// is_admin diisi per pemanggil, bukan dari cache
	snap.IsAdmin = ident.IsAdmin
	return c.JSON(snap)
}

// ApproveUser menyetujui user lain; hanya admin yang boleh
func (h *Handler) ApproveUser(c *fiber.Ctx) error {
	ident := identity(c)
	targetID := c.Params("target_user_id")

	if !ident.IsAdmin {
		logger.SecurityLogger.Warn("Non-admin tried to approve user",
			zap.String("room_code", ident.RoomCode),
			zap.String("user_id", ident.ID),
		)
		return c.Status(403).JSON(fiber.Map{"detail": "Only admin can approve"})
	}

	// no-op jika target tidak dikenal
	h.Store.ApproveUser(ident.RoomCode, targetID)
	h.Cache.Invalidate(ident.RoomCode)

	logger.AuditLogger.Info("User approved",
		zap.String("room_code", ident.RoomCode),
		zap.String("target_user_id", targetID),
	)
	return c.JSON(fiber.Map{"status": "ok"})
}

// UpdateRoomTitle mengganti judul room; hanya admin yang boleh
func (h *Handler) UpdateRoomTitle(c *fiber.Ctx) error {
	ident := identity(c)

	type UpdateRoomRequest struct {
		Title string `json:"title" validate:"required"`
	}

	var req UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update room title", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in update room title", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	if !ident.IsAdmin {
		logger.SecurityLogger.Warn("Non-admin tried to change room title",
			zap.String("room_code", ident.RoomCode),
			zap.String("user_id", ident.ID),
		)
		return c.Status(403).JSON(fiber.Map{"detail": "Only admin can change title"})
	}

	h.Store.SetTitle(ident.RoomCode, req.Title)
	h.Cache.Invalidate(ident.RoomCode)

	logger.AuditLogger.Info("Room title updated", zap.String("room_code", ident.RoomCode))
	return c.JSON(fiber.Map{"status": "updated"})
}
