package handlers

import (
	"kanbanroom/internal/config"
	"kanbanroom/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Column handlers
//
// Menambah dan mengurutkan ulang column terbuka untuk semua member room;
// hanya delete yang dibatasi ke admin.

// AddColumn menambahkan column baru di akhir; idempoten jika nama sudah ada
func (h *Handler) AddColumn(c *fiber.Ctx) error {
	ident := identity(c)

	type AddColumnRequest struct {
		ColumnName string `json:"column_name" validate:"required"`
	}

	var req AddColumnRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in add column", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in add column", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	columns := h.Store.AddColumn(ident.RoomCode, req.ColumnName)
	h.Cache.Invalidate(ident.RoomCode)

	logger.AuditLogger.Info("Column added",
		zap.String("room_code", ident.RoomCode),
		zap.String("column", req.ColumnName),
	)
	return c.JSON(columns)
}

// DeleteColumn menghapus column beserta semua task di dalamnya; admin-only
func (h *Handler) DeleteColumn(c *fiber.Ctx) error {
	ident := identity(c)

	type DeleteColumnRequest struct {
		ColumnName string `json:"column_name" validate:"required"`
	}

	var req DeleteColumnRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in delete column", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in delete column", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	if !ident.IsAdmin {
		logger.SecurityLogger.Warn("Non-admin tried to delete column",
			zap.String("room_code", ident.RoomCode),
			zap.String("user_id", ident.ID),
		)
		return c.Status(403).JSON(fiber.Map{"detail": "Only admin can delete columns"})
	}

	columns := h.Store.DeleteColumn(ident.RoomCode, req.ColumnName)
	h.Cache.Invalidate(ident.RoomCode)

	logger.AuditLogger.Info("Column deleted",
		zap.String("room_code", ident.RoomCode),
		zap.String("column", req.ColumnName),
	)
	return c.JSON(columns)
}

// ReorderColumns menerima urutan baru hanya jika anggotanya sama persis
// dengan columns sekarang; selain itu urutan lama dikembalikan diam-diam
func (h *Handler) ReorderColumns(c *fiber.Ctx) error {
	ident := identity(c)

	type ReorderColumnsRequest struct {
		Columns []string `json:"columns"`
	}

	var req ReorderColumnsRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in reorder columns", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	columns := h.Store.ReorderColumns(ident.RoomCode, req.Columns)
	h.Cache.Invalidate(ident.RoomCode)

	logger.AuditLogger.Info("Columns reordered", zap.String("room_code", ident.RoomCode))
	return c.JSON(columns)
}
