package handlers

import (
	"kanbanroom/internal/config"
	"kanbanroom/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Category handlers

// AddCategory menambahkan category baru; idempoten jika nama sudah ada
func (h *Handler) AddCategory(c *fiber.Ctx) error {
	ident := identity(c)

	type AddCategoryRequest struct {
		CategoryName string `json:"category_name" validate:"required"`
	}

	var req AddCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in add category", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in add category", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	categories := h.Store.AddCategory(ident.RoomCode, req.CategoryName)
	h.Cache.Invalidate(ident.RoomCode)

	logger.AuditLogger.Info("Category added",
		zap.String("room_code", ident.RoomCode),
		zap.String("category", req.CategoryName),
	)
	return c.JSON(categories)
}

// DeleteCategory menghapus category; task yang memakainya dipindahkan ke
// "General". Admin-only.
func (h *Handler) DeleteCategory(c *fiber.Ctx) error {
	ident := identity(c)

	type DeleteCategoryRequest struct {
		CategoryName string `json:"category_name" validate:"required"`
	}

	var req DeleteCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in delete category", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in delete category", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	if !ident.IsAdmin {
		logger.SecurityLogger.Warn("Non-admin tried to delete category",
			zap.String("room_code", ident.RoomCode),
			zap.String("user_id", ident.ID),
		)
		return c.Status(403).JSON(fiber.Map{"detail": "Only admin can delete categories"})
	}

	categories := h.Store.DeleteCategory(ident.RoomCode, req.CategoryName)
	h.Cache.Invalidate(ident.RoomCode)

	logger.AuditLogger.Info("Category deleted",
		zap.String("room_code", ident.RoomCode),
		zap.String("category", req.CategoryName),
	)
	return c.JSON(categories)
}
