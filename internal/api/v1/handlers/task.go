package handlers

import (
	"kanbanroom/internal/config"
	"kanbanroom/internal/models"
	"kanbanroom/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Task handlers
//
// Semua operasi task membutuhkan identity yang sudah approved. Operasi
// pada task id yang tidak dikenal adalah no-op yang tetap sukses, supaya
// client dengan state basi tidak mendapat error.

// requireApproved memeriksa gate approval untuk semua operasi task.
// Menulis response 403 dan mengembalikan false jika belum approved.
// Catatan: fiber Ctx.JSON mengembalikan nil saat sukses, jadi hasilnya
// tidak bisa dipakai langsung sebagai sinyal gagal.
func (h *Handler) requireApproved(c *fiber.Ctx, ident models.Identity) bool {
	if !ident.Approved {
		logger.SecurityLogger.Warn("Unapproved user tried task operation",
			zap.String("room_code", ident.RoomCode),
			zap.String("user_id", ident.ID),
			zap.String("url", c.OriginalURL()),
		)
		_ = c.Status(403).JSON(fiber.Map{"detail": "Wait for approval"})
		return false
	}
	return true
}

// CreateTask adalah fungsi untuk membuat task baru
func (h *Handler) CreateTask(c *fiber.Ctx) error {
	ident := identity(c)
	if !h.requireApproved(c, ident) {
		return nil
	}

	// struct TaskCreateRequest menerima inputan dari user
	type TaskCreateRequest struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		Status      string `json:"status" validate:"required"`
		Assignee    string `json:"assignee"`
		Category    string `json:"category"`
	}

	var req TaskCreateRequest
	if err := c.BodyParser(&req); err != nil {
		// kembalikan error 400 jika inputan tidak valid
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	// default untuk field opsional
	if req.Assignee == "" {
		req.Assignee = "Unassigned"
	}
	if req.Category == "" {
		req.Category = "General"
	}

	// status dan category sengaja tidak divalidasi terhadap columns /
	// categories yang ada; perbaikan hanya terjadi saat delete
	task, ok := h.Store.CreateTask(ident.RoomCode, ident.Name,
		req.Title, req.Description, req.Status, req.Assignee, req.Category)
	if !ok {
		return c.Status(404).JSON(fiber.Map{"detail": "Room not found"})
	}
	h.Cache.Invalidate(ident.RoomCode)

	logger.AuditLogger.Info("Task created",
		zap.String("room_code", ident.RoomCode),
		zap.String("task_id", task.ID),
	)
	return c.JSON(task)
}

// EditTask menimpa title/description/assignee/category; status dan author
// tidak disentuh
func (h *Handler) EditTask(c *fiber.Ctx) error {
	ident := identity(c)
	if !h.requireApproved(c, ident) {
		return nil
	}

	type TaskEditRequest struct {
		TaskID      string `json:"task_id" validate:"required"`
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		Assignee    string `json:"assignee"`
		Category    string `json:"category"`
	}

	var req TaskEditRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in edit task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in edit task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	h.Store.EditTask(ident.RoomCode, req.TaskID,
		req.Title, req.Description, req.Assignee, req.Category)
	h.Cache.Invalidate(ident.RoomCode)

	logger.AuditLogger.Info("Task edited",
		zap.String("room_code", ident.RoomCode),
		zap.String("task_id", req.TaskID),
	)
	return c.JSON(fiber.Map{"status": "updated"})
}

// DeleteTask menghapus task secara permanen; no-op jika id tidak dikenal
func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	ident := identity(c)
	if !h.requireApproved(c, ident) {
		return nil
	}

	taskID := c.Params("task_id")
	h.Store.DeleteTask(ident.RoomCode, taskID)
	h.Cache.Invalidate(ident.RoomCode)

	logger.AuditLogger.Info("Task deleted",
		zap.String("room_code", ident.RoomCode),
		zap.String("task_id", taskID),
	)
	return c.JSON(fiber.Map{"status": "deleted"})
}

// MoveTask memindahkan task ke status baru; status tidak divalidasi
// terhadap columns yang ada
func (h *Handler) MoveTask(c *fiber.Ctx) error {
	ident := identity(c)
	if !h.requireApproved(c, ident) {
		return nil
	}

	type MoveTaskRequest struct {
		TaskID    string `json:"task_id" validate:"required"`
		NewStatus string `json:"new_status" validate:"required"`
	}

	var req MoveTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in move task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in move task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	h.Store.MoveTask(ident.RoomCode, req.TaskID, req.NewStatus)
	h.Cache.Invalidate(ident.RoomCode)

	logger.AuditLogger.Info("Task moved",
		zap.String("room_code", ident.RoomCode),
		zap.String("task_id", req.TaskID),
		zap.String("new_status", req.NewStatus),
	)
	return c.JSON(fiber.Map{"status": "moved"})
}

// AssignTask mengganti assignee task; no-op jika id tidak dikenal
func (h *Handler) AssignTask(c *fiber.Ctx) error {
	ident := identity(c)
	if !h.requireApproved(c, ident) {
		return nil
	}

	type AssignTaskRequest struct {
		TaskID   string `json:"task_id" validate:"required"`
		Assignee string `json:"assignee" validate:"required"`
	}

	var req AssignTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in assign task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in assign task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	h.Store.AssignTask(ident.RoomCode, req.TaskID, req.Assignee)
	h.Cache.Invalidate(ident.RoomCode)

	logger.AuditLogger.Info("Task assigned",
		zap.String("room_code", ident.RoomCode),
		zap.String("task_id", req.TaskID),
		zap.String("assignee", req.Assignee),
	)
	return c.JSON(fiber.Map{"status": "assigned"})
}
