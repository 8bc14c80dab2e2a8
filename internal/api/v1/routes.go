package v1

import (
	"kanbanroom/internal/api/v1/handlers"
	"kanbanroom/internal/middleware"
	"kanbanroom/internal/store"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mendaftarkan seluruh endpoint. Path dan bentuk response
// mengikuti kontrak API yang sudah dipakai frontend, tanpa prefix.
func RegisterRoutes(app *fiber.App, h *handlers.Handler, s *store.RoomStore) {
	// Room lifecycle (tanpa identity)
	app.Post("/create_room", h.CreateRoom)
	app.Post("/join_room", h.JoinRoom)

	// Semua endpoint lain membutuhkan header x-user-id / x-room-code
	room := app.Group("/", middleware.RoomAuth(s))
	room.Get("/room_state", h.RoomState)
	room.Post("/approve_user/:target_user_id", h.ApproveUser)
	room.Post("/update_room_title", h.UpdateRoomTitle)

	// Column
	room.Post("/add_column", h.AddColumn)
	room.Post("/delete_column", h.DeleteColumn)
	room.Post("/reorder_columns", h.ReorderColumns)

	// Category
	room.Post("/add_category", h.AddCategory)
	room.Post("/delete_category", h.DeleteCategory)

	// Task
	room.Post("/create_task", h.CreateTask)
	room.Post("/edit_task", h.EditTask)
	room.Delete("/delete_task/:task_id", h.DeleteTask)
	room.Post("/move_task", h.MoveTask)
	room.Post("/assign_task", h.AssignTask)
}
