package models

import (
	"time"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"-"`
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Author      string    `json:"author"`
	Assignee    string    `json:"assignee"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// Identity adalah hasil resolusi header x-user-id / x-room-code.
type Identity struct {
	ID       string `json:"id"`
	RoomCode string `json:"room_code"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Approved bool   `json:"approved"`
	IsAdmin  bool   `json:"is_admin"`
}

// RoomSnapshot adalah potret penuh state room untuk polling client.
// IsAdmin diisi per request oleh handler, bukan oleh store.
type RoomSnapshot struct {
	Title      string   `json:"title"`
	Columns    []string `json:"columns"`
	Categories []string `json:"categories"`
	Tasks      []Task   `json:"tasks"`
	Users      []User   `json:"users"`
	IsAdmin    bool     `json:"is_admin"`
}
