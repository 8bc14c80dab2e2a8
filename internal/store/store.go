package store

import (
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"kanbanroom/internal/models"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrUserNotFound = errors.New("user not found")
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

// Room adalah satu workspace kanban beserta lock per-room.
// Semua mutasi terhadap room harus memegang mu. version naik pada setiap
// perubahan state dan dipakai cache untuk mendeteksi snapshot basi.
type Room struct {
	mu      sync.Mutex
	version uint64

	Code       string
	Title      string
	AdminID    string
	Users      map[string]*models.User
	Columns    []string
	Categories []string
	Tasks      map[string]*models.Task
}

// RoomStore menyimpan seluruh room di memori, di-key dengan room code.
// State hilang saat proses restart.
type RoomStore struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: map[string]*Room{},
	}
}

func generateRoomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

func (s *RoomStore) room(code string) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[code]
	return r, ok
}

// CreateRoom membuat room baru dengan default columns/categories
// dan mendaftarkan admin sebagai user yang sudah approved.
func (s *RoomStore) CreateRoom(adminName string) (string, string) {
	code := generateRoomCode()
	adminID := uuid.NewString()

	room := &Room{
		// mulai dari UnixNano supaya room baru dengan code yang sama
		// (setelah restart) tidak bertabrakan dengan cache lama
		version: uint64(time.Now().UnixNano()),
		Code:    code,
		Title:   "New Kanban Room",
		AdminID: adminID,
		Users: map[string]*models.User{
			adminID: {
				ID:        adminID,
				Name:      adminName,
				Role:      "admin",
				Approved:  true,
				CreatedAt: time.Now(),
			},
		},
		Columns:    []string{"Upcoming", "In Progress", "Done"},
		Categories: []string{"General"},
		Tasks:      map[string]*models.Task{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[code] = room
	return code, adminID
}

// JoinRoom mendaftarkan user baru (belum approved) ke room yang sudah ada.
func (s *RoomStore) JoinRoom(code, username string) (string, error) {
	r, ok := s.room(code)
	if !ok {
		return "", ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	userID := uuid.NewString()
	r.Users[userID] = &models.User{
		ID:        userID,
		Name:      username,
		Role:      "user",
		Approved:  false,
		CreatedAt: time.Now(),
	}
	r.version++
	return userID, nil
}

// Version mengembalikan stempel versi room saat ini. Versi berubah pada
// setiap mutasi, sehingga snapshot cache dengan versi lama dianggap miss.
func (s *RoomStore) Version(code string) (uint64, bool) {
	r, ok := s.room(code)
	if !ok {
		return 0, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version, true
}

// Resolve adalah lookup murni dari (room code, user id) ke Identity.
func (s *RoomStore) Resolve(code, userID string) (models.Identity, error) {
	r, ok := s.room(code)
	if !ok {
		return models.Identity{}, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Users[userID]
	if !ok {
		return models.Identity{}, ErrUserNotFound
	}
	return models.Identity{
		ID:       u.ID,
		RoomCode: code,
		Name:     u.Name,
		Role:     u.Role,
		Approved: u.Approved,
		IsAdmin:  u.ID == r.AdminID,
	}, nil
}

// Snapshot mengembalikan potret penuh room. Tasks dan users diurutkan
// berdasarkan waktu pembuatan supaya hasil polling stabil.
func (s *RoomStore) Snapshot(code string) (models.RoomSnapshot, bool) {
	r, ok := s.room(code)
	if !ok {
		return models.RoomSnapshot{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := make([]models.Task, 0, len(r.Tasks))
	for _, t := range r.Tasks {
		tasks = append(tasks, *t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	users := make([]models.User, 0, len(r.Users))
	for _, u := range r.Users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})

	return models.RoomSnapshot{
		Title:      r.Title,
		Columns:    append([]string{}, r.Columns...),
		Categories: append([]string{}, r.Categories...),
		Tasks:      tasks,
		Users:      users,
	}, true
}

// ApproveUser menyetujui user; no-op jika target tidak dikenal.
func (s *RoomStore) ApproveUser(code, targetID string) {
	r, ok := s.room(code)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.Users[targetID]; ok {
		u.Approved = true
		r.version++
	}
}

func (s *RoomStore) SetTitle(code, title string) {
	r, ok := s.room(code)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.Title = title
	r.version++
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}

// sameMembers membandingkan dua list sebagai himpunan (duplikat diabaikan).
func sameMembers(a, b []string) bool {
	setA := map[string]struct{}{}
	for _, v := range a {
		setA[v] = struct{}{}
	}
	setB := map[string]struct{}{}
	for _, v := range b {
		setB[v] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for v := range setA {
		if _, ok := setB[v]; !ok {
			return false
		}
	}
	return true
}

// AddColumn idempoten: no-op jika nama sudah ada.
func (s *RoomStore) AddColumn(code, name string) []string {
	r, ok := s.room(code)
	if !ok {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !contains(r.Columns, name) {
		r.Columns = append(r.Columns, name)
		r.version++
	}
	return append([]string{}, r.Columns...)
}

// DeleteColumn menghapus column beserta semua task yang status-nya sama.
func (s *RoomStore) DeleteColumn(code, name string) []string {
	r, ok := s.room(code)
	if !ok {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if contains(r.Columns, name) {
		cols := r.Columns[:0]
		for _, c := range r.Columns {
			if c != name {
				cols = append(cols, c)
			}
		}
		r.Columns = cols

		for id, t := range r.Tasks {
			if t.Status == name {
				delete(r.Tasks, id)
			}
		}
		r.version++
	}
	return append([]string{}, r.Columns...)
}

// ReorderColumns hanya diterima jika anggota himpunannya sama dengan
// columns sekarang; selain itu urutan lama dikembalikan tanpa error.
func (s *RoomStore) ReorderColumns(code string, order []string) []string {
	r, ok := s.room(code)
	if !ok {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if sameMembers(order, r.Columns) {
		r.Columns = append([]string{}, order...)
		r.version++
	}
	return append([]string{}, r.Columns...)
}

// AddCategory idempoten, sama seperti AddColumn.
func (s *RoomStore) AddCategory(code, name string) []string {
	r, ok := s.room(code)
	if !ok {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !contains(r.Categories, name) {
		r.Categories = append(r.Categories, name)
		r.version++
	}
	return append([]string{}, r.Categories...)
}

// DeleteCategory menghapus category dan memindahkan task yang memakainya
// ke "General".
func (s *RoomStore) DeleteCategory(code, name string) []string {
	r, ok := s.room(code)
	if !ok {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if contains(r.Categories, name) {
		cats := r.Categories[:0]
		for _, c := range r.Categories {
			if c != name {
				cats = append(cats, c)
			}
		}
		r.Categories = cats

		for _, t := range r.Tasks {
			if t.Category == name {
				t.Category = "General"
			}
		}
		r.version++
	}
	return append([]string{}, r.Categories...)
}

// CreateTask membuat task baru dengan id fresh. Status dan category tidak
// divalidasi terhadap columns/categories yang ada.
func (s *RoomStore) CreateTask(code, author, title, description, status, assignee, category string) (models.Task, bool) {
	r, ok := s.room(code)
	if !ok {
		return models.Task{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      status,
		Author:      author,
		Assignee:    assignee,
		Category:    category,
		CreatedAt:   time.Now(),
	}
	r.Tasks[task.ID] = task
	r.version++
	return *task, true
}

// EditTask menimpa empat field mutable; status dan author tidak disentuh.
// No-op jika task tidak dikenal.
func (s *RoomStore) EditTask(code, taskID, title, description, assignee, category string) {
	r, ok := s.room(code)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.Tasks[taskID]; ok {
		t.Title = title
		t.Description = description
		t.Assignee = assignee
		t.Category = category
		r.version++
	}
}

func (s *RoomStore) DeleteTask(code, taskID string) {
	r, ok := s.room(code)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Tasks[taskID]; ok {
		delete(r.Tasks, taskID)
		r.version++
	}
}

func (s *RoomStore) MoveTask(code, taskID, newStatus string) {
	r, ok := s.room(code)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.Tasks[taskID]; ok {
		t.Status = newStatus
		r.version++
	}
}

func (s *RoomStore) AssignTask(code, taskID, assignee string) {
	r, ok := s.room(code)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.Tasks[taskID]; ok {
		t.Assignee = assignee
		r.version++
	}
}
