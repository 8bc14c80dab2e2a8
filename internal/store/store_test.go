package store

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func TestCreateRoomDefaults(t *testing.T) {
	s := NewRoomStore()
	code, adminID := s.CreateRoom("Alice")

	assert.Regexp(t, codePattern, code)
	require.NotEmpty(t, adminID)

	ident, err := s.Resolve(code, adminID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", ident.Name)
	assert.Equal(t, "admin", ident.Role)
	assert.True(t, ident.Approved)
	assert.True(t, ident.IsAdmin)

	snap, ok := s.Snapshot(code)
	require.True(t, ok)
	assert.Equal(t, "New Kanban Room", snap.Title)
	assert.Equal(t, []string{"Upcoming", "In Progress", "Done"}, snap.Columns)
	assert.Equal(t, []string{"General"}, snap.Categories)
	assert.Empty(t, snap.Tasks)
	require.Len(t, snap.Users, 1)
	assert.Equal(t, adminID, snap.Users[0].ID)
}

func TestJoinRoom(t *testing.T) {
	s := NewRoomStore()
	code, _ := s.CreateRoom("Alice")

	userID, err := s.JoinRoom(code, "Bob")
	require.NoError(t, err)

	ident, err := s.Resolve(code, userID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", ident.Name)
	assert.Equal(t, "user", ident.Role)
	assert.False(t, ident.Approved)
	assert.False(t, ident.IsAdmin)
}

func TestJoinRoomUnknownCode(t *testing.T) {
	s := NewRoomStore()
	_, err := s.JoinRoom("NOPE00", "Bob")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestResolveFailures(t *testing.T) {
	s := NewRoomStore()
	code, _ := s.CreateRoom("Alice")

	_, err := s.Resolve("NOPE00", "whatever")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = s.Resolve(code, "not-a-member")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestApproveUser(t *testing.T) {
	s := NewRoomStore()
	code, _ := s.CreateRoom("Alice")
	userID, err := s.JoinRoom(code, "Bob")
	require.NoError(t, err)

	// approval bersifat monoton false -> true
	s.ApproveUser(code, userID)
	ident, err := s.Resolve(code, userID)
	require.NoError(t, err)
	assert.True(t, ident.Approved)

	// target tidak dikenal adalah no-op
	s.ApproveUser(code, "not-a-member")
}

func TestAddColumnIdempotent(t *testing.T) {
	s := NewRoomStore()
	code, _ := s.CreateRoom("Alice")

	cols := s.AddColumn(code, "Review")
	assert.Equal(t, []string{"Upcoming", "In Progress", "Done", "Review"}, cols)

	// panggilan kedua dengan nama sama tidak menambah duplikat
	cols = s.AddColumn(code, "Review")
	assert.Equal(t, []string{"Upcoming", "In Progress", "Done", "Review"}, cols)
}

func TestReorderColumns(t *testing.T) {
	s := NewRoomStore()
	code, _ := s.CreateRoom("Alice")

	// anggota sama, urutan baru diterima
	cols := s.ReorderColumns(code, []string{"Done", "Upcoming", "In Progress"})
	assert.Equal(t, []string{"Done", "Upcoming", "In Progress"}, cols)

	// anggota tidak sama: diabaikan diam-diam, urutan lama dikembalikan
	cols = s.ReorderColumns(code, []string{"Done", "Upcoming", "Missing"})
	assert.Equal(t, []string{"Done", "Upcoming", "In Progress"}, cols)

	cols = s.ReorderColumns(code, []string{"Done", "Upcoming"})
	assert.Equal(t, []string{"Done", "Upcoming", "In Progress"}, cols)
}

func TestReorderColumnsDuplicateMembers(t *testing.T) {
	s := NewRoomStore()
	code, _ := s.CreateRoom("Alice")

	// perbandingan anggota mengabaikan duplikat: payload dengan nama
	// ganda yang himpunannya sama diterapkan apa adanya
	cols := s.ReorderColumns(code, []string{"Done", "Done", "In Progress", "Upcoming"})
	assert.Equal(t, []string{"Done", "Done", "In Progress", "Upcoming"}, cols)
}

func TestDeleteColumnCascade(t *testing.T) {
	s := NewRoomStore()
	code, adminID := s.CreateRoom("Alice")
	ident, err := s.Resolve(code, adminID)
	require.NoError(t, err)

	kept, ok := s.CreateTask(code, ident.Name, "Keep", "", "Upcoming", "Unassigned", "General")
	require.True(t, ok)
	doomed, ok := s.CreateTask(code, ident.Name, "Doomed", "", "Done", "Unassigned", "General")
	require.True(t, ok)

	cols := s.DeleteColumn(code, "Done")
	assert.Equal(t, []string{"Upcoming", "In Progress"}, cols)

	snap, ok := s.Snapshot(code)
	require.True(t, ok)
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, kept.ID, snap.Tasks[0].ID)
	for _, task := range snap.Tasks {
		assert.NotEqual(t, doomed.ID, task.ID)
		assert.NotEqual(t, "Done", task.Status)
	}
}

func TestDeleteColumnUnknownName(t *testing.T) {
	s := NewRoomStore()
	code, _ := s.CreateRoom("Alice")

	cols := s.DeleteColumn(code, "Missing")
	assert.Equal(t, []string{"Upcoming", "In Progress", "Done"}, cols)
}

func TestDeleteCategoryReassignsTasks(t *testing.T) {
	s := NewRoomStore()
	code, adminID := s.CreateRoom("Alice")
	ident, err := s.Resolve(code, adminID)
	require.NoError(t, err)

	cats := s.AddCategory(code, "Urgent")
	assert.Equal(t, []string{"General", "Urgent"}, cats)

	task, ok := s.CreateTask(code, ident.Name, "Fix bug", "", "Upcoming", "Unassigned", "Urgent")
	require.True(t, ok)

	cats = s.DeleteCategory(code, "Urgent")
	assert.Equal(t, []string{"General"}, cats)

	snap, ok := s.Snapshot(code)
	require.True(t, ok)
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, task.ID, snap.Tasks[0].ID)
	assert.Equal(t, "General", snap.Tasks[0].Category)
}

func TestDeleteGeneralCategory(t *testing.T) {
	s := NewRoomStore()
	code, adminID := s.CreateRoom("Alice")
	ident, err := s.Resolve(code, adminID)
	require.NoError(t, err)

	task, ok := s.CreateTask(code, ident.Name, "Orphaned", "", "Upcoming", "Unassigned", "General")
	require.True(t, ok)

	// "General" sendiri boleh dihapus; task yang memakainya dipindahkan
	// ke "General" yang sudah tidak ada lagi (referensi menggantung,
	// perilaku terdokumentasi)
	cats := s.DeleteCategory(code, "General")
	assert.Empty(t, cats)

	snap, ok := s.Snapshot(code)
	require.True(t, ok)
	assert.Empty(t, snap.Categories)
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, task.ID, snap.Tasks[0].ID)
	assert.Equal(t, "General", snap.Tasks[0].Category)
}

func TestAddCategoryIdempotent(t *testing.T) {
	s := NewRoomStore()
	code, _ := s.CreateRoom("Alice")

	s.AddCategory(code, "Urgent")
	cats := s.AddCategory(code, "Urgent")
	assert.Equal(t, []string{"General", "Urgent"}, cats)
}

func TestTaskLifecycle(t *testing.T) {
	s := NewRoomStore()
	code, _ := s.CreateRoom("Alice")
	userID, err := s.JoinRoom(code, "Bob")
	require.NoError(t, err)
	s.ApproveUser(code, userID)
	ident, err := s.Resolve(code, userID)
	require.NoError(t, err)

	task, ok := s.CreateTask(code, ident.Name, "Write docs", "first draft", "Upcoming", "Unassigned", "General")
	require.True(t, ok)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Bob", task.Author)
	assert.Equal(t, "Unassigned", task.Assignee)

	// edit menimpa empat field mutable; status dan author tidak berubah
	s.EditTask(code, task.ID, "Write docs v2", "second draft", "Alice", "Urgent")
	snap, _ := s.Snapshot(code)
	require.Len(t, snap.Tasks, 1)
	got := snap.Tasks[0]
	assert.Equal(t, "Write docs v2", got.Title)
	assert.Equal(t, "second draft", got.Description)
	assert.Equal(t, "Alice", got.Assignee)
	assert.Equal(t, "Urgent", got.Category)
	assert.Equal(t, "Upcoming", got.Status)
	assert.Equal(t, "Bob", got.Author)

	s.MoveTask(code, task.ID, "Done")
	snap, _ = s.Snapshot(code)
	assert.Equal(t, "Done", snap.Tasks[0].Status)

	s.AssignTask(code, task.ID, "Bob")
	snap, _ = s.Snapshot(code)
	assert.Equal(t, "Bob", snap.Tasks[0].Assignee)

	s.DeleteTask(code, task.ID)
	snap, _ = s.Snapshot(code)
	assert.Empty(t, snap.Tasks)
}

func TestTaskOpsUnknownIDAreNoops(t *testing.T) {
	s := NewRoomStore()
	code, adminID := s.CreateRoom("Alice")
	ident, err := s.Resolve(code, adminID)
	require.NoError(t, err)

	task, ok := s.CreateTask(code, ident.Name, "Stays put", "", "Upcoming", "Unassigned", "General")
	require.True(t, ok)

	s.EditTask(code, "ghost", "x", "y", "z", "w")
	s.MoveTask(code, "ghost", "Done")
	s.AssignTask(code, "ghost", "Nobody")
	s.DeleteTask(code, "ghost")

	snap, _ := s.Snapshot(code)
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, task, snap.Tasks[0])
}

func TestVersionChangesOnMutation(t *testing.T) {
	s := NewRoomStore()
	code, _ := s.CreateRoom("Alice")

	v0, ok := s.Version(code)
	require.True(t, ok)

	// setiap mutasi menaikkan versi
	s.AddColumn(code, "Review")
	v1, _ := s.Version(code)
	assert.Greater(t, v1, v0)

	s.SetTitle(code, "Sprint 12")
	v2, _ := s.Version(code)
	assert.Greater(t, v2, v1)

	// no-op tidak menaikkan versi
	s.AddColumn(code, "Review")
	s.DeleteTask(code, "ghost")
	s.ReorderColumns(code, []string{"mismatch"})
	v3, _ := s.Version(code)
	assert.Equal(t, v2, v3)

	_, ok = s.Version("NOPE00")
	assert.False(t, ok)
}

func TestOpsOnUnknownRoom(t *testing.T) {
	s := NewRoomStore()

	assert.Nil(t, s.AddColumn("NOPE00", "X"))
	assert.Nil(t, s.DeleteColumn("NOPE00", "X"))
	assert.Nil(t, s.ReorderColumns("NOPE00", []string{"X"}))
	assert.Nil(t, s.AddCategory("NOPE00", "X"))
	assert.Nil(t, s.DeleteCategory("NOPE00", "X"))

	_, ok := s.CreateTask("NOPE00", "Alice", "t", "", "Upcoming", "Unassigned", "General")
	assert.False(t, ok)
	_, ok = s.Snapshot("NOPE00")
	assert.False(t, ok)
}
