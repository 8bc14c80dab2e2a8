package cache

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"kanbanroom/configs"
	"kanbanroom/internal/config"
	"kanbanroom/internal/models"
	"kanbanroom/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SnapshotCache menyimpan potret room (tanpa is_admin) di Redis.
// Receiver nil aman dipakai: semua operasi menjadi no-op, sehingga
// service tetap benar tanpa Redis.
type SnapshotCache struct {
	client *redis.Client
}

func Connect(cfg configs.Config) *SnapshotCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: "",
		DB:       0,
	})
	if err := client.Ping(config.Ctx).Err(); err != nil {
		logger.ErrorLogger.Error("Redis connection error", zap.Error(err))
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	return &SnapshotCache{client: client}
}

func cacheKey(code string) string {
	return fmt.Sprintf("room_snapshot:%s", code)
}

// snapshotEnvelope membungkus snapshot dengan stempel versi store.
// Set yang datang terlambat (setelah mutasi lain) tersimpan dengan versi
// lama dan dianggap miss pada Get berikutnya, jadi state basi tidak
// pernah terawetkan sampai TTL habis.
type snapshotEnvelope struct {
	Version  uint64              `json:"version"`
	Snapshot models.RoomSnapshot `json:"snapshot"`
}

func (c *SnapshotCache) Get(code string, version uint64) (models.RoomSnapshot, bool) {
	if c == nil || c.client == nil {
		return models.RoomSnapshot{}, false
	}
	cached, err := c.client.Get(config.Ctx, cacheKey(code)).Result()
	if err != nil {
		return models.RoomSnapshot{}, false
	}
	var env snapshotEnvelope
	if err := json.Unmarshal([]byte(cached), &env); err != nil {
		return models.RoomSnapshot{}, false
	}
	if env.Version != version {
		return models.RoomSnapshot{}, false
	}
	return env.Snapshot, true
}

func (c *SnapshotCache) Set(code string, version uint64, snap models.RoomSnapshot) {
	if c == nil || c.client == nil {
		return
	}
	jsonData, err := json.Marshal(snapshotEnvelope{Version: version, Snapshot: snap})
	if err != nil {
		logger.ErrorLogger.Error("Error encoding snapshot to JSON", zap.Error(err))
		return
	}
	// Simpan dengan waktu kadaluarsa 1 jam
	if err := c.client.SetEX(config.Ctx, cacheKey(code), jsonData, time.Hour).Err(); err != nil {
		logger.ErrorLogger.Error("Error caching room snapshot", zap.Error(err))
	}
}

// Invalidate dipanggil oleh setiap endpoint yang memutasi room.
func (c *SnapshotCache) Invalidate(code string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(config.Ctx, cacheKey(code))
}

func (c *SnapshotCache) Close() {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Close()
}
