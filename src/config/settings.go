package config

import (
	"context"
	"log"
	"strconv"
	"sync"

	"bts/src/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Business settings keys persisted in the settings table.
const (
	KeyMaxSeatHoldMinutes   = "maxSeatHoldMinutes"
	KeyCancelBeforeMinutes  = "cancelBeforeMinutes"
	KeyMaxBaggageWeightKg   = "maxBaggageWeightKg"
	KeyBaggageFeePercentage = "baggageFeePercentage"
)

const settingsCacheKey = "bts:settings"

// Provider is the read side of the process-wide settings cache. Injected into
// the engine so core code never touches ambient state directly.
type Provider interface {
	Get(key, def string) string
	Int(key string, def int) int
	Float(key string, def float64) float64
	Reload() error
}

// Settings caches the settings table in memory and mirrors it to a redis hash
// so other instances pick up changes on their next reload. Reload is explicit;
// the scheduler calls it periodically.
type Settings struct {
	db  *gorm.DB
	rdb *redis.Client

	mu     sync.RWMutex
	values map[string]string
}

func NewSettings(db *gorm.DB, rdb *redis.Client) *Settings {
	return &Settings{db: db, rdb: rdb, values: map[string]string{}}
}

func (s *Settings) Reload() error {
	var rows []models.Setting
	if err := s.db.Find(&rows).Error; err != nil {
		return err
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.SettingKey] = row.SettingValue
	}
	s.mu.Lock()
	s.values = values
	s.mu.Unlock()

	if s.rdb != nil && len(values) > 0 {
		flat := make(map[string]string, len(values))
		for k, v := range values {
			flat[k] = v
		}
		if err := s.rdb.HSet(context.Background(), settingsCacheKey, flat).Err(); err != nil {
			log.Printf("[settings] could not mirror to redis: %s\n", err.Error())
		}
	}
	return nil
}

func (s *Settings) Get(key, def string) string {
	s.mu.RLock()
	v, ok := s.values[key]
	s.mu.RUnlock()
	if ok && v != "" {
		return v
	}
	return def
}

func (s *Settings) Int(key string, def int) int {
	raw := s.Get(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("[settings] %s holds non-integer value %q\n", key, raw)
		return def
	}
	return n
}

func (s *Settings) Float(key string, def float64) float64 {
	raw := s.Get(key, "")
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("[settings] %s holds non-numeric value %q\n", key, raw)
		return def
	}
	return f
}

var settings *Settings

// InitSettings wires the singleton used by handlers. Tests inject their own
// Provider into the engine instead.
func InitSettings(db *gorm.DB, rdb *redis.Client) *Settings {
	s := NewSettings(db, rdb)
	if err := s.Reload(); err != nil {
		log.Printf("[settings] initial load failed: %s\n", err.Error())
	}
	settings = s
	return s
}

func GetSettings() *Settings {
	return settings
}

// StaticSettings is a fixed-value Provider for tests and tooling.
type StaticSettings map[string]string

func (m StaticSettings) Get(key, def string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return def
}

func (m StaticSettings) Int(key string, def int) int {
	raw := m.Get(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func (m StaticSettings) Float(key string, def float64) float64 {
	raw := m.Get(key, "")
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return f
}

func (m StaticSettings) Reload() error { return nil }
