package db

import (
	"bts/src/config"
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func envInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("[db] %s holds non-integer value %q\n", key, raw)
		return def
	}
	return n
}

func GetDb() *gorm.DB {
	if db != nil {
		return db
	}
	_db, err := gorm.Open(postgres.Open(config.GetDSN()))
	if err != nil {
		log.Printf("Error connecting to database: %s\n", err.Error())
		panic(err)
	}
	sqlDB, err := _db.DB()
	if err != nil {
		log.Fatalf("Error establishing connection to database: %s\n", err.Error())
	}
	sqlDB.SetMaxIdleConns(envInt("DATABASE_MAX_IDLE_CONNS", 10))
	sqlDB.SetMaxOpenConns(envInt("DATABASE_MAX_OPEN_CONNS", 100))
	sqlDB.SetConnMaxLifetime(time.Hour)
	log.Printf("[db] connected to %s\n", os.Getenv("DATABASE_NAME"))

	db = _db
	return _db
}

// NewDB Replace db instance with custom gorm implementation
func NewDB(newdb *gorm.DB) {
	db = newdb
}
