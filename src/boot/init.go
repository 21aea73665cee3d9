package boot

import (
	"bts/src/common"
	"bts/src/config"
	"bts/src/db"
	"bts/src/lib"
	"bts/src/models"
	"log"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.Account{},
		&models.Route{},
		&models.Stop{},
		&models.Bus{},
		&models.BusSeat{},
		&models.Trip{},
		&models.FareRule{},
		&models.SeatHold{},
		&models.Ticket{},
		&models.Setting{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// SeedSettings makes sure every known settings key has a row, so operators
// can edit values without inserting by hand.
func SeedSettings(db *gorm.DB) {
	defaults := map[string]string{
		config.KeyMaxSeatHoldMinutes:   "10",
		config.KeyCancelBeforeMinutes:  "5",
		config.KeyMaxBaggageWeightKg:   "20",
		config.KeyBaggageFeePercentage: "10",
	}
	for key, value := range defaults {
		setting := models.Setting{SettingKey: key, SettingValue: value}
		if err := db.
			Where(&models.Setting{SettingKey: key}).
			FirstOrCreate(&setting).
			Error; err != nil {
			log.Printf("Could not seed setting %s: %s\n", key, err.Error())
		}
	}
}

// InitScheduler registers the maintenance jobs: the expired-hold reaper, the
// no-show sweep and the periodic settings reload. None of them is load-bearing
// for correctness.
func InitScheduler(engine *common.Engine, settings config.Provider) {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	if _, err := lib.CreateCronJob(engine.ReapExpiredHolds, 10*time.Minute); err != nil {
		log.Printf("Error scheduling hold reaper: %s\n", err.Error())
	}
	if _, err := lib.CreateCronJob(engine.ExpireNoShows, 15*time.Minute); err != nil {
		log.Printf("Error scheduling no-show sweep: %s\n", err.Error())
	}
	if _, err := lib.CreateCronJob(func() {
		if err := settings.Reload(); err != nil {
			log.Printf("[settings] reload failed: %s\n", err.Error())
		}
	}, time.Minute); err != nil {
		log.Printf("Error scheduling settings reload: %s\n", err.Error())
	}
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Printf("Error shutting down Scheduler: %s\n", err.Error())
	}
}
