package boot

import (
	"log"
	"time"
	"visitrack/src/db"
	"visitrack/src/lib"
	"visitrack/src/models"
	"visitrack/src/types"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.Event{},
		&models.Visitor{},
		&models.QRScan{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	id, err := lib.CreateCronJob(CheckoutSweep, 10*time.Minute)
	if err != nil {
		log.Printf("Error creating checkout sweep job: %s\n", err.Error())
		return
	}
	log.Printf("Scheduled checkout sweep job: %s\n", *id)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}

// CheckoutSweep closes out visitors still marked present once their event has
// ended, so reports do not show people as on-site days later.
func CheckoutSweep() {
	conn := db.GetDb()
	now := time.Now()
	res := conn.
		Model(&models.Visitor{}).
		Where("status IN ?", []types.VisitorStatus{types.VISITOR_VISITED, types.VISITOR_CHECKED_IN}).
		Where("event_end_date IS NOT NULL AND event_end_date < ?", now).
		Updates(map[string]any{
			"status":         types.VISITOR_CHECKED_OUT,
			"check_out_time": now,
		})
	if res.Error != nil {
		log.Printf("Error on checkout sweep: %s\n", res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Checkout sweep closed out %d visitors\n", res.RowsAffected)
	}
}
