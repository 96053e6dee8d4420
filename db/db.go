package db

import (
	"fmt"
	"log"
	"os"

	"itemshare/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err = Migrate(DB); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.ItemRequest{},
		&models.Item{},
		&models.Booking{},
		&models.Comment{},
	); err != nil {
		return err
	}

	// last/next summaries scan approved bookings of one item by start time
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_item_start_approved
	  ON %s (item_id, starting DESC)
	  WHERE status = 'APPROVED';
	`, models.BookingTable, models.BookingTable)).Error; err != nil {
		return err
	}

	// comment eligibility looks for a finished approved booking per booker
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_booker_item_end_approved
	  ON %s (booker_id, item_id, ending)
	  WHERE status = 'APPROVED';
	`, models.BookingTable, models.BookingTable)).Error; err != nil {
		return err
	}

	return nil
}
