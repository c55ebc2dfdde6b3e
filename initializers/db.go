package initializers

import (
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectToDB opens the database named by DB_DRIVER. MySQL is the
// production driver; the default is an embedded SQLite file so the
// demo runs with no setup.
func ConnectToDB() {
	var (
		db  *gorm.DB
		err error
	)

	switch os.Getenv("DB_DRIVER") {
	case "mysql":
		db, err = gorm.Open(mysql.Open(os.Getenv("DB_URL")), &gorm.Config{})
	default:
		source := os.Getenv("DB_SOURCE")
		if source == "" {
			source = "farmtodoor.db"
		}
		db, err = gorm.Open(sqlite.Open(source), &gorm.Config{})
	}
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	DB = db
}
