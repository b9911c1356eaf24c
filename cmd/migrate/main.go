package main

import (
	"fmt"
	"log"
	"os"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/khanonymous/relay-backend/internal/config"
	"github.com/khanonymous/relay-backend/internal/migration"
)

func main() {
	config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}

	cfg, err := config.Load(fmt.Sprintf("configs/config.%s.yaml", env))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	mysqlCfg, err := mysqldriver.ParseDSN(cfg.Database.GetDSN())
	if err != nil {
		log.Fatalf("Failed to parse DSN: %v", err)
	}

	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration completed")
}
