package migration

import (
	"github.com/khanonymous/relay-backend/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for every relay table. Tables are created when
// missing and altered in place when the schema grows a column.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Correlation{},
		&domain.Block{},
		&domain.Report{},
		&domain.LinkClick{},
	)
}
