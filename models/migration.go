package models

import (
	"log"

	"github.com/airfinance/finbi_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&PayableRecord{}, &ReceivableRecord{},
		&SyncRun{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
