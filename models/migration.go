package models

import (
	"log"

	"github.com/namnm309/evdealer-backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Region{}, &Dealer{}, &DealerContract{},
		&Brand{}, &Category{}, &Product{},
		&User{},
		&Customer{},
		&Order{}, &PurchaseOrder{},
		&TestDrive{}, &Feedback{}, &Promotion{},
		&InventoryAllocation{}, &InventoryTransaction{},
		&History{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
