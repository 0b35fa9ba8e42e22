package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestTableNames(t *testing.T) {
	require.Equal(t, "faqs", FAQ{}.TableName())
}

func TestAllModelsMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(All()...))

	for _, table := range []string{"users", "payouts", "gemstones", "auctions", "bids", "payments", "online_payments", "faqs"} {
		require.True(t, db.Migrator().HasTable(table), table)
	}
}
