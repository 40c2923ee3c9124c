package database

import (
	"testing"
	"time"

	"homeledger/internal/config"
	"homeledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CreateTestAccount(t *testing.T, db *DB, name, kind string) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:     name,
		Kind:     kind,
		Currency: "USD",
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}

	return account
}

func CreateTestCategory(t *testing.T, db *DB, name, kind string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:   name,
		Kind:   kind,
		Active: true,
	}

	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	return category
}

func CreateTestTransaction(t *testing.T, db *DB, account *models.Account, date time.Time, amount float64, payee string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		AccountID: account.ID,
		Date:      date,
		Amount:    decimal.NewFromFloat(amount),
		Payee:     payee,
		Source:    models.TransactionSourceManual,
	}

	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}

	return tx
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"payments",
		"statement_line_items",
		"credit_card_statements",
		"transactions",
		"recurring_rules",
		"categorization_rules",
		"budgets",
		"categories",
		"accounts",
	}

	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}
