package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"ai-charstudio-be/internal/repository/unitofwork"
	"ai-charstudio-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func connectTestDB(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()

	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	return unitofwork.NewRepositoryFactory(gormDB)
}

func TestGormConnection(t *testing.T) {
	uowFactory := connectTestDB(t)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.AccountRepository())
	assert.NotNil(t, uow.ProjectRepository())
	assert.NotNil(t, uow.PaymentRepository())
	assert.NotNil(t, uow.CreditTransactionRepository())

	t.Run("Check Account Repository", func(t *testing.T) {
		count, err := uow.AccountRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Account count: %d", count)
	})

	t.Run("Check Project Repository", func(t *testing.T) {
		count, err := uow.ProjectRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Project count: %d", count)
	})

	t.Run("Check Credit Transaction Repository", func(t *testing.T) {
		count, err := uow.CreditTransactionRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("CreditTransaction count: %d", count)
	})
}
