package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Kariqs/confectionary-api/initializers"
	"github.com/Kariqs/confectionary-api/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	bcryptCost = bcrypt.MinCost
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, initializers.SyncDatabase(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user, err := NewUserService(db).CreateUser(context.Background(), models.CreateUserDTO{
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func createProduct(t *testing.T, db *gorm.DB, title, price string) *models.Product {
	t.Helper()
	product := models.Product{
		Title:  title,
		Image:  title + ".png",
		Price:  decimal.RequireFromString(price),
		Status: models.ProductInStock,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

type publishedEvent struct {
	Topic   string
	Key     string
	Payload any
}

// recordingPublisher keeps every event it is asked to publish.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, topic, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Payload: payload})
	return nil
}

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	topics := make([]string, len(p.events))
	for i, e := range p.events {
		topics[i] = e.Topic
	}
	return topics
}
