package health

import (
	"context"
	"errors"
	"testing"

	"scene-sync/core/database"
	"scene-sync/core/storage/mocks"
	"scene-sync/feature/scenes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testBucket = "test-bucket"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func TestCheck_Healthy(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, scenes.AutoMigrate(db))
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, testBucket).Return(true, nil)

	report := NewService(db, client, testBucket, zap.NewNop()).Check(context.Background(), false)

	assert.True(t, report.Healthy)
	assert.Equal(t, StatusOK, report.Database.Status)
	assert.Equal(t, StatusOK, report.Schema.Status)
	assert.Empty(t, report.Schema.MissingColumns)
	assert.Equal(t, StatusOK, report.Storage.Status)
}

func TestCheck_MissingWithoutFix(t *testing.T) {
	db := setupTestDB(t)
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, testBucket).Return(false, nil)

	report := NewService(db, client, testBucket, zap.NewNop()).Check(context.Background(), false)

	assert.False(t, report.Healthy)
	assert.Equal(t, StatusMissing, report.Schema.Status)
	assert.ElementsMatch(t, []string{"id", "scene_version", "iv", "ciphertext", "created_at", "updated_at"}, report.Schema.MissingColumns)
	assert.Equal(t, StatusMissing, report.Storage.Status)
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheck_Fix(t *testing.T) {
	db := setupTestDB(t)
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, testBucket).Return(false, nil)
	client.On("MakeBucket", mock.Anything, testBucket, mock.Anything).Return(nil)

	svc := NewService(db, client, testBucket, zap.NewNop())
	report := svc.Check(context.Background(), true)

	assert.True(t, report.Healthy)
	assert.Equal(t, StatusFixed, report.Schema.Status)
	assert.Equal(t, StatusFixed, report.Storage.Status)

	missing, err := svc.CheckSchema()
	require.NoError(t, err)
	assert.Empty(t, missing)
	client.AssertExpectations(t)
}

func TestCheck_Unavailable(t *testing.T) {
	report := NewService(nil, nil, testBucket, zap.NewNop()).Check(context.Background(), true)

	assert.False(t, report.Healthy)
	assert.Equal(t, StatusError, report.Database.Status)
	assert.Equal(t, StatusError, report.Schema.Status)
	assert.Equal(t, StatusError, report.Storage.Status)
}

func TestCheck_BucketError(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, scenes.AutoMigrate(db))
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, testBucket).Return(false, errors.New("access denied"))

	report := NewService(db, client, testBucket, zap.NewNop()).Check(context.Background(), true)

	assert.False(t, report.Healthy)
	assert.Equal(t, StatusError, report.Storage.Status)
	assert.Equal(t, "access denied", report.Storage.Error)
}

func TestModelColumns(t *testing.T) {
	assert.Equal(t,
		[]string{"id", "scene_version", "iv", "ciphertext", "created_at", "updated_at"},
		modelColumns(scenes.Snapshot{}))
	assert.Equal(t, "", parseGormColumn("primaryKey;size:255"))
}
