package health

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"scene-sync/core/database"
	"scene-sync/core/storage"
	"scene-sync/feature/scenes"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusMissing = "missing"
	StatusFixed   = "fixed"
)

// ErrUnavailable is returned for a dependency that was never configured.
var ErrUnavailable = errors.New("not configured")

// ComponentReport is the result of checking one dependency.
type ComponentReport struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// SchemaReport is the result of checking the scenes table.
type SchemaReport struct {
	Table          string   `json:"table"`
	Status         string   `json:"status"`
	MissingColumns []string `json:"missing_columns"`
	Error          string   `json:"error,omitempty"`
}

// Report combines every check.
type Report struct {
	Healthy  bool            `json:"healthy"`
	Database ComponentReport `json:"database"`
	Schema   SchemaReport    `json:"schema"`
	Storage  ComponentReport `json:"storage"`
}

// Service checks the database and object storage the sync engine relies on.
type Service struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new health service. db and client may be nil.
func NewService(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Check runs every check. With fix, a missing table or column is migrated
// and a missing bucket is created.
func (s *Service) Check(ctx context.Context, fix bool) *Report {
	report := &Report{Healthy: true}

	if err := s.CheckDatabase(ctx); err != nil {
		report.Healthy = false
		report.Database = ComponentReport{Status: StatusError, Error: err.Error()}
		report.Schema = SchemaReport{Table: tableName(), Status: StatusError, MissingColumns: []string{}, Error: "database unavailable"}
	} else {
		report.Database = ComponentReport{Status: StatusOK}
		report.Schema = s.checkSchema(fix)
		if report.Schema.Status == StatusError || report.Schema.Status == StatusMissing {
			report.Healthy = false
		}
	}

	report.Storage = s.checkStorage(ctx, fix)
	if report.Storage.Status == StatusError || report.Storage.Status == StatusMissing {
		report.Healthy = false
	}

	return report
}

// CheckDatabase pings the database.
func (s *Service) CheckDatabase(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database: %w", ErrUnavailable)
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CheckSchema returns the snapshot columns missing from the scenes table.
func (s *Service) CheckSchema() ([]string, error) {
	return database.MissingColumns(s.db, tableName(), modelColumns(scenes.Snapshot{}))
}

// FixSchema migrates the scenes table.
func (s *Service) FixSchema() error {
	return scenes.AutoMigrate(s.db)
}

// CheckBucket reports whether the files bucket exists.
func (s *Service) CheckBucket(ctx context.Context) (bool, error) {
	if s.client == nil {
		return false, fmt.Errorf("storage: %w", ErrUnavailable)
	}
	return s.client.BucketExists(ctx, s.bucket)
}

// FixBucket creates the files bucket.
func (s *Service) FixBucket(ctx context.Context) error {
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

func (s *Service) checkSchema(fix bool) SchemaReport {
	report := SchemaReport{Table: tableName(), Status: StatusOK, MissingColumns: []string{}}

	missing, err := s.CheckSchema()
	if err != nil {
		report.Status = StatusError
		report.Error = err.Error()
		return report
	}
	if len(missing) == 0 {
		return report
	}

	report.MissingColumns = missing
	report.Status = StatusMissing
	s.logger.Warn("Missing scene columns detected", zap.Strings("missing", missing))

	if fix {
		s.logger.Info("Migrating scenes table")
		if err := s.FixSchema(); err != nil {
			report.Status = StatusError
			report.Error = err.Error()
			return report
		}
		report.Status = StatusFixed
	}
	return report
}

func (s *Service) checkStorage(ctx context.Context, fix bool) ComponentReport {
	exists, err := s.CheckBucket(ctx)
	if err != nil {
		return ComponentReport{Status: StatusError, Error: err.Error()}
	}
	if exists {
		return ComponentReport{Status: StatusOK}
	}

	s.logger.Warn("Files bucket missing", zap.String("bucket", s.bucket))
	if !fix {
		return ComponentReport{Status: StatusMissing}
	}

	s.logger.Info("Creating files bucket", zap.String("bucket", s.bucket))
	if err := s.FixBucket(ctx); err != nil {
		return ComponentReport{Status: StatusError, Error: err.Error()}
	}
	return ComponentReport{Status: StatusFixed}
}

func tableName() string {
	return scenes.Snapshot{}.TableName()
}

// modelColumns lists the column names declared in a model's gorm tags.
func modelColumns(model any) []string {
	t := reflect.TypeOf(model)
	var columns []string
	for i := 0; i < t.NumField(); i++ {
		if col := parseGormColumn(t.Field(i).Tag.Get("gorm")); col != "" {
			columns = append(columns, col)
		}
	}
	return columns
}

func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}
