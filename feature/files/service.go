package files

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"scene-sync/core/crypto"
	"scene-sync/core/filecodec"
	"scene-sync/core/metrics"
	"scene-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultMimeType is reported for files stored without a mime type.
const DefaultMimeType = "application/octet-stream"

// ErrObjectTooLarge is returned when a stored object exceeds the decode limit.
var ErrObjectTooLarge = errors.New("object too large")

// File is an encoded file ready for upload.
type File struct {
	ID   string `json:"id"`
	Data []byte `json:"data"`
}

// FileRecord is a decoded file returned by a download.
// Timestamps are milliseconds since the epoch.
type FileRecord struct {
	ID            string `json:"id"`
	MimeType      string `json:"mimeType"`
	Data          []byte `json:"data"`
	Created       int64  `json:"created"`
	LastRetrieved int64  `json:"lastRetrieved"`
}

// UploadResult partitions the distinct uploaded ids.
type UploadResult struct {
	Saved   []string `json:"savedFiles"`
	Errored []string `json:"erroredFiles"`
}

// DownloadResult holds the recovered files and the ids that failed.
type DownloadResult struct {
	Loaded  []FileRecord    `json:"loadedFiles"`
	Errored map[string]bool `json:"erroredFiles"`
}

// Service uploads and downloads encrypted room files.
type Service struct {
	client storage.Client
	bucket string
	cfg    Config
	codec  crypto.Codec
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new file service.
func NewService(client storage.Client, bucket string, cfg Config, codec crypto.Codec, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		cfg:    cfg,
		codec:  codec,
		logger: logger,
		now:    time.Now,
	}
}

// UploadBatch stores every file under prefix. A failing file is reported in
// Errored and never affects the others. Repeated ids are uploaded once.
func (s *Service) UploadBatch(ctx context.Context, prefix string, files []File) UploadResult {
	unique := make([]File, 0, len(files))
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		if _, ok := seen[f.ID]; ok {
			continue
		}
		seen[f.ID] = struct{}{}
		unique = append(unique, f)
	}

	errs := make([]error, len(unique))
	g := s.group()
	for i, f := range unique {
		g.Go(func() error {
			errs[i] = s.upload(ctx, prefix, f)
			return nil
		})
	}
	_ = g.Wait()

	result := UploadResult{Saved: []string{}, Errored: []string{}}
	for i, f := range unique {
		if errs[i] != nil {
			s.logger.Warn("File upload failed",
				zap.String("prefix", prefix),
				zap.String("file_id", f.ID),
				zap.Error(errs[i]))
			metrics.FileItems.WithLabelValues("upload", metrics.ResultError).Inc()
			result.Errored = append(result.Errored, f.ID)
			continue
		}
		metrics.FileItems.WithLabelValues("upload", metrics.ResultOK).Inc()
		result.Saved = append(result.Saved, f.ID)
	}
	return result
}

func (s *Service) upload(ctx context.Context, prefix string, f File) error {
	if f.ID == "" {
		return errors.New("empty file id")
	}
	defer metrics.ObserveStore("put_object", time.Now())

	_, err := s.client.PutObject(ctx, s.bucket, storage.ObjectKey(prefix, f.ID),
		bytes.NewReader(f.Data), int64(len(f.Data)),
		minio.PutObjectOptions{
			ContentType:  DefaultMimeType,
			CacheControl: fmt.Sprintf("public, max-age=%d", s.cfg.CacheMaxAgeSeconds),
		})
	return err
}

// DownloadBatch fetches and decodes the files with the given ids. Repeated ids
// are fetched once; missing, corrupted or undecryptable files are reported in
// Errored while the rest of the batch proceeds.
func (s *Service) DownloadBatch(ctx context.Context, prefix, key string, ids []string) DownloadResult {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	records := make([]FileRecord, len(unique))
	errs := make([]error, len(unique))
	g := s.group()
	for i, id := range unique {
		g.Go(func() error {
			records[i], errs[i] = s.download(ctx, prefix, key, id)
			return nil
		})
	}
	_ = g.Wait()

	result := DownloadResult{Loaded: []FileRecord{}, Errored: map[string]bool{}}
	for i, id := range unique {
		if errs[i] != nil {
			s.logger.Warn("File download failed",
				zap.String("prefix", prefix),
				zap.String("file_id", id),
				zap.Bool("missing", storage.IsNotFound(errs[i])),
				zap.Error(errs[i]))
			metrics.FileItems.WithLabelValues("download", metrics.ResultError).Inc()
			result.Errored[id] = true
			continue
		}
		metrics.FileItems.WithLabelValues("download", metrics.ResultOK).Inc()
		result.Loaded = append(result.Loaded, records[i])
	}
	return result
}

func (s *Service) download(ctx context.Context, prefix, key, id string) (FileRecord, error) {
	raw, err := s.fetch(ctx, storage.ObjectKey(prefix, id))
	if err != nil {
		return FileRecord{}, err
	}

	data, meta, err := filecodec.Decode(key, raw)
	if err != nil {
		return FileRecord{}, err
	}

	record := FileRecord{ID: id, MimeType: DefaultMimeType, Data: data}
	now := s.now().UnixMilli()
	record.Created = now
	record.LastRetrieved = now
	if meta != nil {
		if meta.MimeType != "" {
			record.MimeType = meta.MimeType
		}
		if meta.Created > 0 {
			record.Created = meta.Created
			record.LastRetrieved = meta.Created
		}
		if meta.LastRetrieved > 0 {
			record.LastRetrieved = meta.LastRetrieved
		}
	}
	return record, nil
}

func (s *Service) fetch(ctx context.Context, objectName string) ([]byte, error) {
	defer metrics.ObserveStore("get_object", time.Now())

	obj, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	raw, err := io.ReadAll(io.LimitReader(obj, filecodec.MaxDecodedSize+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > filecodec.MaxDecodedSize {
		return nil, ErrObjectTooLarge
	}
	return raw, nil
}

// EncodeFile builds the encrypted envelope for data, ready for UploadBatch.
func (s *Service) EncodeFile(key, id, mimeType string, data []byte) ([]byte, error) {
	now := s.now().UnixMilli()
	return filecodec.Encode(s.codec, key, data, &filecodec.Metadata{
		ID:            id,
		MimeType:      mimeType,
		Created:       now,
		LastRetrieved: now,
	}, s.cfg.Compression)
}

func (s *Service) group() *errgroup.Group {
	g := new(errgroup.Group)
	if s.cfg.Concurrency > 0 {
		g.SetLimit(s.cfg.Concurrency)
	}
	return g
}
