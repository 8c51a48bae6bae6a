package scenes

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"scene-sync/core/crypto"
	"scene-sync/core/element"
	"scene-sync/core/logger"
	"scene-sync/core/metrics"
	"scene-sync/core/reconcile"
	"scene-sync/core/versioncache"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// SaveResult is the outcome of SaveScene. Written is false for a no-op save,
// in which case Scene is nil.
type SaveResult struct {
	Scene        element.Scene
	Written      bool
	SceneVersion int64
}

// Service loads and saves encrypted room scenes.
type Service struct {
	repo   Repository
	codec  crypto.Codec
	cache  *versioncache.Cache
	logger *zap.Logger
	loads  singleflight.Group
}

// NewService creates a new scene service.
func NewService(repo Repository, codec crypto.Codec, cache *versioncache.Cache, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		codec:  codec,
		cache:  cache,
		logger: logger,
	}
}

// LoadScene fetches and decrypts the scene of a room. It returns
// ErrSceneNotFound for an empty room. With a connection id, the loaded scene is
// recorded as synced for that connection.
func (s *Service) LoadScene(ctx context.Context, roomID, key, connectionID string) (element.Scene, error) {
	l := logger.WithRoom(s.logger, roomID, connectionID)

	snapshot, err := s.fetchShared(ctx, roomID)
	if errors.Is(err, ErrSnapshotNotFound) {
		metrics.SceneLoads.WithLabelValues(metrics.ResultNotFound).Inc()
		return nil, ErrSceneNotFound
	}
	if err != nil {
		l.Error("Failed to fetch scene", zap.Error(err))
		metrics.SceneLoads.WithLabelValues(metrics.ResultError).Inc()
		return nil, &StorageError{Op: "fetch", RoomID: roomID, Err: err}
	}

	scene, err := s.open(snapshot, key)
	if err != nil {
		metrics.SceneLoads.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	s.cache.Set(connectionID, scene)
	metrics.SceneLoads.WithLabelValues(metrics.ResultOK).Inc()
	l.Debug("Scene loaded", zap.Int("elements", len(scene)), zap.Int64("scene_version", scene.Version()))
	return scene, nil
}

// SaveScene reconciles local against the stored scene and replaces the stored
// snapshot with the merge. It is a no-op without a room context or when local
// was already synced over the connection. A failed save never updates the
// version cache.
func (s *Service) SaveScene(ctx context.Context, roomID, key string, local element.Scene, connectionID string) (*SaveResult, error) {
	if roomID == "" || key == "" || s.cache.IsAlreadySynced(connectionID, local) {
		metrics.SceneSaves.WithLabelValues(metrics.ResultNoOp).Inc()
		return &SaveResult{}, nil
	}
	if err := local.Validate(); err != nil {
		return nil, err
	}

	l := logger.WithRoom(s.logger, roomID, connectionID)

	merged, err := s.merge(ctx, l, roomID, key, local)
	if err != nil {
		metrics.SceneSaves.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	snapshot, err := s.seal(roomID, key, merged)
	if err != nil {
		metrics.SceneSaves.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		metrics.SceneSaves.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	start := time.Now()
	err = s.repo.Upsert(ctx, snapshot)
	metrics.ObserveStore("upsert", start)
	if err != nil {
		l.Error("Failed to store scene", zap.Error(err))
		metrics.SceneSaves.WithLabelValues(metrics.ResultError).Inc()
		return nil, &StorageError{Op: "upsert", RoomID: roomID, Err: err}
	}

	s.cache.Set(connectionID, merged)
	metrics.SceneSaves.WithLabelValues(metrics.ResultWritten).Inc()
	l.Info("Scene saved",
		zap.Int("elements", len(merged)),
		zap.Int64("scene_version", snapshot.SceneVersion))

	return &SaveResult{Scene: merged, Written: true, SceneVersion: snapshot.SceneVersion}, nil
}

// CloseConnection forgets the synced version of a closed connection.
func (s *Service) CloseConnection(connectionID string) {
	s.cache.Remove(connectionID)
}

func (s *Service) merge(ctx context.Context, l *zap.Logger, roomID, key string, local element.Scene) (element.Scene, error) {
	snapshot, err := s.fetch(ctx, roomID)
	if errors.Is(err, ErrSnapshotNotFound) {
		return local, nil
	}
	if err != nil {
		l.Error("Failed to fetch scene", zap.Error(err))
		return nil, &StorageError{Op: "fetch", RoomID: roomID, Err: err}
	}

	remote, err := s.open(snapshot, key)
	if err != nil {
		return nil, err
	}

	merged, summary := reconcile.Merge(local, remote)
	l.Debug("Scene reconciled",
		zap.Int("total", summary.TotalElements),
		zap.Int("local_only", summary.LocalOnly),
		zap.Int("remote_only", summary.RemoteOnly),
		zap.Int("local_wins", summary.LocalWins),
		zap.Int("remote_wins", summary.RemoteWins),
		zap.Int("tombstones", summary.Tombstones))
	return merged, nil
}

func (s *Service) fetch(ctx context.Context, roomID string) (*Snapshot, error) {
	defer metrics.ObserveStore("fetch", time.Now())
	return s.repo.Fetch(ctx, roomID)
}

// fetchShared collapses concurrent loads of one room into a single fetch.
// The shared fetch ignores any one caller's cancellation; each caller stops
// waiting when its own ctx is done. Saves never share a fetch, so each
// reconciles against its own read.
func (s *Service) fetchShared(ctx context.Context, roomID string) (*Snapshot, error) {
	ch := s.loads.DoChan(roomID, func() (any, error) {
		return s.fetch(context.WithoutCancel(ctx), roomID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	}
}

// open decrypts and decodes a snapshot. Authentication failures are returned
// unchanged.
func (s *Service) open(snapshot *Snapshot, key string) (element.Scene, error) {
	iv, err := base64.StdEncoding.DecodeString(snapshot.IV)
	if err != nil {
		return nil, fmt.Errorf("%w: iv: %v", ErrCorruptSnapshot, err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(snapshot.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext: %v", ErrCorruptSnapshot, err)
	}

	plaintext, err := s.codec.Decrypt(iv, ciphertext, key)
	if err != nil {
		return nil, err
	}

	scene, err := element.Decode(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	return scene, nil
}

func (s *Service) seal(roomID, key string, scene element.Scene) (*Snapshot, error) {
	plaintext, err := scene.Encode()
	if err != nil {
		return nil, err
	}

	ciphertext, iv, err := s.codec.Encrypt(key, plaintext)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		ID:           roomID,
		SceneVersion: scene.Version(),
		IV:           base64.StdEncoding.EncodeToString(iv),
		Ciphertext:   base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}
