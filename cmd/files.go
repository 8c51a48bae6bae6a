package cmd

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"scene-sync/core/crypto"
	"scene-sync/core/storage"
	"scene-sync/feature/files"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	filesKey string
	filesDir string
)

// filesCmd represents the files command
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Upload or download room files",
	Long:  `Encrypts, uploads, downloads and decrypts room files against the configured bucket.`,
}

// filesUploadCmd represents the files upload command
var filesUploadCmd = &cobra.Command{
	Use:   "upload <prefix> <path>...",
	Short: "Encrypt and upload local files",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newFileService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		batch := make([]files.File, 0, len(args)-1)
		for _, path := range args[1:] {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			// Ids are content hashes, as generated by the drawing client
			sum := sha1.Sum(data)
			id := hex.EncodeToString(sum[:])

			encoded, err := svc.EncodeFile(filesKey, id, detectMimeType(path, data), data)
			if err != nil {
				return fmt.Errorf("failed to encode %s: %w", path, err)
			}
			batch = append(batch, files.File{ID: id, Data: encoded})
			logg.Debug("File encoded", zap.String("path", path), zap.String("file_id", id))
		}

		result := svc.UploadBatch(cmd.Context(), args[0], batch)

		fmt.Println("\n=== Upload ===")
		fmt.Printf("Saved: %d\n", len(result.Saved))
		for _, id := range result.Saved {
			fmt.Printf("  %s\n", id)
		}
		fmt.Printf("Errored: %d\n", len(result.Errored))
		for _, id := range result.Errored {
			fmt.Printf("  %s\n", id)
		}
		if len(result.Errored) > 0 {
			return fmt.Errorf("%d files failed to upload", len(result.Errored))
		}
		return nil
	},
}

// filesDownloadCmd represents the files download command
var filesDownloadCmd = &cobra.Command{
	Use:   "download <prefix> <fileId>...",
	Short: "Download and decrypt files into a directory",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newFileService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		if err := os.MkdirAll(filesDir, 0o755); err != nil {
			return err
		}

		result := svc.DownloadBatch(cmd.Context(), args[0], filesKey, args[1:])
		for _, rec := range result.Loaded {
			name := rec.ID
			if exts, _ := mime.ExtensionsByType(rec.MimeType); len(exts) > 0 {
				name += exts[0]
			}
			path := filepath.Join(filesDir, name)
			if err := os.WriteFile(path, rec.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			logg.Info("File downloaded", zap.String("file_id", rec.ID), zap.String("path", path))
		}

		fmt.Printf("Loaded: %d\n", len(result.Loaded))
		fmt.Printf("Errored: %d\n", len(result.Errored))
		for id := range result.Errored {
			fmt.Printf("  %s\n", id)
		}
		if len(result.Errored) > 0 {
			return fmt.Errorf("%d files failed to download", len(result.Errored))
		}
		return nil
	},
}

func newFileService() (*files.Service, *zap.Logger, error) {
	if filesKey == "" {
		return nil, nil, fmt.Errorf("--key is required")
	}

	cfg, logg, err := bootstrap()
	if err != nil {
		return nil, nil, err
	}

	codec, err := crypto.Lookup(cfg.Crypto.Algorithm)
	if err != nil {
		return nil, nil, err
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return files.NewService(client, cfg.Storage.Bucket, cfg.Files, codec, logg), logg, nil
}

func detectMimeType(path string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

func init() {
	filesCmd.PersistentFlags().StringVar(&filesKey, "key", "", "Room key")
	filesDownloadCmd.Flags().StringVarP(&filesDir, "dir", "d", ".", "Output directory")

	filesCmd.AddCommand(filesUploadCmd)
	filesCmd.AddCommand(filesDownloadCmd)
	RootCmd.AddCommand(filesCmd)
}
