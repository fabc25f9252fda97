package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ONESO-goat/CODEX/internal/logger"
)

// Backup mirrors the agent's JSON documents to an S3-compatible store.
// It is optional: the agent runs fully local unless an endpoint is set.
type Backup struct {
	mc     *minio.Client
	bucket string
}

type BackupConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

func NewBackup(cfg BackupConfig) (*Backup, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	return &Backup{mc: mc, bucket: cfg.Bucket}, nil
}

// Init creates the backup bucket if it doesn't exist
func (b *Backup) Init(ctx context.Context) error {
	exists, err := b.mc.BucketExists(ctx, b.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", b.bucket, err)
	}

	if !exists {
		if err := b.mc.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", b.bucket, err)
		}
		logger.Info("backup bucket created", "bucket", b.bucket)
	}

	return nil
}

// Mirror uploads every JSON document under the store root.
func (b *Backup) Mirror(ctx context.Context, store *DocStore) error {
	names, err := store.Documents()
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(store.Root(), name))
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		if err := b.upload(ctx, name, data); err != nil {
			return err
		}
	}

	return nil
}

func (b *Backup) upload(ctx context.Context, name string, data []byte) error {
	_, err := b.mc.PutObject(ctx, b.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("upload %s/%s: %w", b.bucket, name, err)
	}

	logger.Debug("document uploaded", "bucket", b.bucket, "name", name, "size", len(data))
	return nil
}
