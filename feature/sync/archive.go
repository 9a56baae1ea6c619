package sync

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"smartwarga/core/storage"

	"github.com/minio/minio-go/v7"
)

// Snapshot is an archived CSV export.
type Snapshot struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// Archiver stores CSV snapshots of pushes and exports in object storage.
type Archiver struct {
	client storage.Client
	bucket string
	prefix string
	now    func() time.Time
}

// NewArchiver creates an archiver writing under prefix in bucket.
func NewArchiver(client storage.Client, bucket, prefix string) *Archiver {
	return &Archiver{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

// Archive uploads content and returns the object key.
func (a *Archiver) Archive(ctx context.Context, content string) (string, error) {
	key := path.Join(a.prefix, "sync_warga_"+a.now().UTC().Format("20060102T150405Z")+".csv")

	_, err := a.client.PutObject(ctx, a.bucket, key, strings.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/csv; charset=utf-8",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot %s: %w", key, err)
	}
	return key, nil
}

// List returns the archived snapshots, newest first.
func (a *Archiver) List(ctx context.Context) ([]Snapshot, error) {
	prefix := a.prefix
	if prefix != "" {
		prefix += "/"
	}

	var out []Snapshot
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".csv") {
			continue
		}
		out = append(out, Snapshot{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key > out[j].Key })
	return out, nil
}
