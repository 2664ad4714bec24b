package gcs

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"rpatwari/si-log-extract/internal/config"
	"rpatwari/si-log-extract/internal/fileutils"
	"rpatwari/si-log-extract/internal/logging"
	"rpatwari/si-log-extract/internal/models"
)

// RunFunc executes the pipeline against a local run-config path.
type RunFunc func(configPath string) (*models.RunStats, error)

// Bridge mirrors gs:// prefixes into local workspaces and back. The
// storage client is created on first use and owned by the bridge
// instance.
type Bridge struct {
	logger logging.Logger

	clientOnce sync.Once
	client     *storage.Client
	clientErr  error
}

// NewBridge creates a bridge; no connection is made until the first
// remote operation.
func NewBridge(logger logging.Logger) *Bridge {
	return &Bridge{logger: logger.WithField("component", "GCSBridge")}
}

func (b *Bridge) storageClient(ctx context.Context) (*storage.Client, error) {
	b.clientOnce.Do(func() {
		b.client, b.clientErr = storage.NewClient(ctx)
		if b.clientErr != nil {
			b.clientErr = fmt.Errorf("failed to create storage client: %w", b.clientErr)
		}
	})
	return b.client, b.clientErr
}

// Close releases the storage client if one was created.
func (b *Bridge) Close() error {
	if b.client != nil {
		return b.client.Close()
	}
	return nil
}

// ListMatching returns the gs:// URIs of all objects whose key matches
// the wildcard pattern in the key part of gsPattern. Listing is bounded
// by the pattern's static prefix.
func (b *Bridge) ListMatching(ctx context.Context, gsPattern string) ([]string, error) {
	bucketName, keyPattern, err := SplitGSURI(gsPattern)
	if err != nil {
		return nil, err
	}
	client, err := b.storageClient(ctx)
	if err != nil {
		return nil, err
	}

	prefix := PrefixBeforeWildcard(keyPattern)
	it := client.Bucket(bucketName).Objects(ctx, &storage.Query{Prefix: prefix})
	var uris []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list gs://%s/%s: %w", bucketName, prefix, err)
		}
		if MatchKey(attrs.Name, keyPattern) {
			uris = append(uris, "gs://"+bucketName+"/"+attrs.Name)
		}
	}
	return uris, nil
}

// ReadObject downloads one object.
func (b *Bridge) ReadObject(ctx context.Context, gsURI string) ([]byte, error) {
	bucketName, key, err := SplitGSURI(gsURI)
	if err != nil {
		return nil, err
	}
	client, err := b.storageClient(ctx)
	if err != nil {
		return nil, err
	}

	r, err := client.Bucket(bucketName).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", gsURI, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", gsURI, err)
	}
	return data, nil
}

// WriteObject uploads one object, setting the content type by extension.
func (b *Bridge) WriteObject(ctx context.Context, gsURI string, data []byte) error {
	bucketName, key, err := SplitGSURI(gsURI)
	if err != nil {
		return err
	}
	client, err := b.storageClient(ctx)
	if err != nil {
		return err
	}

	w := client.Bucket(bucketName).Object(key).NewWriter(ctx)
	if ct := contentTypeFor(key); ct != "" {
		w.ContentType = ct
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to write %s: %w", gsURI, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", gsURI, err)
	}
	return nil
}

// DeletePrefix removes every object under the given gs:// prefix and
// returns how many were deleted.
func (b *Bridge) DeletePrefix(ctx context.Context, gsPrefix string) (int, error) {
	bucketName, keyPrefix, err := SplitGSURI(gsPrefix)
	if err != nil {
		return 0, err
	}
	client, err := b.storageClient(ctx)
	if err != nil {
		return 0, err
	}

	prefix := strings.TrimRight(keyPrefix, "/") + "/"
	bucket := client.Bucket(bucketName)
	it := bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	count := 0
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to list gs://%s/%s: %w", bucketName, prefix, err)
		}
		if err := bucket.Object(attrs.Name).Delete(ctx); err != nil {
			return count, fmt.Errorf("failed to delete gs://%s/%s: %w", bucketName, attrs.Name, err)
		}
		count++
	}
	return count, nil
}

// RunWithMirror runs runFn against rootURI. A local root passes straight
// through as the config path. A gs:// root (the prefix holding
// config.json, or the config.json URI itself) is mirrored into a one-shot
// workspace under the OS temp directory, runFn receives the mirrored
// config.json, and files the run created or changed are uploaded back
// under the prefix. The returned stats carry the transfer counters and
// the workspace path; the workspace is kept for inspection.
func (b *Bridge) RunWithMirror(ctx context.Context, rootURI string, runFn RunFunc) (*models.RunStats, error) {
	if !IsGSURI(rootURI) {
		return runFn(rootURI)
	}

	root := strings.TrimSuffix(strings.TrimRight(rootURI, "/"), "/config.json")

	workspace := filepath.Join(os.TempDir(), "gcs_mirror_"+strings.ReplaceAll(uuid.NewString(), "-", ""))
	if err := fileutils.EnsureDirectoryExists(workspace); err != nil {
		return nil, err
	}

	downloaded, err := b.mirrorDown(ctx, root, workspace)
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(workspace, "config.json")
	if !fileutils.FileExists(configPath) {
		return nil, fmt.Errorf("no config.json under %s", root)
	}

	baseline, err := snapshotTree(workspace)
	if err != nil {
		return nil, err
	}

	b.clearRemoteOutput(ctx, root, workspace, configPath)

	stats, err := runFn(configPath)
	if err != nil {
		return nil, err
	}

	uploaded, err := b.syncBack(ctx, root, workspace, baseline)
	if err != nil {
		return nil, err
	}

	stats.Downloaded = downloaded
	stats.Uploaded = uploaded
	stats.MirrorWorkspace = workspace
	return stats, nil
}

// mirrorDown copies every object under the root prefix into the
// workspace, stripping the prefix so config.json lands at the workspace
// root.
func (b *Bridge) mirrorDown(ctx context.Context, rootURI, workspace string) (int, error) {
	uris, err := b.ListMatching(ctx, rootURI+"/*")
	if err != nil {
		return 0, err
	}

	_, keyPrefix, err := SplitGSURI(rootURI)
	if err != nil {
		return 0, err
	}
	listPrefix := ""
	if p := strings.TrimRight(keyPrefix, "/"); p != "" {
		listPrefix = p + "/"
	}

	count := 0
	for _, uri := range uris {
		// Folder placeholder objects carry no content.
		if strings.HasSuffix(uri, "/") {
			continue
		}
		data, err := b.ReadObject(ctx, uri)
		if err != nil {
			return count, err
		}
		_, key, err := SplitGSURI(uri)
		if err != nil {
			return count, err
		}
		rel := strings.TrimPrefix(key, listPrefix)
		target := filepath.Join(workspace, filepath.FromSlash(rel))
		if err := fileutils.WriteFile(target, data, 0644); err != nil {
			return count, err
		}
		count++
	}

	b.logger.Info("Mirrored remote prefix",
		logging.Field{Key: "root", Value: rootURI},
		logging.Field{Key: "workspace", Value: workspace},
		logging.Field{Key: "objects", Value: count})
	return count, nil
}

// clearRemoteOutput deletes the remote output subtree before a fresh run.
// Failures are logged and the run continues; the sync step re-uploads
// whatever the scan produces.
func (b *Bridge) clearRemoteOutput(ctx context.Context, rootURI, workspace, configPath string) {
	cfg, err := config.LoadRunConfig(configPath)
	if err != nil || !cfg.Fresh || cfg.Output == "" {
		return
	}
	rel, err := filepath.Rel(workspace, cfg.Output)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}

	prefix := rootURI + "/" + filepath.ToSlash(rel)
	deleted, err := b.DeletePrefix(ctx, prefix)
	if err != nil {
		b.logger.WithError(err).Warn("Could not clear remote output prefix",
			logging.Field{Key: "prefix", Value: prefix})
		return
	}
	b.logger.Info("Cleared remote output prefix",
		logging.Field{Key: "prefix", Value: prefix},
		logging.Field{Key: "deleted", Value: deleted})
}

type fileStamp struct {
	size    int64
	modTime time.Time
}

func snapshotTree(root string) (map[string]fileStamp, error) {
	stamps := make(map[string]fileStamp)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		stamps[filepath.ToSlash(rel)] = fileStamp{size: info.Size(), modTime: info.ModTime()}
		return nil
	})
	return stamps, err
}

// syncBack uploads every workspace file that is new or changed since the
// baseline snapshot.
func (b *Bridge) syncBack(ctx context.Context, rootURI, workspace string, baseline map[string]fileStamp) (int, error) {
	uploaded := 0
	err := filepath.WalkDir(workspace, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(workspace, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if prev, ok := baseline[key]; ok && prev.size == info.Size() && prev.modTime.Equal(info.ModTime()) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := b.WriteObject(ctx, rootURI+"/"+key, data); err != nil {
			return err
		}
		uploaded++
		return nil
	})
	if err != nil {
		return uploaded, fmt.Errorf("failed to sync workspace back to %s: %w", rootURI, err)
	}

	b.logger.Info("Uploaded run artifacts",
		logging.Field{Key: "root", Value: rootURI},
		logging.Field{Key: "files", Value: uploaded})
	return uploaded, nil
}
