// Package blob persists the state snapshot as a JSON object in a gocloud.dev bucket.
package blob

import (
	"context"
	"encoding/json"

	"novasalud/internal/domain/entity"
	"novasalud/internal/domain/repository"
	"novasalud/internal/errors"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Bucket drivers selectable through the bucket URL scheme.
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

const contentTypeJSON = "application/json"

type snapshotStore struct {
	bucket *blob.Bucket
	key    string
}

// Open opens the bucket at bucketURL, e.g. file:///var/lib/novasalud, s3://bucket or mem://.
func Open(ctx context.Context, bucketURL, key string) (repository.SnapshotStore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %q", bucketURL)
	}

	return NewSnapshotStore(bucket, key), nil
}

// NewSnapshotStore wraps an already opened bucket. The store owns the bucket and closes it on Close.
func NewSnapshotStore(bucket *blob.Bucket, key string) repository.SnapshotStore {
	return &snapshotStore{bucket: bucket, key: key}
}

func (s *snapshotStore) Load(ctx context.Context) (*entity.Snapshot, error) {
	data, err := s.bucket.ReadAll(ctx, s.key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, repository.ErrSnapshotNotFound
		}

		return nil, errors.Wrapf(err, "failed to read snapshot %q", s.key)
	}

	snapshot := new(entity.Snapshot)
	if err := json.Unmarshal(data, snapshot); err != nil {
		return nil, errors.Wrapf(err, "failed to decode snapshot %q", s.key)
	}

	return snapshot, nil
}

func (s *snapshotStore) Save(ctx context.Context, snapshot *entity.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "failed to encode snapshot")
	}

	if err := s.bucket.WriteAll(ctx, s.key, data, &blob.WriterOptions{ContentType: contentTypeJSON}); err != nil {
		return errors.Wrapf(err, "failed to write snapshot %q", s.key)
	}

	return nil
}

func (s *snapshotStore) Close() error {
	return errors.WithStack(s.bucket.Close())
}
