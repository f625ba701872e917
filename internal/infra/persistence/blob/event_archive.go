package blob

import (
	"context"
	"encoding/json"
	"path"
	"strings"

	"novasalud/internal/domain/repository"
	"novasalud/internal/domain/service"
	"novasalud/internal/errors"

	"gocloud.dev/blob"
)

type eventArchive struct {
	bucket *blob.Bucket
	prefix string
}

// OpenEventArchive opens the bucket at bucketURL for archiving store events under prefix.
func OpenEventArchive(ctx context.Context, bucketURL, prefix string) (repository.EventArchive, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %q", bucketURL)
	}

	return NewEventArchive(bucket, prefix), nil
}

// NewEventArchive wraps an already opened bucket. The archive owns the bucket and closes it on Close.
func NewEventArchive(bucket *blob.Bucket, prefix string) repository.EventArchive {
	return &eventArchive{bucket: bucket, prefix: prefix}
}

// ErrInvalidArchiveKey is returned for message ids or event types that cannot form a key under the prefix.
var ErrInvalidArchiveKey = errors.New("invalid archive key")

// ArchiveKey is the object key of an event: <prefix>/<yyyy>/<mm>/<dd>/<type>/<messageID>.json, dated in UTC.
// The message id must be a single path segment and the type a known StoreEventType.
func ArchiveKey(prefix, messageID string, event *service.StoreEvent) (string, error) {
	if messageID == "" || strings.Contains(messageID, "..") || strings.ContainsAny(messageID, `/\`) {
		return "", errors.Wrapf(ErrInvalidArchiveKey, "message id %q", messageID)
	}
	if !event.Type.IsValid() {
		return "", errors.Wrapf(ErrInvalidArchiveKey, "event type %q", event.Type)
	}

	day := event.OccurredAt.UTC().Format("2006/01/02")

	return path.Join(prefix, day, string(event.Type), messageID+".json"), nil
}

func (a *eventArchive) Append(ctx context.Context, messageID string, event *service.StoreEvent) error {
	key, err := ArchiveKey(a.prefix, messageID, event)
	if err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to encode event")
	}

	if err := a.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentTypeJSON}); err != nil {
		return errors.Wrapf(err, "failed to write event %q", key)
	}

	return nil
}

func (a *eventArchive) Close() error {
	return errors.WithStack(a.bucket.Close())
}
