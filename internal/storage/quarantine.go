package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"skillup/api/internal/config"
	"skillup/api/internal/ids"
)

const maxReasonLen = 512

// Quarantine keeps raw model output that could not be turned into a typed
// result so operators can inspect it later.
type Quarantine struct {
	client *minio.Client
	cfg    config.QuarantineConfig
	now    func() time.Time
}

func NewQuarantine(cfg config.QuarantineConfig) (*Quarantine, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	return &Quarantine{client: client, cfg: cfg, now: time.Now}, nil
}

func (q *Quarantine) EnsureBucket(ctx context.Context) error {
	exists, err := q.client.BucketExists(ctx, q.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", q.cfg.Bucket, err)
	}
	if exists {
		return nil
	}
	if err := q.client.MakeBucket(ctx, q.cfg.Bucket, minio.MakeBucketOptions{Region: q.cfg.Region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", q.cfg.Bucket, err)
	}
	return nil
}

// Store writes raw under <kind>/<yyyy-mm-dd>/<id>.txt and returns the object key.
func (q *Quarantine) Store(ctx context.Context, kind string, raw string, reason error) (string, error) {
	key := ObjectKey(kind, q.now())

	meta := map[string]string{"kind": kind}
	if reason != nil {
		msg := reason.Error()
		if len(msg) > maxReasonLen {
			msg = msg[:maxReasonLen]
		}
		meta["reason"] = msg
	}

	_, err := q.client.PutObject(ctx, q.cfg.Bucket, key, strings.NewReader(raw), int64(len(raw)), minio.PutObjectOptions{
		ContentType:  "text/plain; charset=utf-8",
		UserMetadata: meta,
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return key, nil
}

func ObjectKey(kind string, at time.Time) string {
	return fmt.Sprintf("%s/%s/%s.txt", kind, at.UTC().Format("2006-01-02"), ids.New())
}
