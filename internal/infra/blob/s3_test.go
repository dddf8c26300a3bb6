//go:build unit

package blob

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/errs"
)

type recordingPutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (p *recordingPutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	p.in = in
	p.body, _ = io.ReadAll(in.Body)
	if p.err != nil {
		return nil, p.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Archive(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 23, 30, 0, 0, time.FixedZone("JST", 9*3600))

	t.Run("payload is stored under a dated key", func(t *testing.T) {
		p := &recordingPutter{}
		a := newS3Archive(p, "webhooks", "stripe/")
		a.now = func() time.Time { return fixed }

		err := a.Archive(context.Background(), "evt_1", []byte(`{"id":"evt_1"}`))

		require.NoError(t, err)
		assert.Equal(t, "webhooks", aws.ToString(p.in.Bucket))
		assert.Equal(t, "stripe/2025/03/01/evt_1.json", aws.ToString(p.in.Key))
		assert.Equal(t, "application/json", aws.ToString(p.in.ContentType))
		assert.Equal(t, `{"id":"evt_1"}`, string(p.body))
	})

	t.Run("event ids cannot escape the prefix", func(t *testing.T) {
		a := newS3Archive(&recordingPutter{}, "b", "")
		a.now = func() time.Time { return fixed }

		assert.Equal(t, "2025/03/01/.._x.json", a.objectKey("../x"))
		assert.Equal(t, "2025/03/01/unknown.json", a.objectKey(""))
	})

	t.Run("put failures are wrapped", func(t *testing.T) {
		a := newS3Archive(&recordingPutter{err: errors.New("access denied")}, "b", "")

		err := a.Archive(context.Background(), "evt_2", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
	})
}

func TestNewS3ArchiveRequiresBucket(t *testing.T) {
	_, err := NewS3Archive(context.Background(), config.StorageConfig{})

	assert.True(t, errs.Is(err, errs.ErrConfiguration))
}

func TestNormaliseEndpoint(t *testing.T) {
	assert.Equal(t, "https://minio.local:9000", normaliseEndpoint("minio.local:9000"))
	assert.Equal(t, "http://localhost:9000", normaliseEndpoint("http://localhost:9000"))
}
