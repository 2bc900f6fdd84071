package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-ocr/internal/common"
)

type fakeDownloader struct {
	body  []byte
	err   error
	input *s3.GetObjectInput
}

func (f *fakeDownloader) DownloadWithContext(_ aws.Context, w io.WriterAt, input *s3.GetObjectInput, _ ...func(*s3manager.Downloader)) (int64, error) {
	f.input = input
	if f.err != nil {
		return 0, f.err
	}
	n, err := w.WriteAt(f.body, 0)
	return int64(n), err
}

func TestResolve_Local(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "invoice.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0o644))
	r := NewResolver("", nil)

	got, cleanup, err := r.Resolve(context.Background(), img)
	require.NoError(t, err)
	cleanup()
	assert.Equal(t, img, got)
	_, err = os.Stat(img)
	assert.NoError(t, err, "cleanup never removes local sources")

	for _, ref := range []string{filepath.Join(dir, "missing.png"), dir} {
		_, cleanup, err := r.Resolve(context.Background(), ref)
		require.NotNil(t, cleanup)
		assert.ErrorIs(t, err, common.ErrResourceUnavailable, ref)
	}
}

func TestResolve_S3(t *testing.T) {
	d := &fakeDownloader{body: []byte("image bytes")}
	r := NewResolverWithDownloader(d, nil)

	got, cleanup, err := r.Resolve(context.Background(), "s3://invoices/2024/inv-1.PNG")
	require.NoError(t, err)
	assert.Equal(t, "invoices", aws.StringValue(d.input.Bucket))
	assert.Equal(t, "2024/inv-1.PNG", aws.StringValue(d.input.Key))
	assert.Equal(t, ".PNG", filepath.Ext(got))

	b, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(b))

	cleanup()
	_, err = os.Stat(got)
	assert.True(t, os.IsNotExist(err))
}

func TestResolve_S3DownloadFails(t *testing.T) {
	r := NewResolverWithDownloader(&fakeDownloader{err: errors.New("NoSuchKey")}, nil)

	got, cleanup, err := r.Resolve(context.Background(), "s3://invoices/missing.png")
	require.NotNil(t, cleanup)
	assert.Empty(t, got)
	assert.ErrorIs(t, err, common.ErrResourceUnavailable)
}

func TestParseS3URL(t *testing.T) {
	cases := []struct {
		ref, bucket, key string
		ok               bool
	}{
		{"s3://b/k.png", "b", "k.png", true},
		{"s3://b/dir/sub/k.jpg", "b", "dir/sub/k.jpg", true},
		{"s3://b/", "", "", false},
		{"s3:///k.png", "", "", false},
		{"https://b/k.png", "", "", false},
	}
	for _, tc := range cases {
		bucket, key, err := ParseS3URL(tc.ref)
		if !tc.ok {
			assert.Error(t, err, tc.ref)
			continue
		}
		require.NoError(t, err, tc.ref)
		assert.Equal(t, tc.bucket, bucket)
		assert.Equal(t, tc.key, key)
	}
	assert.True(t, IsS3("s3://b/k"))
	assert.False(t, IsS3("/tmp/s3://x"))
}
