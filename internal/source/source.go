package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/joseph-ayodele/invoice-ocr/constants"
	"github.com/joseph-ayodele/invoice-ocr/internal/common"
)

const s3Scheme = "s3://"

// Downloader fetches one S3 object into w.
type Downloader interface {
	DownloadWithContext(ctx aws.Context, w io.WriterAt, input *s3.GetObjectInput, options ...func(*s3manager.Downloader)) (int64, error)
}

// Resolver turns an image reference into a readable local file.
type Resolver struct {
	region string
	logger *slog.Logger

	once       sync.Once
	downloader Downloader
	initErr    error
}

func NewResolver(region string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{region: region, logger: logger}
}

// NewResolverWithDownloader uses d for s3:// references instead of a real session.
func NewResolverWithDownloader(d Downloader, logger *slog.Logger) *Resolver {
	r := NewResolver("", logger)
	r.once.Do(func() { r.downloader = d })
	return r
}

// IsS3 reports whether ref is an s3://bucket/key reference.
func IsS3(ref string) bool {
	return strings.HasPrefix(ref, s3Scheme)
}

// Resolve returns a local path for ref and a cleanup func that releases any
// temp copy. cleanup is never nil.
func (r *Resolver) Resolve(ctx context.Context, ref string) (string, func(), error) {
	noop := func() {}
	if IsS3(ref) {
		return r.fetchS3(ctx, ref)
	}

	info, err := os.Stat(ref)
	if err != nil {
		return "", noop, resourceErr("stat image", err)
	}
	if !info.Mode().IsRegular() {
		return "", noop, resourceErr("stat image", fmt.Errorf("%s is not a regular file", ref))
	}
	return ref, noop, nil
}

func (r *Resolver) fetchS3(ctx context.Context, ref string) (string, func(), error) {
	noop := func() {}
	bucket, key, err := ParseS3URL(ref)
	if err != nil {
		return "", noop, resourceErr("parse s3 reference", err)
	}

	r.once.Do(func() {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(r.region),
		})
		if err != nil {
			r.initErr = fmt.Errorf("failed to set up aws session: %w", err)
			return
		}
		r.downloader = s3manager.NewDownloader(sess)
	})
	if r.initErr != nil {
		return "", noop, resourceErr("init s3", r.initErr)
	}

	// keep the key's extension so the extractor can detect the format
	f, err := os.CreateTemp("", "invoice-src-*"+path.Ext(key))
	if err != nil {
		return "", noop, resourceErr("create temp file", err)
	}
	name := f.Name()
	cleanup := func() { _ = os.Remove(name) }

	n, err := r.downloader.DownloadWithContext(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	closeErr := f.Close()
	if err != nil {
		cleanup()
		r.logger.Error("s3 download failed", "bucket", bucket, "key", key, "error", err)
		return "", noop, resourceErr("download s3 object", err)
	}
	if closeErr != nil {
		cleanup()
		return "", noop, resourceErr("download s3 object", closeErr)
	}

	r.logger.Debug("s3 object downloaded", "bucket", bucket, "key", key, "bytes", n, "path", name)
	return name, cleanup, nil
}

// ParseS3URL splits s3://bucket/key into its bucket and key.
func ParseS3URL(ref string) (bucket, key string, err error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("not an s3 url: %q", ref)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("s3 url has no key: %q", ref)
	}
	return u.Host, key, nil
}

func resourceErr(msg string, cause error) error {
	return common.NewStageError(constants.StageResolve, constants.KindResourceUnavailable, msg, cause)
}
