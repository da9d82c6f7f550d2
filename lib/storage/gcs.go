package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	convCtx "github.com/sofmon/backoffice/lib/ctx"
)

func init() {
	RegisterProvider("gcs", newGCSProvider)
}

type gcsProvider struct {
	client *storage.Client
	bucket string
}

// newGCSProvider connects with the service account JSON key in credentials,
// or with application default credentials when none are given.
func newGCSProvider(bucket string, credentials []byte) (Provider, error) {

	var opts []option.ClientOption
	if len(credentials) > 0 {
		opts = append(opts, option.WithCredentialsJSON(credentials))
	}

	client, err := storage.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, err
	}
	return &gcsProvider{client: client, bucket: bucket}, nil
}

func (p *gcsProvider) Name() string {
	return "gcs"
}

func (p *gcsProvider) Load(ctx convCtx.Context, path string) (data []byte, err error) {
	ctx = ctx.WithScope("gcsProvider.Load", "bucket", p.bucket, "path", path)
	defer ctx.Exit(&err)

	r, err := p.client.Bucket(p.bucket).Object(path).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		err = fmt.Errorf("%w: gs://%s/%s", ErrObjectNotFound, p.bucket, path)
		return
	}
	if err != nil {
		return
	}
	defer r.Close()

	data, err = io.ReadAll(r)
	return
}

func (p *gcsProvider) Exists(ctx convCtx.Context, path string) (exists bool, err error) {
	ctx = ctx.WithScope("gcsProvider.Exists", "bucket", p.bucket, "path", path)
	defer ctx.Exit(&err)

	_, err = p.client.Bucket(p.bucket).Object(path).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return
	}
	return true, nil
}
