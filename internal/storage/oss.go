// Package storage hosts event images on Alibaba Cloud OSS. The stored object
// URL goes straight into the event record; nothing is read back.
package storage

import (
	"fmt"
	"io"
	"mime"
	"path"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"

	"github.com/eventhub/eventhub-api/internal/config"
)

const imageFolder = "event_images"

type OSSImageStore struct {
	bucket   *oss.Bucket
	endpoint string
}

func NewOSSImageStore(conf *config.OSSConfig) (*OSSImageStore, error) {
	client, err := oss.New(conf.Endpoint, conf.AccessKeyID, conf.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New -> %w", err)
	}

	bucket, err := client.Bucket(conf.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket -> %w", err)
	}

	return &OSSImageStore{
		bucket:   bucket,
		endpoint: conf.Endpoint,
	}, nil
}

// Upload stores the image under a random key and returns its public URL.
func (s *OSSImageStore) Upload(filename string, reader io.Reader) (string, error) {
	ext := path.Ext(filename)
	key := imageFolder + "/" + uuid.NewString() + ext

	options := []oss.Option{}
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		options = append(options, oss.ContentType(contentType))
	}

	if err := s.bucket.PutObject(key, reader, options...); err != nil {
		return "", fmt.Errorf("bucket.PutObject -> %w", err)
	}

	return fmt.Sprintf("https://%v.%v/%v", s.bucket.BucketName, s.endpoint, key), nil
}
