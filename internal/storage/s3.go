package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"wayfarer/internal/utils"
	"wayfarer/pkg/types"
)

// S3Storage stores attachment bytes and hands back the opaque descriptor
// the catalog keeps. Once the descriptor exists, the bytes are this
// collaborator's problem, not the catalog's.
type S3Storage struct {
	client *s3.Client
	bucket string
}

func NewS3Storage(client *s3.Client, bucket string) *S3Storage {
	return &S3Storage{client: client, bucket: bucket}
}

// Store uploads one file and returns its attachment descriptor. Images
// carry no size, matching how the picker reports them.
func (s *S3Storage) Store(ctx context.Context, fileName string, size int64, body io.Reader) (*types.FileAttachment, error) {
	key := fmt.Sprintf("documents/%s%s", utils.NanoIDSize(21), filepath.Ext(fileName))
	contentType := contentTypeFor(fileName)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}

	attachment := &types.FileAttachment{
		URI:  fmt.Sprintf("s3://%s/%s", s.bucket, key),
		Kind: KindFor(fileName),
		Name: fileName,
	}
	if attachment.Kind == types.FileKindDocument {
		attachment.Size = &size
	}
	return attachment, nil
}

// Remove deletes the stored bytes behind a descriptor produced by Store.
func (s *S3Storage) Remove(ctx context.Context, uri string) error {
	key, ok := strings.CutPrefix(uri, fmt.Sprintf("s3://%s/", s.bucket))
	if !ok {
		// not ours; descriptors from other pickers are left alone
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return nil
}

// KindFor classifies an upload by extension the way the picker would.
func KindFor(fileName string) types.FileKind {
	contentType := contentTypeFor(fileName)
	if strings.HasPrefix(contentType, "image/") {
		return types.FileKindImage
	}
	return types.FileKindDocument
}

func contentTypeFor(fileName string) string {
	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		return "application/octet-stream"
	}
	return contentType
}
