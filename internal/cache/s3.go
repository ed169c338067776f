// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Store keeps entries as objects under a prefix in a bucket so several
// machines can share one weekly cache.
type S3Store struct {
	Client S3API
	Bucket string
	Prefix string
}

func (s *S3Store) key(name string) string {
	return path.Join(s.Prefix, name)
}

func (s *S3Store) Read(ctx context.Context, name string) ([]byte, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awsv2.String(s.Bucket),
		Key:    awsv2.String(s.key(name)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}
	return data, nil
}

func (s *S3Store) Write(ctx context.Context, name string, data []byte) error {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awsv2.String(s.Bucket),
		Key:         awsv2.String(s.key(name)),
		Body:        bytes.NewReader(data),
		ContentType: awsv2.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put S3 object: %w", err)
	}
	return nil
}

// List pages through the prefix and returns entry names directly beneath it.
func (s *S3Store) List(ctx context.Context) ([]string, error) {
	prefix := s.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var names []string
	p := s3.NewListObjectsV2Paginator(s.Client, &s3.ListObjectsV2Input{
		Bucket: awsv2.String(s.Bucket),
		Prefix: awsv2.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list S3 objects: %w", err)
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(awsv2.ToString(obj.Key), prefix)
			if name == "" || strings.Contains(name, "/") || path.Ext(name) != ext {
				log.Debugf("Throwing away %s", awsv2.ToString(obj.Key))
				continue
			}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *S3Store) Remove(ctx context.Context, name string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: awsv2.String(s.Bucket),
		Key:    awsv2.String(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete S3 object: %w", err)
	}
	return nil
}

func (s *S3Store) String() string {
	return "s3://" + path.Join(s.Bucket, s.Prefix)
}
