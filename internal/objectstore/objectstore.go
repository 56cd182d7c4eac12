// Package objectstore lists snapshot files for a table from an S3-
// compatible object store, honoring the three listing modes the rest
// of the pipeline depends on to establish LOAD-before-CDC ordering.
package objectstore

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"maskframe/internal/core"
)

const defaultRegion = "eu-west-1"

// NewClient builds an S3 client from the ambient AWS credential chain,
// honoring S3_BUCKET_REGION and an optional S3_VPC_ENDPOINT override
// the way the rest of this system's object-store footprint does.
func NewClient(ctx context.Context) (*s3.Client, error) {
	region := os.Getenv("S3_BUCKET_REGION")
	if region == "" {
		region = defaultRegion
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("objectstore: load aws config: %w", err)
	}

	opts := func(o *s3.Options) {
		if endpoint := os.Getenv("S3_VPC_ENDPOINT"); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}

	return s3.NewFromConfig(cfg, opts), nil
}

// Mode selects how Lister.List discovers keys for a table.
type Mode int

const (
	DateAware Mode = iota
	FullLoadOnly
	AbsolutePath
)

// ListPayload parameterizes one List call.
type ListPayload struct {
	Mode        Mode
	Bucket      string
	Prefix      string // s3_prefix
	Database    string
	Schema      string
	Table       string
	StartDate   time.Time // required for DateAware
	StopDate    *time.Time
	AbsoluteKey string // used only for AbsolutePath
}

// Lister lists snapshot files for a table from an S3-compatible store.
type Lister struct {
	client *s3.Client
}

func NewLister(client *s3.Client) *Lister {
	return &Lister{client: client}
}

// List returns the FileRefs for the payload's mode, with LOAD files
// rotated ahead of CDC files while each class keeps its own listing
// order.
func (l *Lister) List(ctx context.Context, p ListPayload) ([]core.FileRef, error) {
	switch p.Mode {
	case DateAware:
		return l.listDateAware(ctx, p)
	case FullLoadOnly:
		return l.listFullLoadOnly(ctx, p)
	case AbsolutePath:
		return []core.FileRef{core.NewFileRef(p.Bucket, p.AbsoluteKey, time.Time{})}, nil
	default:
		return nil, fmt.Errorf("objectstore: unknown mode %d", p.Mode)
	}
}

func (l *Lister) tablePrefix(p ListPayload) string {
	return fmt.Sprintf("%s/%s/%s/%s/", strings.Trim(p.Prefix, "/"), p.Database, p.Schema, p.Table)
}

func (l *Lister) listFullLoadOnly(ctx context.Context, p ListPayload) ([]core.FileRef, error) {
	prefix := l.tablePrefix(p)
	out, err := l.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(p.Bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(1000),
	})
	if err != nil {
		return nil, fmt.Errorf("objectstore: list %q: %w", prefix, err)
	}

	refs := make([]core.FileRef, 0, len(out.Contents))
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		if !strings.Contains(key, "LOAD") {
			continue
		}
		refs = append(refs, core.NewFileRef(p.Bucket, key, aws.ToTime(obj.LastModified)))
	}
	return refs, nil
}

func (l *Lister) listDateAware(ctx context.Context, p ListPayload) ([]core.FileRef, error) {
	if p.StartDate.IsZero() {
		return nil, fmt.Errorf("objectstore: start_date is required for DateAware mode")
	}

	prefix := l.tablePrefix(p)
	startAfter := fmt.Sprintf("%s%04d/%02d/%02d/", prefix, p.StartDate.Year(), p.StartDate.Month(), p.StartDate.Day())

	paginator := s3.NewListObjectsV2Paginator(l.client, &s3.ListObjectsV2Input{
		Bucket:     aws.String(p.Bucket),
		Prefix:     aws.String(prefix),
		StartAfter: aws.String(startAfter),
	})

	var all []core.FileRef
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("objectstore: list %q: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			lastModified := aws.ToTime(obj.LastModified)

			isLoad := strings.Contains(key, "LOAD")
			inWindow := lastModified.After(p.StartDate) && (p.StopDate == nil || lastModified.Before(*p.StopDate))
			if !isLoad && !inWindow {
				continue
			}
			all = append(all, core.NewFileRef(p.Bucket, key, lastModified))
		}
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Key < all[j].Key })
	return rotateLoadFilesFirst(all), nil
}

// rotateLoadFilesFirst moves every LOAD file ahead of every CDC file
// while preserving each class's relative order, matching a right
// rotation by the LOAD file count.
func rotateLoadFilesFirst(refs []core.FileRef) []core.FileRef {
	out := make([]core.FileRef, 0, len(refs))
	for _, r := range refs {
		if r.IsLoadFile {
			out = append(out, r)
		}
	}
	for _, r := range refs {
		if !r.IsLoadFile {
			out = append(out, r)
		}
	}
	return out
}
