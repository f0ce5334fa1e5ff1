package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"iga-backend/config"
	s3client "iga-backend/s3"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Provider keeps generated campaign reports in object storage.
type Provider interface {
	// UploadReport stores the file and returns a presigned download link.
	UploadReport(ctx context.Context, campaignID, fileName, contentType string, body []byte) (link string, err error)
}

var Instance Provider

const reportPrefix = "campaign-reports"

func NewHandler() {
	if s3client.Client == nil {
		return
	}
	Instance = NewInstance(s3client.Client, config.Conf.S3.BucketName, config.Conf.S3.LinkTTL)
}

func NewInstance(client *minio.Client, bucketName string, linkTTL time.Duration) Provider {
	return &impl{
		s3client:   client,
		bucketName: bucketName,
		linkTTL:    linkTTL,
	}
}

type impl struct {
	s3client   *minio.Client
	bucketName string
	linkTTL    time.Duration
}

func (i impl) UploadReport(ctx context.Context, campaignID, fileName, contentType string, body []byte) (string, error) {
	objectName := ObjectName(campaignID, fileName)
	logger := log.
		WithField("bucket", i.bucketName).
		WithField("object", objectName)
	if err := s3client.MakeBucket(ctx, i.s3client, i.bucketName); err != nil {
		return "", errors.Wrap(err, "report bucket")
	}
	_, err := i.s3client.PutObject(ctx, i.bucketName, objectName, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "report upload")
	}
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	link, err := i.s3client.PresignedGetObject(ctx, i.bucketName, objectName, i.linkTTL, params)
	if err != nil {
		return "", errors.Wrap(err, "report link")
	}
	logger.Info("campaign report uploaded")
	return link.String(), nil
}

func ObjectName(campaignID, fileName string) string {
	return path.Join(reportPrefix, campaignID, fileName)
}
