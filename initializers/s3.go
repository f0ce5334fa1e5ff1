package initializers

import (
	"context"
	"time"

	"iga-backend/config"
	s3client "iga-backend/s3"

	log "github.com/sirupsen/logrus"
)

func InitS3() {
	if !s3client.IsConfigured() {
		log.Info("S3 endpoint not configured, campaign reports are download-only")
		return
	}
	minioClient, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("S3 client initialization failed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = s3client.MakeBucket(ctx, minioClient, config.Conf.S3.BucketName); err != nil {
		log.WithError(err).Error("S3 bucket check failed")
		return
	}

	s3client.Client = minioClient
	log.WithField("bucket", config.Conf.S3.BucketName).Info("S3 client initialized")
}
