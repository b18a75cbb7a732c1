package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/logging"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	sc "github.com/dmitrijs2005/readdaily/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ProfileLoader loads the reading aggregate of a user.
type ProfileLoader interface {
	GetProfile(ctx context.Context, userID string) (reading.Profile, error)
}

// Export is a downloadable history snapshot.
type Export struct {
	Key       string
	URL       string
	ExpiresAt time.Time
}

type historyDocument struct {
	ExportedAt   time.Time             `json:"exportedAt"`
	UserID       string                `json:"userId"`
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	JoinDate     reading.Date          `json:"joinDate"`
	LastActive   reading.Date          `json:"lastActive"`
	Preferences  reading.Preferences   `json:"preferences"`
	ReadArticles []reading.ReadArticle `json:"readArticles"`
	Streak       reading.StreakData    `json:"streakData"`
}

// ExportService uploads reading history snapshots to object storage.
type ExportService struct {
	profiles ProfileLoader
	config   *sc.Config
	clock    Clock
	logger   logging.Logger
}

func NewExportService(profiles ProfileLoader, config *sc.Config, clock Clock, logger logging.Logger) *ExportService {
	return &ExportService{
		profiles: profiles,
		config:   config,
		clock:    clock,
		logger:   logger.With("module", "export_service"),
	}
}

// ExportStorageKey builds a unique object key under the user's prefix.
func ExportStorageKey(userID string, now time.Time) string {
	return fmt.Sprintf("exports/%s/%d/%02d/%02d/%v.json", userID, now.Year(), now.Month(), now.Day(), uuid.New())
}

func (s *ExportService) getS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// ExportHistory serializes the profile of userID, uploads it and returns a
// presigned download link. Storage failures yield ErrorUpstreamUnavailable.
func (s *ExportService) ExportHistory(ctx context.Context, userID string) (*Export, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	body, err := json.MarshalIndent(historyDocument{
		ExportedAt:   now.UTC(),
		UserID:       p.ID,
		Name:         p.Name,
		Email:        p.Email,
		JoinDate:     p.JoinDate,
		LastActive:   p.LastActive,
		Preferences:  p.Preferences,
		ReadArticles: p.ReadArticles,
		Streak:       p.Streak,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding history: %w", err)
	}

	client, err := s.getS3Client(ctx)
	if err != nil {
		return nil, s.upstream(ctx, "storage config", err)
	}

	bucket := s.config.S3Bucket
	key := ExportStorageKey(userID, now)

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return nil, s.upstream(ctx, "upload", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.ExportURLValidity))
	if err != nil {
		return nil, s.upstream(ctx, "presign", err)
	}

	return &Export{Key: key, URL: req.URL, ExpiresAt: now.Add(s.config.ExportURLValidity)}, nil
}

func (s *ExportService) upstream(ctx context.Context, stage string, err error) error {
	s.logger.Error(ctx, "history export failed", "stage", stage, "error", err)
	return fmt.Errorf("%w: %s: %v", common.ErrorUpstreamUnavailable, stage, err)
}
