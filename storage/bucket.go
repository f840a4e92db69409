package storage

import (
	"os"
	"strings"

	"yatube/db"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

type Bucket struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	Name        string `gorm:"type:varchar(200)"` // Display name, or the S3 bucket name
	StorageType StorageType
	Path        string // Path on a drive or a prefix in a S3 bucket
	Region      string `gorm:"type:varchar(30)"`
	Endpoint    string `gorm:"type:varchar(300)"` // For S3-compatible services
	AuthDetails string // Authentication details. In case of S3 bucket - "key:secret"
}

func (b *Bucket) Create() error {
	err := db.Instance.Create(b).Error
	if err != nil {
		return err
	}
	if b.StorageType == StorageTypeFile {
		return os.MkdirAll(b.Path, 0777)
	}
	return nil
}

func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return strings.TrimSuffix(b.Path, "/") + "/" + path
}

func (b *Bucket) CreateSVC() *s3.S3 {
	key, secret, _ := strings.Cut(b.AuthDetails, ":")
	cfg := aws.Config{
		Credentials: credentials.NewStaticCredentials(key, secret, ""),
		Region:      &b.Region,
	}
	if b.Endpoint != "" {
		cfg.Endpoint = &b.Endpoint
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	return s3.New(session.Must(session.NewSession(&cfg)))
}
