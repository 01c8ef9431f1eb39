package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/mealbook/backend/config"
)

var ErrInvalidImage = errors.New("invalid image payload")

const dataURIPrefix = "data:image/"

// ImageService stores recipe images. Inline data-URI payloads are decoded
// and written to S3 when a bucket is configured, otherwise to a local
// media directory. Plain URLs pass through untouched.
type ImageService struct {
	s3Config *config.S3Config
	mediaDir string
}

func NewImageService(s3Config *config.S3Config, mediaDir string) *ImageService {
	return &ImageService{
		s3Config: s3Config,
		mediaDir: mediaDir,
	}
}

// Store resolves an image field value to a URL the recipe can keep.
func (s *ImageService) Store(ctx context.Context, image string) (string, error) {
	if !strings.HasPrefix(image, dataURIPrefix) {
		return image, nil
	}

	data, ext, err := decodeDataURI(image)
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("recipes/%s.%s", uuid.New().String(), ext)
	if s.s3Config != nil {
		return s.uploadToS3(ctx, data, fileName, ext)
	}
	return s.writeLocal(data, fileName)
}

// decodeDataURI splits a data:image/<ext>;base64,<data> payload into its
// raw bytes and extension.
func decodeDataURI(image string) ([]byte, string, error) {
	meta, encoded, found := strings.Cut(image, ";base64,")
	if !found {
		return nil, "", ErrInvalidImage
	}
	ext := strings.TrimPrefix(meta, dataURIPrefix)
	if ext == "" || strings.ContainsAny(ext, "/\\.") {
		return nil, "", ErrInvalidImage
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", ErrInvalidImage
	}
	return data, ext, nil
}

func (s *ImageService) uploadToS3(ctx context.Context, data []byte, fileName, ext string) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/" + ext),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := s.s3Config.ObjectURL(fileName)
	log.Printf("[ImageService] Uploaded image to S3: %s", url)
	return url, nil
}

func (s *ImageService) writeLocal(data []byte, fileName string) (string, error) {
	path := filepath.Join(s.mediaDir, filepath.FromSlash(fileName))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return "/media/" + fileName, nil
}
