package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// ImageRef points at an uploaded object
type ImageRef struct {
	URL      string
	Filename string
}

// ObjectStorage uploads image bytes and returns a reference to the stored object.
type ObjectStorage interface {
	Upload(ctx context.Context, objectName, contentType string, r io.Reader) (*ImageRef, error)
}

// FirebaseStorage implements ObjectStorage on a Firebase/GCS bucket
type FirebaseStorage struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewFirebaseStorage initializes the Firebase app and resolves the default bucket
func NewFirebaseStorage(ctx context.Context, credentialsPath, bucketName string) (*FirebaseStorage, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("firebase credentials path not provided")
	}
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase storage client: %w", err)
	}

	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("error resolving default storage bucket: %w", err)
	}

	log.Info().Str("bucket", bucketName).Msg("Firebase storage initialized")
	return &FirebaseStorage{bucket: bucket, bucketName: bucketName}, nil
}

// Upload writes the object and returns its public reference
func (s *FirebaseStorage) Upload(ctx context.Context, objectName, contentType string, r io.Reader) (*ImageRef, error) {
	w := s.bucket.Object(objectName).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to write object %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize object %s: %w", objectName, err)
	}

	return &ImageRef{
		URL:      fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, objectName),
		Filename: objectName,
	}, nil
}
