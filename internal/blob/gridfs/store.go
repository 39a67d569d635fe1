package gridfs

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/doi-radiologia/portal-api/internal/blob"
)

// Store keeps study image bytes in a GridFS bucket. Ids are the hex form
// of the GridFS file ObjectID.
type Store struct {
	bucket *gridfs.Bucket
}

func NewStore(db *mongo.Database, bucketName string) (*Store, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("failed to create gridfs bucket: %w", err)
	}
	return &Store{bucket: bucket}, nil
}

func Connect(ctx context.Context, uri, dbName, bucketName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return NewStore(client.Database(dbName), bucketName)
}

func (s *Store) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	fileID, err := s.bucket.UploadFromStream(name, r)
	if err != nil {
		return "", fmt.Errorf("failed to upload %q to gridfs: %w", name, err)
	}
	return fileID.Hex(), nil
}

func (s *Store) Download(ctx context.Context, id string) (*blob.Object, error) {
	fileID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid blob id %q: %w", id, err)
	}

	stream, err := s.bucket.OpenDownloadStream(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to open gridfs stream: %w", err)
	}

	file := stream.GetFile()
	return &blob.Object{
		Name:   file.Name,
		Length: file.Length,
		Reader: stream,
	}, nil
}
