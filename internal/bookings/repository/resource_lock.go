package repository

import (
	"context"
	"time"

	"roomly/pkg/config"
	"roomly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const LockCollectionName = "Resource_locks"

// ResourceLockRepository provides operations for per-resource advisory locks.
type ResourceLockRepository interface {
	Create(ctx context.Context, lock *model.ResourceLock) (*model.ResourceLock, error)
	Delete(ctx context.Context, lockID string) error
}

type mongoResourceLockRepository struct {
	collection *mongo.Collection
}

func NewResourceLockRepository(cfg *config.Config) ResourceLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoResourceLockRepository{
		collection: db.Collection(LockCollectionName),
	}
}

// Returns a duplicate key error if a lock for the same resource already exists.
func (r *mongoResourceLockRepository) Create(ctx context.Context, lock *model.ResourceLock) (*model.ResourceLock, error) {
	lock.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		return nil, err
	}

	return lock, nil
}

func (r *mongoResourceLockRepository) Delete(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}
