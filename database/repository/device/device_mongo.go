// File: database/repository/device/device_mongo.go
package deviceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mindlink/config"
	"mindlink/database"
	"mindlink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("device not registered")

// DeviceRepository stores FCM tokens keyed by actor.
type DeviceRepository interface {
	Upsert(ctx context.Context, d *models.ActorDevice) error
	GetByActor(ctx context.Context, actorID string) (*models.ActorDevice, error)
}

// MongoDeviceRepo implements DeviceRepository using MongoDB.
type MongoDeviceRepo struct {
	coll *mongo.Collection
}

func NewMongoDeviceRepo() DeviceRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoDeviceRepo{coll: db.Collection("devices")}
}

func (repo *MongoDeviceRepo) Upsert(ctx context.Context, d *models.ActorDevice) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	d.UpdatedAt = time.Now().UTC()
	filter := bson.M{"actor_id": d.ActorID}
	update := bson.M{"$set": d}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting device for actor %s: %w", d.ActorID, err)
	}
	return nil
}

func (repo *MongoDeviceRepo) GetByActor(ctx context.Context, actorID string) (*models.ActorDevice, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var d models.ActorDevice
	if err := repo.coll.FindOne(ctx, bson.M{"actor_id": actorID}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching device for actor %s: %w", actorID, err)
	}
	return &d, nil
}
