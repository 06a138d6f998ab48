package bookingRepo

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
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}

func (repo *MongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	if _, err := repo.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("error inserting booking %s: %w", b.ID, err)
	}
	return nil
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &b, nil
}

// CompareAndSwap reads the booking, applies mutate to a copy, and replaces
// the document guarded by {id, status: expected}. A replace that matches
// nothing while the document still exists means another writer moved the
// status first, which is reported as ErrConflict.
func (repo *MongoBookingRepo) CompareAndSwap(ctx context.Context, id string, expected models.BookingStatus, mutate func(*models.Booking) error) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	current, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != expected {
		return nil, ErrConflict
	}

	updated := *current
	if err := mutate(&updated); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()

	filter := bson.M{"id": id, "status": expected}
	res, err := repo.coll.ReplaceOne(ctx, filter, &updated)
	if err != nil {
		return nil, fmt.Errorf("error writing booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		// Document exists (we just read it) but the status guard failed.
		return nil, ErrConflict
	}
	return &updated, nil
}

func (repo *MongoBookingRepo) ListByCounselor(ctx context.Context, counselorID string) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"counselor_id": counselorID})
}

func (repo *MongoBookingRepo) ListByMember(ctx context.Context, memberID string) ([]models.Booking, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"member_id": memberID},
			bson.M{"partner_member_id": memberID},
		},
	}
	return repo.list(ctx, filter)
}

func (repo *MongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) UpdateFeedback(ctx context.Context, id string, rating int, feedback string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"rating":     rating,
		"feedback":   feedback,
		"updated_at": time.Now().UTC(),
	}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("error updating feedback for booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return repo.GetByID(ctx, id)
}
