package recordsRepo

import (
	"context"
	"errors"
	"time"

	"ridebook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new booking record and returns its ID.
func (r *mongoRecordRepo) Create(ctx context.Context, record models.BookingRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

// GetByID returns a booking record by its ID.
func (r *mongoRecordRepo) GetByID(ctx context.Context, id string) (*models.BookingRecord, error) {
	var record models.BookingRecord
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByUserID fetches all booking records for a rider, newest first.
func (r *mongoRecordRepo) GetByUserID(ctx context.Context, userID string) ([]models.BookingRecord, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.BookingRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SetStatus updates a record's status field.
func (r *mongoRecordRepo) SetStatus(ctx context.Context, id, status string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("record not found")
	}
	return nil
}

// Save upserts a recent location keyed by user, kind, and address.
func (r *mongoLocationRepo) Save(ctx context.Context, loc models.RecentLocation) error {
	if loc.ID == "" {
		loc.ID = uuid.New().String()
	}
	loc.UsedAt = time.Now().Unix()

	filter := bson.M{
		"user_id":          loc.UserID,
		"kind":             loc.Kind,
		"location.address": loc.Location.Address,
	}
	update := bson.M{"$set": loc}
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetByUserID lists a rider's recent locations, most recent first.
func (r *mongoLocationRepo) GetByUserID(ctx context.Context, userID string, limit int64) ([]models.RecentLocation, error) {
	opts := options.Find().SetSort(bson.M{"used_at": -1}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var locations []models.RecentLocation
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// DeleteByUserID clears a rider's recent locations.
func (r *mongoLocationRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
