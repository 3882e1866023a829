package recordsRepo

import (
	"context"

	"ridebook/database"
	"ridebook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRecordRepository stores locally kept records of submitted bookings.
type BookingRecordRepository interface {
	Create(ctx context.Context, record models.BookingRecord) (string, error)
	GetByID(ctx context.Context, id string) (*models.BookingRecord, error)
	GetByUserID(ctx context.Context, userID string) ([]models.BookingRecord, error)
	SetStatus(ctx context.Context, id, status string) error
}

// RecentLocationRepository stores a rider's recently used route points.
type RecentLocationRepository interface {
	Save(ctx context.Context, loc models.RecentLocation) error
	GetByUserID(ctx context.Context, userID string, limit int64) ([]models.RecentLocation, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a BookingRecordRepository backed by MongoDB.
func NewMongoRecordRepo() BookingRecordRepository {
	db := database.MongoClient.Database("ridebook")
	return &mongoRecordRepo{
		coll: db.Collection("booking_records"),
	}
}

type mongoLocationRepo struct {
	coll *mongo.Collection
}

// NewMongoLocationRepo returns a RecentLocationRepository backed by MongoDB.
func NewMongoLocationRepo() RecentLocationRepository {
	db := database.MongoClient.Database("ridebook")
	return &mongoLocationRepo{
		coll: db.Collection("recent_locations"),
	}
}
