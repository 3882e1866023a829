package booking

import (
	"context"

	"ridebook/models"
)

// DriverFinder fetches available vehicle regions for a pickup point.
type DriverFinder interface {
	FindDrivers(ctx context.Context, session *models.Session, req models.FindDriversRequest) ([]models.VehicleRegion, error)
}

// ScheduleSubmitter submits a shaped pickup-schedule request upstream.
type ScheduleSubmitter interface {
	InsertPickupSchedule(ctx context.Context, session *models.Session, req models.PickupScheduleRequest) (*models.PickupScheduleResponse, error)
}

// BookingRecorder persists a record of a submitted booking.
type BookingRecorder interface {
	Create(ctx context.Context, record models.BookingRecord) (string, error)
}

// ReminderScheduler queues a pickup reminder for a submitted booking.
type ReminderScheduler interface {
	SchedulePickupReminder(record models.BookingRecord) error
}

// RecentLocationSaver remembers route points the rider has used.
type RecentLocationSaver interface {
	Save(ctx context.Context, loc models.RecentLocation) error
}
