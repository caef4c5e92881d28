package recordsRepo

import (
	"context"

	"frontdesk/database"
	"frontdesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentRecordRepository persists the audit trail of committed bookings.
type AppointmentRecordRepository interface {
	Create(ctx context.Context, record models.AppointmentRecord) (string, error)
	GetByID(ctx context.Context, id string) (*models.AppointmentRecord, error)
	GetByPhone(ctx context.Context, phone string) ([]models.AppointmentRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a new AppointmentRecordRepository instance using MongoDB.
func NewMongoRecordRepo() AppointmentRecordRepository {
	db := database.MongoClient.Database("frontdesk")
	return &mongoRecordRepo{
		coll: db.Collection("appointment_records"),
	}
}
