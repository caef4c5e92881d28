package recordsRepo

import (
	"context"
	"errors"
	"time"

	"frontdesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new appointment record and returns its ID.
func (r *mongoRecordRepo) Create(ctx context.Context, record models.AppointmentRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

// GetByID returns an appointment record by its ID.
func (r *mongoRecordRepo) GetByID(ctx context.Context, id string) (*models.AppointmentRecord, error) {
	var record models.AppointmentRecord
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByPhone fetches all records booked under a specific phone number.
func (r *mongoRecordRepo) GetByPhone(ctx context.Context, phone string) ([]models.AppointmentRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"phone": phone})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.AppointmentRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteByID removes an appointment record by ID.
func (r *mongoRecordRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("record not found")
	}
	return nil
}
