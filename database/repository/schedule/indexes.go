package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the schedules collection relies on.
func (r *MongoScheduleRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One schedule per professional.
		{
			Keys:    bson.D{{Key: "professionalId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_professional"),
		},
		{
			Keys:    bson.D{{Key: "professionalId", Value: 1}, {Key: "days.date", Value: 1}},
			Options: options.Index().SetName("professional_date_idx"),
		},
		// Booking looks slots up by id alone.
		{
			Keys:    bson.D{{Key: "days.slots.id", Value: 1}},
			Options: options.Index().SetName("slot_id_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create schedule indexes: %w", err)
	}
	return nil
}
