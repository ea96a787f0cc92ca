package scheduleRepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gidy30B/project02-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoScheduleRepo) Create(ctx context.Context, s *models.Schedule) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := toDocument(s)
	doc.Version = 1
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateProfessional
		}
		return classify(fmt.Errorf("failed to insert schedule: %w", err))
	}
	s.Version = 1
	return nil
}

func (r *MongoScheduleRepo) GetByID(ctx context.Context, scheduleID string) (*models.Schedule, error) {
	return r.findOne(ctx, bson.M{"id": scheduleID})
}

func (r *MongoScheduleRepo) GetByProfessionalID(ctx context.Context, professionalID string) (*models.Schedule, error) {
	return r.findOne(ctx, bson.M{"professionalId": professionalID})
}

func (r *MongoScheduleRepo) findOne(ctx context.Context, filter bson.M) (*models.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc scheduleDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, classify(fmt.Errorf("failed to fetch schedule: %w", err))
	}
	return fromDocument(doc), nil
}

func (r *MongoScheduleRepo) Save(ctx context.Context, s *models.Schedule) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := toDocument(s)
	doc.Version = s.Version + 1

	filter := bson.M{"id": s.ID, "version": s.Version}
	res, err := r.coll.ReplaceOne(ctx, filter, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateProfessional
		}
		return classify(fmt.Errorf("failed to save schedule: %w", err))
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	s.Version = doc.Version
	return nil
}

func (r *MongoScheduleRepo) GetSlotsForDate(ctx context.Context, professionalID, date string) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{"professionalId": professionalID, "days.date": date}
	opts := options.FindOne().SetProjection(bson.M{
		"days": bson.M{"$elemMatch": bson.M{"date": date}},
	})

	var doc scheduleDocument
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, classify(fmt.Errorf("failed to fetch slots: %w", err))
	}
	if len(doc.Days) == 0 || len(doc.Days[0].Slots) == 0 {
		return nil, ErrNotFound
	}
	return doc.Days[0].Slots, nil
}
