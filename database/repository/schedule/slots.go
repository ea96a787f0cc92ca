package scheduleRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gidy30B/project02-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoScheduleRepo) FindSlot(ctx context.Context, slotID string) (*SlotLocation, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc scheduleDocument
	err := r.coll.FindOne(ctx, bson.M{"days.slots.id": slotID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, classify(fmt.Errorf("failed to find slot: %w", err))
	}
	slot, ok := slotFromDocument(doc, slotID)
	if !ok {
		return nil, ErrNotFound
	}
	return &SlotLocation{
		ScheduleID:     doc.ID,
		ProfessionalID: doc.ProfessionalID,
		Slot:           slot,
	}, nil
}

// MarkSlotBooked sets isBooked only where it is still false; the condition lives
// in both the document filter and the array filter, so two concurrent callers
// cannot both match.
func (r *MongoScheduleRepo) MarkSlotBooked(ctx context.Context, slotID, appointmentID string) (*models.Slot, error) {
	filter := bson.M{
		"days": bson.M{"$elemMatch": bson.M{
			"slots": bson.M{"$elemMatch": bson.M{"id": slotID, "isBooked": false}},
		}},
	}
	update := bson.M{
		"$set": bson.M{
			"days.$[d].slots.$[s].isBooked":      true,
			"days.$[d].slots.$[s].appointmentId": appointmentID,
			"updatedAt":                          time.Now().UTC(),
		},
		"$inc": bson.M{"version": 1},
	}
	arrayFilters := []interface{}{
		bson.M{"d.slots.id": slotID},
		bson.M{"s.id": slotID, "s.isBooked": false},
	}
	return r.transitionSlot(ctx, slotID, filter, update, arrayFilters, ErrSlotBooked)
}

// MarkSlotFree clears a booking only where isBooked is still true.
func (r *MongoScheduleRepo) MarkSlotFree(ctx context.Context, slotID string) (*models.Slot, error) {
	filter := bson.M{
		"days": bson.M{"$elemMatch": bson.M{
			"slots": bson.M{"$elemMatch": bson.M{"id": slotID, "isBooked": true}},
		}},
	}
	update := bson.M{
		"$set": bson.M{
			"days.$[d].slots.$[s].isBooked":      false,
			"days.$[d].slots.$[s].appointmentId": nil,
			"updatedAt":                          time.Now().UTC(),
		},
		"$inc": bson.M{"version": 1},
	}
	arrayFilters := []interface{}{
		bson.M{"d.slots.id": slotID},
		bson.M{"s.id": slotID, "s.isBooked": true},
	}
	return r.transitionSlot(ctx, slotID, filter, update, arrayFilters, ErrSlotFree)
}

func (r *MongoScheduleRepo) transitionSlot(
	ctx context.Context,
	slotID string,
	filter, update bson.M,
	arrayFilters []interface{},
	conflict error,
) (*models.Slot, error) {
	opCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetArrayFilters(options.ArrayFilters{Filters: arrayFilters}).
		SetReturnDocument(options.After)

	var doc scheduleDocument
	err := r.coll.FindOneAndUpdate(opCtx, filter, update, opts).Decode(&doc)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, classify(fmt.Errorf("failed to update slot %s: %w", slotID, err))
		}
		// Nothing matched: either the slot is gone or it is already in the target state.
		if _, findErr := r.FindSlot(ctx, slotID); findErr != nil {
			return nil, findErr
		}
		return nil, conflict
	}
	slot, ok := slotFromDocument(doc, slotID)
	if !ok {
		return nil, ErrNotFound
	}
	return &slot, nil
}

func slotFromDocument(doc scheduleDocument, slotID string) (models.Slot, bool) {
	for _, day := range doc.Days {
		for _, sl := range day.Slots {
			if sl.ID == slotID {
				return sl, true
			}
		}
	}
	return models.Slot{}, false
}
