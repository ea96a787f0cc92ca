package scheduleRepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Gidy30B/project02-sub000/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// scheduleDocument is the stored shape: availability is kept as an array of
// days so a slot can be addressed by id through array filters.
type scheduleDocument struct {
	ID             string            `bson:"id"`
	ProfessionalID string            `bson:"professionalId"`
	Recurrence     models.Recurrence `bson:"recurrence"`
	Days           []dayDocument     `bson:"days"`
	Version        int               `bson:"version"`
	CreatedAt      time.Time         `bson:"createdAt"`
	UpdatedAt      time.Time         `bson:"updatedAt"`
}

type dayDocument struct {
	Date  string        `bson:"date"`
	Slots []models.Slot `bson:"slots"`
}

// MongoScheduleRepo stores one document per professional in the schedules collection.
type MongoScheduleRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

var _ ScheduleRepository = (*MongoScheduleRepo)(nil)

// NewMongoScheduleRepo constructs a MongoDB ScheduleRepository. Each call is
// bounded by timeout.
func NewMongoScheduleRepo(db *mongo.Database, timeout time.Duration) *MongoScheduleRepo {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MongoScheduleRepo{
		coll:    db.Collection("schedules"),
		timeout: timeout,
	}
}

func toDocument(s *models.Schedule) scheduleDocument {
	doc := scheduleDocument{
		ID:             s.ID,
		ProfessionalID: s.ProfessionalID,
		Recurrence:     s.Recurrence,
		Version:        s.Version,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		Days:           make([]dayDocument, 0, len(s.Availability)),
	}
	for date, slots := range s.Availability {
		doc.Days = append(doc.Days, dayDocument{Date: date, Slots: slots})
	}
	sort.Slice(doc.Days, func(i, j int) bool { return doc.Days[i].Date < doc.Days[j].Date })
	return doc
}

func fromDocument(doc scheduleDocument) *models.Schedule {
	s := &models.Schedule{
		ID:             doc.ID,
		ProfessionalID: doc.ProfessionalID,
		Recurrence:     doc.Recurrence,
		Version:        doc.Version,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
		Availability:   make(map[string][]models.Slot, len(doc.Days)),
	}
	for _, day := range doc.Days {
		s.Availability[day.Date] = day.Slots
	}
	return s
}

// classify separates transient driver failures from everything else.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
