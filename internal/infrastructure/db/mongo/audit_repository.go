package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

const collectionShiftEvents = "shift_events"

// AuditRepository appends shift lifecycle events to the shift_events
// collection. Documents are never updated.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionShiftEvents)}
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

type shiftEventDoc struct {
	EntryID      string     `bson:"entry_id"`
	UserID       string     `bson:"user_id"`
	ActorID      string     `bson:"actor_id"`
	Action       string     `bson:"action"`
	ConcertID    string     `bson:"concert_id"`
	ShiftType    string     `bson:"shift_type"`
	ClockIn      time.Time  `bson:"clock_in"`
	ClockOut     *time.Time `bson:"clock_out,omitempty"`
	RoundedHours *float64   `bson:"rounded_hours,omitempty"`
	Reason       string     `bson:"reason,omitempty"`
	OccurredAt   time.Time  `bson:"occurred_at"`
	RecordedAt   time.Time  `bson:"recorded_at"`
}

func toShiftEventDoc(ev domain.ShiftEvent) shiftEventDoc {
	doc := shiftEventDoc{
		EntryID:      ev.EntryID,
		UserID:       ev.UserID,
		ActorID:      ev.ActorID,
		Action:       string(ev.Action),
		ConcertID:    ev.ConcertID,
		ShiftType:    string(ev.ShiftType),
		ClockIn:      ev.ClockIn.UTC(),
		RoundedHours: ev.RoundedHours,
		Reason:       ev.Reason,
		OccurredAt:   ev.OccurredAt.UTC(),
		RecordedAt:   time.Now().UTC(),
	}
	if ev.ClockOut != nil {
		out := ev.ClockOut.UTC()
		doc.ClockOut = &out
	}
	return doc
}

// InsertEvent persists a single shift event.
func (r *AuditRepository) InsertEvent(ctx context.Context, ev domain.ShiftEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toShiftEventDoc(ev)); err != nil {
		return fmt.Errorf("insert shift event: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes on shift_events.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "entry_id", Value: 1}, {Key: "occurred_at", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{
			Keys:    bson.D{{Key: "action", Value: 1}},
			Options: options.Index().SetName("action_idx"),
		},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
