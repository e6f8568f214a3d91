package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"velora/database"
	"velora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new AppointmentRepository backed by MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &MongoAppointmentRepo{coll: database.Collection("appointments")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "professional_id", Value: 1}, {Key: "start_time", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "start_time", Value: -1}}},
		// One professional cannot hold two confirmed appointments starting
		// at the same instant. This is the storage-level arbiter for two
		// clients racing on the same slot: the second insert fails.
		{
			Keys: bson.D{{Key: "professional_id", Value: 1}, {Key: "start_time", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(
				bson.M{"status": models.AppointmentConfirmed},
			),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its unique ID.
func (r *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

// ListForRange retrieves appointments overlapping [from, to), optionally
// restricted to the given professionals.
func (r *MongoAppointmentRepo) ListForRange(professionalIDs []string, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"start_time": bson.M{"$lt": to},
		"end_time":   bson.M{"$gt": from},
	}
	if len(professionalIDs) > 0 {
		filter["professional_id"] = bson.M{"$in": professionalIDs}
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// ListForClient retrieves a client's appointments, newest first.
func (r *MongoAppointmentRepo) ListForClient(clientID string) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"client_id": clientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments for client %s: %w", clientID, err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// Create inserts a new appointment record.
func (r *MongoAppointmentRepo) Create(appt *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("the selected time is no longer available: %w", err)
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// Update applies a patch to an existing appointment and returns the updated
// record.
func (r *MongoAppointmentRepo) Update(id string, patch models.AppointmentPatch) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	if patch.StartTime != nil {
		set["start_time"] = *patch.StartTime
	}
	if patch.EndTime != nil {
		set["end_time"] = *patch.EndTime
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var appt models.Appointment
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&appt)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("the selected time is no longer available: %w", err)
		}
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("appointment with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to update appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

// Cancel flips an appointment's status to cancelled.
func (r *MongoAppointmentRepo) Cancel(id string) error {
	status := models.AppointmentCancelled
	_, err := r.Update(id, models.AppointmentPatch{Status: &status})
	return err
}

// CompletePastConfirmed flips confirmed appointments ending before the
// cutoff to completed.
func (r *MongoAppointmentRepo) CompletePastConfirmed(cutoff time.Time) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":   models.AppointmentConfirmed,
		"end_time": bson.M{"$lt": cutoff},
	}
	update := bson.M{"$set": bson.M{"status": models.AppointmentCompleted, "updated_at": time.Now()}}

	result, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to complete past appointments: %w", err)
	}
	return result.ModifiedCount, nil
}
