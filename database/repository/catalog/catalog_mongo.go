package catalogRepo

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

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	services      *mongo.Collection
	professionals *mongo.Collection
}

// NewMongoCatalogRepo creates a new CatalogRepository backed by MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	repo := &MongoCatalogRepo{
		services:      database.Collection("services"),
		professionals: database.Collection("professionals"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCatalogRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.services.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create service indexes: %w", err)
	}
	if _, err := r.professionals.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "specialties", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create professional indexes: %w", err)
	}
	return nil
}

// ListServices retrieves every service ordered by category then name.
func (r *MongoCatalogRepo) ListServices() ([]models.Service, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.services.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

// GetService retrieves a service by its unique ID.
func (r *MongoCatalogRepo) GetService(id string) (*models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var svc models.Service
	if err := r.services.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		return nil, fmt.Errorf("failed to fetch service with id %s: %w", id, err)
	}
	return &svc, nil
}

// ListQualifiedProfessionals retrieves professionals whose specialties
// include the given service, ordered by ascending ID.
func (r *MongoCatalogRepo) ListQualifiedProfessionals(serviceID string) ([]models.Professional, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := r.professionals.Find(ctx, bson.M{"specialties": serviceID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve professionals for service %s: %w", serviceID, err)
	}
	defer cursor.Close(ctx)

	var pros []models.Professional
	if err := cursor.All(ctx, &pros); err != nil {
		return nil, fmt.Errorf("failed to decode professionals: %w", err)
	}
	return pros, nil
}

// GetProfessional retrieves a professional by ID.
func (r *MongoCatalogRepo) GetProfessional(id string) (*models.Professional, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var pro models.Professional
	if err := r.professionals.FindOne(ctx, bson.M{"id": id}).Decode(&pro); err != nil {
		return nil, fmt.Errorf("failed to fetch professional with id %s: %w", id, err)
	}
	return &pro, nil
}
