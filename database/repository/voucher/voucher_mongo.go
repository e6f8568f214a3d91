package voucherRepo

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

// MongoVoucherRepo implements VoucherRepository using MongoDB.
type MongoVoucherRepo struct {
	vouchers    *mongo.Collection
	definitions *mongo.Collection
}

// NewMongoVoucherRepo creates a new VoucherRepository backed by MongoDB.
func NewMongoVoucherRepo() VoucherRepository {
	repo := &MongoVoucherRepo{
		vouchers:    database.Collection("client_vouchers"),
		definitions: database.Collection("bono_definitions"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoVoucherRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.vouchers.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create voucher indexes: %w", err)
	}
	if _, err := r.definitions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create definition indexes: %w", err)
	}
	return nil
}

// ListForClient retrieves a client's vouchers, newest purchase first.
func (r *MongoVoucherRepo) ListForClient(clientID string) ([]models.ClientVoucher, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "purchased_at", Value: -1}})
	cursor, err := r.vouchers.Find(ctx, bson.M{"client_id": clientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve vouchers for client %s: %w", clientID, err)
	}
	defer cursor.Close(ctx)

	var vouchers []models.ClientVoucher
	if err := cursor.All(ctx, &vouchers); err != nil {
		return nil, fmt.Errorf("failed to decode vouchers: %w", err)
	}
	return vouchers, nil
}

// GetVoucher retrieves a voucher by its unique ID.
func (r *MongoVoucherRepo) GetVoucher(id string) (*models.ClientVoucher, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var voucher models.ClientVoucher
	if err := r.vouchers.FindOne(ctx, bson.M{"id": id}).Decode(&voucher); err != nil {
		return nil, fmt.Errorf("failed to fetch voucher with id %s: %w", id, err)
	}
	return &voucher, nil
}

// GetDefinition retrieves a pack definition by ID.
func (r *MongoVoucherRepo) GetDefinition(id string) (*models.BonoDefinition, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var def models.BonoDefinition
	if err := r.definitions.FindOne(ctx, bson.M{"id": id}).Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to fetch bono definition with id %s: %w", id, err)
	}
	return &def, nil
}
