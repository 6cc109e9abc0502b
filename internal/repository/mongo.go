package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implements Store on top of a MongoDB database.
type Mongo struct {
	client *mongo.Client

	users         *mongo.Collection
	medicines     *mongo.Collection
	carts         *mongo.Collection
	wishlists     *mongo.Collection
	coupons       *mongo.Collection
	orders        *mongo.Collection
	prescriptions *mongo.Collection
	tickets       *mongo.Collection
	requests      *mongo.Collection
}

func OpenMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(dbName)
	m := &Mongo{
		client:        client,
		users:         db.Collection("users"),
		medicines:     db.Collection("medicines"),
		carts:         db.Collection("cart"),
		wishlists:     db.Collection("wishlist"),
		coupons:       db.Collection("coupons"),
		orders:        db.Collection("orders"),
		prescriptions: db.Collection("prescriptions"),
		tickets:       db.Collection("support_tickets"),
		requests:      db.Collection("medicine_requests"),
	}
	if err := m.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return m, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := m.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}}, Options: unique,
	})
	if err != nil {
		return err
	}
	_, err = m.coupons.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "code", Value: 1}}, Options: unique,
	})
	if err != nil {
		return err
	}
	// One cart/wishlist line per (user, medicine); upserts rely on this.
	for _, coll := range []*mongo.Collection{m.carts, m.wishlists} {
		_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "medicine_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
