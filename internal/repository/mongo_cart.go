package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medicart/internal/models"
)

func (m *Mongo) CartLines(ctx context.Context, userID primitive.ObjectID) ([]*models.CartLine, error) {
	cur, err := m.carts.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "added_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []*models.CartItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}

	lines := make([]*models.CartLine, 0, len(items))
	for _, it := range items {
		med, err := m.MedicineByID(ctx, it.MedicineID)
		if errors.Is(err, models.ErrMedicineNotFound) {
			// Medicine removed from the catalog after it was carted.
			continue
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, &models.CartLine{
			MedicineID:           med.ID,
			Name:                 med.Name,
			Brand:                med.Brand,
			Price:                med.Price,
			Quantity:             it.Quantity,
			LineTotal:            med.Price.MulInt(it.Quantity),
			RequiresPrescription: med.RequiresPrescription,
		})
	}
	return lines, nil
}

func (m *Mongo) CartItem(ctx context.Context, userID, medicineID primitive.ObjectID) (*models.CartItem, error) {
	var it models.CartItem
	err := m.carts.FindOne(ctx, bson.M{"user_id": userID, "medicine_id": medicineID}).Decode(&it)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (m *Mongo) SetCartItem(ctx context.Context, userID, medicineID primitive.ObjectID, qty int) error {
	_, err := m.carts.UpdateOne(ctx,
		bson.M{"user_id": userID, "medicine_id": medicineID},
		bson.M{
			"$set":         bson.M{"quantity": qty},
			"$setOnInsert": bson.M{"added_at": time.Now()},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (m *Mongo) RemoveCartItem(ctx context.Context, userID, medicineID primitive.ObjectID) error {
	_, err := m.carts.DeleteOne(ctx, bson.M{"user_id": userID, "medicine_id": medicineID})
	return err
}

func (m *Mongo) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	_, err := m.carts.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

func (m *Mongo) AddWishlistItem(ctx context.Context, userID, medicineID primitive.ObjectID) error {
	_, err := m.wishlists.UpdateOne(ctx,
		bson.M{"user_id": userID, "medicine_id": medicineID},
		bson.M{"$setOnInsert": bson.M{"added_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (m *Mongo) RemoveWishlistItem(ctx context.Context, userID, medicineID primitive.ObjectID) error {
	_, err := m.wishlists.DeleteOne(ctx, bson.M{"user_id": userID, "medicine_id": medicineID})
	return err
}

func (m *Mongo) WishlistMedicines(ctx context.Context, userID primitive.ObjectID) ([]*models.Medicine, error) {
	cur, err := m.wishlists.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []*models.WishlistItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}

	meds := make([]*models.Medicine, 0, len(items))
	for _, it := range items {
		med, err := m.MedicineByID(ctx, it.MedicineID)
		if errors.Is(err, models.ErrMedicineNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		meds = append(meds, med)
	}
	return meds, nil
}
