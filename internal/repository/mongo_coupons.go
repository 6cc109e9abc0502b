package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"medicart/internal/models"
)

func (m *Mongo) CreateCoupon(ctx context.Context, c *models.Coupon) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	_, err := m.coupons.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrCouponExists
	}
	return err
}

func (m *Mongo) CouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	err := m.coupons.FindOne(ctx, bson.M{"code": code}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (m *Mongo) UpdateCoupon(ctx context.Context, c *models.Coupon) error {
	res, err := m.coupons.UpdateOne(ctx, bson.M{"_id": c.ID}, bson.M{"$set": bson.M{
		"percent":      c.Percent,
		"min_order":    c.MinOrder,
		"max_discount": c.MaxDiscount,
		"usage_limit":  c.UsageLimit,
		"valid_from":   c.ValidFrom,
		"valid_until":  c.ValidUntil,
		"active":       c.Active,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrCouponNotFound
	}
	return nil
}

func (m *Mongo) DeleteCoupon(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.coupons.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrCouponNotFound
	}
	return nil
}

func (m *Mongo) ListCoupons(ctx context.Context) ([]*models.Coupon, error) {
	cur, err := m.coupons.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var coupons []*models.Coupon
	if err := cur.All(ctx, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

// RedeemCoupon increments the used count, but only while the count is still
// below the usage limit: the guard rides in the filter so the last allowance
// cannot be taken twice.
func (m *Mongo) RedeemCoupon(ctx context.Context, code string) error {
	filter := bson.M{
		"code": code,
		"$or": []bson.M{
			{"usage_limit": nil},
			{"$expr": bson.M{"$lt": []string{"$used", "$usage_limit"}}},
		},
	}
	res, err := m.coupons.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"used": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing coupon from an exhausted one.
		if _, err := m.CouponByCode(ctx, code); err != nil {
			return err
		}
		return models.ErrUsageLimitReached
	}
	return nil
}

func (m *Mongo) ReleaseCoupon(ctx context.Context, code string) error {
	_, err := m.coupons.UpdateOne(ctx,
		bson.M{"code": code, "used": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"used": -1}},
	)
	return err
}
