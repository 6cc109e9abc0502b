package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medicart/internal/models"
)

func (m *Mongo) CreateMedicine(ctx context.Context, med *models.Medicine) error {
	if med.ID.IsZero() {
		med.ID = primitive.NewObjectID()
	}
	_, err := m.medicines.InsertOne(ctx, med)
	return err
}

func (m *Mongo) MedicineByID(ctx context.Context, id primitive.ObjectID) (*models.Medicine, error) {
	var med models.Medicine
	err := m.medicines.FindOne(ctx, bson.M{"_id": id}).Decode(&med)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrMedicineNotFound
	}
	if err != nil {
		return nil, err
	}
	return &med, nil
}

func (m *Mongo) UpdateMedicine(ctx context.Context, med *models.Medicine) error {
	res, err := m.medicines.UpdateOne(ctx, bson.M{"_id": med.ID}, bson.M{"$set": bson.M{
		"name":                  med.Name,
		"brand":                 med.Brand,
		"category":              med.Category,
		"price":                 med.Price,
		"stock":                 med.Stock,
		"requires_prescription": med.RequiresPrescription,
		"description":           med.Description,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrMedicineNotFound
	}
	return nil
}

func (m *Mongo) SetMedicineImage(ctx context.Context, id primitive.ObjectID, url string) error {
	res, err := m.medicines.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"image_url": url}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrMedicineNotFound
	}
	return nil
}

func (m *Mongo) DeleteMedicine(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.medicines.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrMedicineNotFound
	}
	return nil
}

func (m *Mongo) ListMedicines(ctx context.Context, f MedicineFilter) ([]*models.Medicine, int64, error) {
	filter := bson.M{}
	if f.Search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": f.Search, "$options": "i"}},
			{"brand": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}

	total, err := m.medicines.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))
	cur, err := m.medicines.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var meds []*models.Medicine
	if err := cur.All(ctx, &meds); err != nil {
		return nil, 0, err
	}
	return meds, total, nil
}

func (m *Mongo) Categories(ctx context.Context) ([]string, error) {
	values, err := m.medicines.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	var cats []string
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			cats = append(cats, s)
		}
	}
	return cats, nil
}

// DecrementStock matches the document only while enough stock remains, so the
// decrement and the check are a single conditional update.
func (m *Mongo) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	res, err := m.medicines.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrOutOfStock
	}
	return nil
}

func (m *Mongo) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	_, err := m.medicines.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"stock": qty}})
	return err
}

func (m *Mongo) CountMedicines(ctx context.Context) (int64, error) {
	return m.medicines.CountDocuments(ctx, bson.M{})
}

func (m *Mongo) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	return m.medicines.CountDocuments(ctx, bson.M{"stock": bson.M{"$lte": threshold}})
}
