package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"medicart/internal/models"
)

// Money is stored as a string, so the pipelines go through $toDecimal before
// summing and the results come back as Decimal128.
func moneyFromBSON(v interface{}) models.Money {
	switch t := v.(type) {
	case primitive.Decimal128:
		if m, err := models.MoneyFromString(t.String()); err == nil {
			return m
		}
	case float64:
		return models.NewMoney(decimal.NewFromFloat(t))
	case int32:
		return models.MoneyFromInt(int64(t))
	case int64:
		return models.MoneyFromInt(t)
	}
	return models.MoneyFromInt(0)
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int32:
		return int64(t)
	case int64:
		return t
	case float64:
		return int64(t)
	}
	return 0
}

func (m *Mongo) Revenue(ctx context.Context, from, to time.Time) (models.Money, error) {
	match := bson.M{"payment_status": models.PaymentStatusPaid}
	window := bson.M{}
	if !from.IsZero() {
		window["$gte"] = from
	}
	if !to.IsZero() {
		window["$lte"] = to
	}
	if len(window) > 0 {
		match["created_at"] = window
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": bson.M{"$toDecimal": "$total"}}}},
	}
	cur, err := m.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return models.Money{}, err
	}
	defer cur.Close(ctx)

	var results []bson.M
	if err := cur.All(ctx, &results); err != nil {
		return models.Money{}, err
	}
	if len(results) == 0 {
		return models.MoneyFromInt(0), nil
	}
	return moneyFromBSON(results[0]["total"]), nil
}

func (m *Mongo) RevenueByMonth(ctx context.Context) ([]MonthlyRevenue, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"payment_status": models.PaymentStatusPaid}},
		{"$group": bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$created_at"}},
			"orders":  bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": bson.M{"$toDecimal": "$total"}},
		}},
		{"$sort": bson.M{"_id": 1}},
	}
	cur, err := m.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []bson.M
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]MonthlyRevenue, 0, len(rows))
	for _, row := range rows {
		month, _ := row["_id"].(string)
		out = append(out, MonthlyRevenue{
			Month:   month,
			Orders:  asInt64(row["orders"]),
			Revenue: moneyFromBSON(row["revenue"]),
		})
	}
	return out, nil
}

func (m *Mongo) SalesByCategory(ctx context.Context) ([]CategorySales, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"payment_status": models.PaymentStatusPaid}},
		{"$unwind": "$items"},
		{"$lookup": bson.M{
			"from":         "medicines",
			"localField":   "items.medicine_id",
			"foreignField": "_id",
			"as":           "medicine",
		}},
		{"$unwind": "$medicine"},
		{"$group": bson.M{
			"_id":      "$medicine.category",
			"quantity": bson.M{"$sum": "$items.quantity"},
			"revenue": bson.M{"$sum": bson.M{
				"$multiply": []interface{}{bson.M{"$toDecimal": "$items.price"}, "$items.quantity"},
			}},
		}},
		{"$sort": bson.M{"revenue": -1}},
	}
	cur, err := m.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []bson.M
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]CategorySales, 0, len(rows))
	for _, row := range rows {
		cat, _ := row["_id"].(string)
		out = append(out, CategorySales{
			Category: cat,
			Quantity: asInt64(row["quantity"]),
			Revenue:  moneyFromBSON(row["revenue"]),
		})
	}
	return out, nil
}

func (m *Mongo) OrdersByPaymentMethod(ctx context.Context) ([]MethodCount, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$payment_method", "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
	}
	cur, err := m.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []bson.M
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]MethodCount, 0, len(rows))
	for _, row := range rows {
		method, _ := row["_id"].(string)
		out = append(out, MethodCount{
			Method: models.PaymentMethod(method),
			Count:  asInt64(row["count"]),
		})
	}
	return out, nil
}

func (m *Mongo) TopMedicines(ctx context.Context, n int) ([]MedicineRevenue, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"payment_status": models.PaymentStatusPaid}},
		{"$unwind": "$items"},
		{"$group": bson.M{
			"_id":      "$items.medicine_id",
			"name":     bson.M{"$first": "$items.name"},
			"quantity": bson.M{"$sum": "$items.quantity"},
			"revenue": bson.M{"$sum": bson.M{
				"$multiply": []interface{}{bson.M{"$toDecimal": "$items.price"}, "$items.quantity"},
			}},
		}},
		{"$sort": bson.M{"revenue": -1}},
		{"$limit": n},
	}
	cur, err := m.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []bson.M
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]MedicineRevenue, 0, len(rows))
	for _, row := range rows {
		id, _ := row["_id"].(primitive.ObjectID)
		name, _ := row["name"].(string)
		out = append(out, MedicineRevenue{
			MedicineID: id,
			Name:       name,
			Quantity:   asInt64(row["quantity"]),
			Revenue:    moneyFromBSON(row["revenue"]),
		})
	}
	return out, nil
}
