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

// --- Prescriptions ---

func (m *Mongo) CreatePrescription(ctx context.Context, p *models.Prescription) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := m.prescriptions.InsertOne(ctx, p)
	return err
}

func (m *Mongo) PrescriptionByID(ctx context.Context, id primitive.ObjectID) (*models.Prescription, error) {
	var p models.Prescription
	err := m.prescriptions.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrPrescriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *Mongo) PrescriptionsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Prescription, error) {
	return m.findPrescriptions(ctx, bson.M{"user_id": userID})
}

func (m *Mongo) ListPrescriptions(ctx context.Context, status models.PrescriptionStatus) ([]*models.Prescription, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return m.findPrescriptions(ctx, filter)
}

func (m *Mongo) findPrescriptions(ctx context.Context, filter bson.M) ([]*models.Prescription, error) {
	cur, err := m.prescriptions.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ps []*models.Prescription
	if err := cur.All(ctx, &ps); err != nil {
		return nil, err
	}
	return ps, nil
}

// DecidePrescription only matches while the prescription is still pending;
// a decision is terminal.
func (m *Mongo) DecidePrescription(ctx context.Context, id primitive.ObjectID, status models.PrescriptionStatus, notes string) error {
	now := time.Now()
	res, err := m.prescriptions.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.PrescriptionPending},
		bson.M{"$set": bson.M{"status": status, "notes": notes, "decided_at": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := m.PrescriptionByID(ctx, id); err != nil {
			return err
		}
		return models.ErrAlreadyDecided
	}
	return nil
}

// --- Support tickets ---

func (m *Mongo) CreateTicket(ctx context.Context, t *models.SupportTicket) error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	_, err := m.tickets.InsertOne(ctx, t)
	return err
}

func (m *Mongo) TicketsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.SupportTicket, error) {
	return m.findTickets(ctx, bson.M{"user_id": userID})
}

func (m *Mongo) ListTickets(ctx context.Context, status models.TicketStatus) ([]*models.SupportTicket, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return m.findTickets(ctx, filter)
}

func (m *Mongo) findTickets(ctx context.Context, filter bson.M) ([]*models.SupportTicket, error) {
	cur, err := m.tickets.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ts []*models.SupportTicket
	if err := cur.All(ctx, &ts); err != nil {
		return nil, err
	}
	return ts, nil
}

func (m *Mongo) ReplyTicket(ctx context.Context, id primitive.ObjectID, reply string, status models.TicketStatus) error {
	res, err := m.tickets.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"admin_reply": reply, "status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrTicketNotFound
	}
	return nil
}

// --- Medicine requests ---

func (m *Mongo) CreateMedicineRequest(ctx context.Context, r *models.MedicineRequest) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	_, err := m.requests.InsertOne(ctx, r)
	return err
}

func (m *Mongo) MedicineRequestsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.MedicineRequest, error) {
	return m.findRequests(ctx, bson.M{"user_id": userID})
}

func (m *Mongo) ListMedicineRequests(ctx context.Context, status models.RequestStatus) ([]*models.MedicineRequest, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return m.findRequests(ctx, filter)
}

func (m *Mongo) findRequests(ctx context.Context, filter bson.M) ([]*models.MedicineRequest, error) {
	cur, err := m.requests.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rs []*models.MedicineRequest
	if err := cur.All(ctx, &rs); err != nil {
		return nil, err
	}
	return rs, nil
}

func (m *Mongo) TriageMedicineRequest(ctx context.Context, id primitive.ObjectID, status models.RequestStatus, notes string) error {
	res, err := m.requests.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "admin_notes": notes}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrRequestNotFound
	}
	return nil
}
