package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"medicart/internal/models"
)

// Memory is an in-memory Store guarded by a single RWMutex. It backs
// STORE=memory for local development and the handler tests. Each map mirrors
// one Mongo collection.
type Memory struct {
	mu sync.RWMutex

	users         map[primitive.ObjectID]*models.User
	medicines     map[primitive.ObjectID]*models.Medicine
	carts         map[primitive.ObjectID]map[primitive.ObjectID]*models.CartItem
	wishlists     map[primitive.ObjectID]map[primitive.ObjectID]time.Time
	coupons       map[primitive.ObjectID]*models.Coupon
	orders        map[primitive.ObjectID]*models.Order
	prescriptions map[primitive.ObjectID]*models.Prescription
	tickets       map[primitive.ObjectID]*models.SupportTicket
	requests      map[primitive.ObjectID]*models.MedicineRequest
}

func NewMemory() *Memory {
	return &Memory{
		users:         make(map[primitive.ObjectID]*models.User),
		medicines:     make(map[primitive.ObjectID]*models.Medicine),
		carts:         make(map[primitive.ObjectID]map[primitive.ObjectID]*models.CartItem),
		wishlists:     make(map[primitive.ObjectID]map[primitive.ObjectID]time.Time),
		coupons:       make(map[primitive.ObjectID]*models.Coupon),
		orders:        make(map[primitive.ObjectID]*models.Order),
		prescriptions: make(map[primitive.ObjectID]*models.Prescription),
		tickets:       make(map[primitive.ObjectID]*models.SupportTicket),
		requests:      make(map[primitive.ObjectID]*models.MedicineRequest),
	}
}

// --- Users ---

func (s *Memory) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return models.ErrDuplicateEmail
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Memory) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (s *Memory) UserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Memory) UpdateUserProfile(_ context.Context, id primitive.ObjectID, name, phone, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.ErrUserNotFound
	}
	u.Name, u.Phone, u.Address = name, phone, address
	return nil
}

func (s *Memory) UpdateUserPassword(_ context.Context, id primitive.ObjectID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (s *Memory) ListUsers(_ context.Context, page, limit int) ([]*models.User, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, page, limit), int64(len(all)), nil
}

func (s *Memory) SetUserRole(_ context.Context, id primitive.ObjectID, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.ErrUserNotFound
	}
	u.Role = role
	return nil
}

// --- Medicines ---

func (s *Memory) CreateMedicine(_ context.Context, med *models.Medicine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if med.ID.IsZero() {
		med.ID = primitive.NewObjectID()
	}
	cp := *med
	s.medicines[med.ID] = &cp
	return nil
}

func (s *Memory) MedicineByID(_ context.Context, id primitive.ObjectID) (*models.Medicine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.medicineLocked(id)
}

func (s *Memory) medicineLocked(id primitive.ObjectID) (*models.Medicine, error) {
	med, ok := s.medicines[id]
	if !ok {
		return nil, models.ErrMedicineNotFound
	}
	cp := *med
	return &cp, nil
}

func (s *Memory) UpdateMedicine(_ context.Context, med *models.Medicine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.medicines[med.ID]
	if !ok {
		return models.ErrMedicineNotFound
	}
	existing.Name = med.Name
	existing.Brand = med.Brand
	existing.Category = med.Category
	existing.Price = med.Price
	existing.Stock = med.Stock
	existing.RequiresPrescription = med.RequiresPrescription
	existing.Description = med.Description
	return nil
}

func (s *Memory) SetMedicineImage(_ context.Context, id primitive.ObjectID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	med, ok := s.medicines[id]
	if !ok {
		return models.ErrMedicineNotFound
	}
	med.ImageURL = url
	return nil
}

func (s *Memory) DeleteMedicine(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.medicines[id]; !ok {
		return models.ErrMedicineNotFound
	}
	delete(s.medicines, id)
	return nil
}

func (s *Memory) ListMedicines(_ context.Context, f MedicineFilter) ([]*models.Medicine, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []*models.Medicine
	for _, med := range s.medicines {
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(med.Name), q) &&
				!strings.Contains(strings.ToLower(med.Brand), q) {
				continue
			}
		}
		if f.Category != "" && med.Category != f.Category {
			continue
		}
		cp := *med
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, f.Page, f.Limit), int64(len(all)), nil
}

func (s *Memory) Categories(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var cats []string
	for _, med := range s.medicines {
		if med.Category != "" && !seen[med.Category] {
			seen[med.Category] = true
			cats = append(cats, med.Category)
		}
	}
	sort.Strings(cats)
	return cats, nil
}

func (s *Memory) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	med, ok := s.medicines[id]
	if !ok || med.Stock < qty {
		return models.ErrOutOfStock
	}
	med.Stock -= qty
	return nil
}

func (s *Memory) IncrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if med, ok := s.medicines[id]; ok {
		med.Stock += qty
	}
	return nil
}

// --- Cart ---

func (s *Memory) CartLines(_ context.Context, userID primitive.ObjectID) ([]*models.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]*models.CartItem, 0, len(s.carts[userID]))
	for _, it := range s.carts[userID] {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].AddedAt.Before(items[j].AddedAt) })

	lines := make([]*models.CartLine, 0, len(items))
	for _, it := range items {
		med, ok := s.medicines[it.MedicineID]
		if !ok {
			continue
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

func (s *Memory) CartItem(_ context.Context, userID, medicineID primitive.ObjectID) (*models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.carts[userID][medicineID]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (s *Memory) SetCartItem(_ context.Context, userID, medicineID primitive.ObjectID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.carts[userID] == nil {
		s.carts[userID] = make(map[primitive.ObjectID]*models.CartItem)
	}
	if it, ok := s.carts[userID][medicineID]; ok {
		it.Quantity = qty
		return nil
	}
	s.carts[userID][medicineID] = &models.CartItem{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		MedicineID: medicineID,
		Quantity:   qty,
		AddedAt:    time.Now(),
	}
	return nil
}

func (s *Memory) RemoveCartItem(_ context.Context, userID, medicineID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts[userID], medicineID)
	return nil
}

func (s *Memory) ClearCart(_ context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

// --- Wishlist ---

func (s *Memory) AddWishlistItem(_ context.Context, userID, medicineID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wishlists[userID] == nil {
		s.wishlists[userID] = make(map[primitive.ObjectID]time.Time)
	}
	if _, ok := s.wishlists[userID][medicineID]; !ok {
		s.wishlists[userID][medicineID] = time.Now()
	}
	return nil
}

func (s *Memory) RemoveWishlistItem(_ context.Context, userID, medicineID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.wishlists[userID], medicineID)
	return nil
}

func (s *Memory) WishlistMedicines(_ context.Context, userID primitive.ObjectID) ([]*models.Medicine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meds := make([]*models.Medicine, 0, len(s.wishlists[userID]))
	for id := range s.wishlists[userID] {
		if med, ok := s.medicines[id]; ok {
			cp := *med
			meds = append(meds, &cp)
		}
	}
	sort.Slice(meds, func(i, j int) bool { return meds[i].Name < meds[j].Name })
	return meds, nil
}

// --- Coupons ---

func (s *Memory) CreateCoupon(_ context.Context, c *models.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.coupons {
		if existing.Code == c.Code {
			return models.ErrCouponExists
		}
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	cp := *c
	s.coupons[c.ID] = &cp
	return nil
}

func (s *Memory) CouponByCode(_ context.Context, code string) (*models.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.couponByCodeLocked(code)
}

func (s *Memory) couponByCodeLocked(code string) (*models.Coupon, error) {
	for _, c := range s.coupons {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, models.ErrCouponNotFound
}

func (s *Memory) UpdateCoupon(_ context.Context, c *models.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.coupons[c.ID]
	if !ok {
		return models.ErrCouponNotFound
	}
	existing.Percent = c.Percent
	existing.MinOrder = c.MinOrder
	existing.MaxDiscount = c.MaxDiscount
	existing.UsageLimit = c.UsageLimit
	existing.ValidFrom = c.ValidFrom
	existing.ValidUntil = c.ValidUntil
	existing.Active = c.Active
	return nil
}

func (s *Memory) DeleteCoupon(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.coupons[id]; !ok {
		return models.ErrCouponNotFound
	}
	delete(s.coupons, id)
	return nil
}

func (s *Memory) ListCoupons(_ context.Context) ([]*models.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*models.Coupon, 0, len(s.coupons))
	for _, c := range s.coupons {
		cp := *c
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return all, nil
}

func (s *Memory) RedeemCoupon(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.coupons {
		if c.Code != code {
			continue
		}
		if c.UsageLimit != nil && c.Used >= *c.UsageLimit {
			return models.ErrUsageLimitReached
		}
		c.Used++
		return nil
	}
	return models.ErrCouponNotFound
}

func (s *Memory) ReleaseCoupon(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.coupons {
		if c.Code == code && c.Used > 0 {
			c.Used--
		}
	}
	return nil
}

// --- Orders ---

func (s *Memory) CreateOrder(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	s.orders[o.ID] = &cp
	return nil
}

func (s *Memory) OrderByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (s *Memory) OrdersByUser(_ context.Context, userID primitive.ObjectID) ([]*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var orders []*models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			cp := *o
			cp.Items = append([]models.OrderItem(nil), o.Items...)
			orders = append(orders, &cp)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (s *Memory) ListOrders(_ context.Context, f OrderFilter) ([]*models.Order, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []*models.Order
	for _, o := range s.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		cp := *o
		cp.Items = append([]models.OrderItem(nil), o.Items...)
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, f.Page, f.Limit), int64(len(all)), nil
}

func (s *Memory) SetOrderStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return models.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (s *Memory) SetPaymentStatus(_ context.Context, id primitive.ObjectID, status models.PaymentStatus, paymentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return models.ErrOrderNotFound
	}
	o.PaymentStatus = status
	if paymentID != "" {
		o.PaymentID = paymentID
	}
	return nil
}

// --- Prescriptions ---

func (s *Memory) CreatePrescription(_ context.Context, p *models.Prescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	s.prescriptions[p.ID] = &cp
	return nil
}

func (s *Memory) PrescriptionByID(_ context.Context, id primitive.ObjectID) (*models.Prescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prescriptions[id]
	if !ok {
		return nil, models.ErrPrescriptionNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Memory) PrescriptionsByUser(_ context.Context, userID primitive.ObjectID) ([]*models.Prescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ps []*models.Prescription
	for _, p := range s.prescriptions {
		if p.UserID == userID {
			cp := *p
			ps = append(ps, &cp)
		}
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].CreatedAt.After(ps[j].CreatedAt) })
	return ps, nil
}

func (s *Memory) ListPrescriptions(_ context.Context, status models.PrescriptionStatus) ([]*models.Prescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ps []*models.Prescription
	for _, p := range s.prescriptions {
		if status != "" && p.Status != status {
			continue
		}
		cp := *p
		ps = append(ps, &cp)
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].CreatedAt.After(ps[j].CreatedAt) })
	return ps, nil
}

func (s *Memory) DecidePrescription(_ context.Context, id primitive.ObjectID, status models.PrescriptionStatus, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.prescriptions[id]
	if !ok {
		return models.ErrPrescriptionNotFound
	}
	if p.Status != models.PrescriptionPending {
		return models.ErrAlreadyDecided
	}
	now := time.Now()
	p.Status = status
	p.Notes = notes
	p.DecidedAt = &now
	return nil
}

// --- Support tickets ---

func (s *Memory) CreateTicket(_ context.Context, t *models.SupportTicket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	cp := *t
	s.tickets[t.ID] = &cp
	return nil
}

func (s *Memory) TicketsByUser(_ context.Context, userID primitive.ObjectID) ([]*models.SupportTicket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ts []*models.SupportTicket
	for _, t := range s.tickets {
		if t.UserID == userID {
			cp := *t
			ts = append(ts, &cp)
		}
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].CreatedAt.After(ts[j].CreatedAt) })
	return ts, nil
}

func (s *Memory) ListTickets(_ context.Context, status models.TicketStatus) ([]*models.SupportTicket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ts []*models.SupportTicket
	for _, t := range s.tickets {
		if status != "" && t.Status != status {
			continue
		}
		cp := *t
		ts = append(ts, &cp)
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].CreatedAt.After(ts[j].CreatedAt) })
	return ts, nil
}

func (s *Memory) ReplyTicket(_ context.Context, id primitive.ObjectID, reply string, status models.TicketStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return models.ErrTicketNotFound
	}
	t.AdminReply = reply
	t.Status = status
	return nil
}

// --- Medicine requests ---

func (s *Memory) CreateMedicineRequest(_ context.Context, r *models.MedicineRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	cp := *r
	s.requests[r.ID] = &cp
	return nil
}

func (s *Memory) MedicineRequestsByUser(_ context.Context, userID primitive.ObjectID) ([]*models.MedicineRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rs []*models.MedicineRequest
	for _, r := range s.requests {
		if r.UserID == userID {
			cp := *r
			rs = append(rs, &cp)
		}
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].CreatedAt.After(rs[j].CreatedAt) })
	return rs, nil
}

func (s *Memory) ListMedicineRequests(_ context.Context, status models.RequestStatus) ([]*models.MedicineRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rs []*models.MedicineRequest
	for _, r := range s.requests {
		if status != "" && r.Status != status {
			continue
		}
		cp := *r
		rs = append(rs, &cp)
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].CreatedAt.After(rs[j].CreatedAt) })
	return rs, nil
}

func (s *Memory) TriageMedicineRequest(_ context.Context, id primitive.ObjectID, status models.RequestStatus, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return models.ErrRequestNotFound
	}
	r.Status = status
	r.AdminNotes = notes
	return nil
}

// --- Analytics ---

func (s *Memory) CountUsers(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

func (s *Memory) CountMedicines(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.medicines)), nil
}

func (s *Memory) CountOrders(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.orders)), nil
}

func (s *Memory) CountLowStock(_ context.Context, threshold int) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, med := range s.medicines {
		if med.Stock <= threshold {
			n++
		}
	}
	return n, nil
}

func (s *Memory) Revenue(_ context.Context, from, to time.Time) (models.Money, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := models.MoneyFromInt(0)
	for _, o := range s.orders {
		if o.PaymentStatus != models.PaymentStatusPaid {
			continue
		}
		if !from.IsZero() && o.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && o.CreatedAt.After(to) {
			continue
		}
		total = total.Add(o.Total)
	}
	return total, nil
}

func (s *Memory) RevenueByMonth(_ context.Context) ([]MonthlyRevenue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byMonth := make(map[string]*MonthlyRevenue)
	for _, o := range s.orders {
		if o.PaymentStatus != models.PaymentStatusPaid {
			continue
		}
		month := o.CreatedAt.Format("2006-01")
		row, ok := byMonth[month]
		if !ok {
			row = &MonthlyRevenue{Month: month, Revenue: models.MoneyFromInt(0)}
			byMonth[month] = row
		}
		row.Orders++
		row.Revenue = row.Revenue.Add(o.Total)
	}
	out := make([]MonthlyRevenue, 0, len(byMonth))
	for _, row := range byMonth {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (s *Memory) SalesByCategory(_ context.Context) ([]CategorySales, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byCat := make(map[string]*CategorySales)
	for _, o := range s.orders {
		if o.PaymentStatus != models.PaymentStatusPaid {
			continue
		}
		for _, it := range o.Items {
			med, ok := s.medicines[it.MedicineID]
			if !ok {
				continue
			}
			row, ok := byCat[med.Category]
			if !ok {
				row = &CategorySales{Category: med.Category, Revenue: models.MoneyFromInt(0)}
				byCat[med.Category] = row
			}
			row.Quantity += int64(it.Quantity)
			row.Revenue = row.Revenue.Add(it.Price.MulInt(it.Quantity))
		}
	}
	out := make([]CategorySales, 0, len(byCat))
	for _, row := range byCat {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	return out, nil
}

func (s *Memory) OrdersByPaymentMethod(_ context.Context) ([]MethodCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byMethod := make(map[models.PaymentMethod]int64)
	for _, o := range s.orders {
		byMethod[o.PaymentMethod]++
	}
	out := make([]MethodCount, 0, len(byMethod))
	for method, count := range byMethod {
		out = append(out, MethodCount{Method: method, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

func (s *Memory) TopMedicines(_ context.Context, n int) ([]MedicineRevenue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byMed := make(map[primitive.ObjectID]*MedicineRevenue)
	for _, o := range s.orders {
		if o.PaymentStatus != models.PaymentStatusPaid {
			continue
		}
		for _, it := range o.Items {
			row, ok := byMed[it.MedicineID]
			if !ok {
				row = &MedicineRevenue{MedicineID: it.MedicineID, Name: it.Name, Revenue: models.MoneyFromInt(0)}
				byMed[it.MedicineID] = row
			}
			row.Quantity += int64(it.Quantity)
			row.Revenue = row.Revenue.Add(it.Price.MulInt(it.Quantity))
		}
	}
	out := make([]MedicineRevenue, 0, len(byMed))
	for _, row := range byMed {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func paginate[T any](all []T, page, limit int) []T {
	if limit <= 0 {
		return all
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(all) {
		return nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
