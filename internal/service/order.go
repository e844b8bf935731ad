package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/medistock/internal/events"
	"github.com/Skotchmaster/medistock/internal/models"
	"github.com/Skotchmaster/medistock/internal/repo"
	"github.com/Skotchmaster/medistock/internal/transport"
	"github.com/Skotchmaster/medistock/pkg/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultPreservationMinutes = 30
	MinPreservationMinutes     = 1
	MaxPreservationMinutes     = 60

	ExpiredCancelReason = "preservation time expired"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	// Index, when set, is refreshed with the new stock of confirmed items.
	Index  MedicineIndex
	Now    func() time.Time
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// PreservationMinutes defaults an absent value and clamps the rest to the allowed window.
func PreservationMinutes(m *int) int {
	if m == nil {
		return DefaultPreservationMinutes
	}
	switch v := *m; {
	case v < MinPreservationMinutes:
		return MinPreservationMinutes
	case v > MaxPreservationMinutes:
		return MaxPreservationMinutes
	default:
		return v
	}
}

func (s *OrderService) ownerStore(ctx context.Context, ownerID uuid.UUID) (*models.Store, error) {
	store, err := s.Repo.GetStoreByOwner(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "store")
	}
	return store, nil
}

func (s *OrderService) publish(ctx context.Context, typ string, order *models.Order) {
	if s.Events == nil {
		return
	}
	ev := events.OrderEvent{
		Type:        typ,
		OrderID:     order.ID,
		StoreID:     order.StoreID,
		UserID:      order.UserID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		Reason:      order.CancelReason,
		At:          s.now(),
	}
	if err := s.Events.PublishEvent(ctx, events.TopicOrderEvents, order.ID.String(), ev); err != nil {
		logging.FromContext(ctx).Warn("order_event_publish_failed", "type", typ, "order_id", order.ID, "error", err)
	}
}

// mergeItems folds repeated medicine lines into one, keeping first-seen order.
func mergeItems(items []transport.OrderItemRequest) ([]transport.OrderItemRequest, error) {
	merged := make([]transport.OrderItemRequest, 0, len(items))
	pos := make(map[uuid.UUID]int, len(items))
	for _, it := range items {
		if it.MedicineID == uuid.Nil {
			return nil, fmt.Errorf("%w: medicine_id required", ErrValidation)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		if i, ok := pos[it.MedicineID]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		pos[it.MedicineID] = len(merged)
		merged = append(merged, it)
	}
	return merged, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req transport.CreateOrderRequest) (*models.Order, error) {
	if req.StoreID == uuid.Nil {
		return nil, fmt.Errorf("%w: store_id required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	lines, err := mergeItems(req.Items)
	if err != nil {
		return nil, err
	}

	store, err := s.Repo.GetStore(ctx, req.StoreID)
	if err != nil {
		return nil, notFound(err, "store")
	}
	if !store.IsOpen {
		return nil, ErrStoreClosed
	}

	ids := make([]uuid.UUID, len(lines))
	for i, l := range lines {
		ids[i] = l.MedicineID
	}
	meds, err := s.Repo.MedicinesByIDs(ctx, store.ID, ids)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		med, ok := meds[l.MedicineID]
		if !ok {
			return nil, fmt.Errorf("%w: medicine %s is not sold by this store", ErrNotFound, l.MedicineID)
		}
		if l.Quantity > med.Quantity {
			return nil, fmt.Errorf("%w: only %d of %s in stock", ErrValidation, med.Quantity, med.Name)
		}

		subtotal := med.Price.Mul(decimal.NewFromInt(l.Quantity))
		total = total.Add(subtotal)
		items = append(items, models.OrderItem{
			MedicineID: med.ID,
			Name:       med.Name,
			Quantity:   l.Quantity,
			UnitPrice:  med.Price,
			Subtotal:   subtotal,
		})
	}

	order := &models.Order{
		UserID:      userID,
		StoreID:     store.ID,
		Status:      models.OrderStatusPending,
		TotalAmount: total,
		Items:       items,
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, events.OrderRequested, order)
	return order, nil
}

// explain turns a guarded update that matched nothing into not-found or an invalid transition.
func explain(ctx context.Context, r *repo.GormRepo, storeID, id uuid.UUID) error {
	order, err := r.GetOrder(ctx, id)
	if err != nil {
		return notFound(err, "order")
	}
	if order.StoreID != storeID {
		return fmt.Errorf("%w: order", ErrNotFound)
	}
	return fmt.Errorf("%w: order is %s", ErrInvalidTransition, order.Status)
}

func (s *OrderService) transition(ctx context.Context, ownerID, id uuid.UUID, from []models.OrderStatus, fields map[string]any, eventType string) (*models.Order, error) {
	store, err := s.ownerStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	n, err := s.Repo.TransitionOrder(ctx, id, store.ID, from, fields)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, explain(ctx, s.Repo, store.ID, id)
	}

	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order")
	}
	s.publish(ctx, eventType, order)
	return order, nil
}

// Approve reserves a pending order for pickup until now + minutes (see PreservationMinutes).
func (s *OrderService) Approve(ctx context.Context, ownerID, id uuid.UUID, minutes *int) (*models.Order, error) {
	now := s.now()
	expires := now.Add(time.Duration(PreservationMinutes(minutes)) * time.Minute)
	return s.transition(ctx, ownerID, id,
		[]models.OrderStatus{models.OrderStatusPending},
		map[string]any{
			"status":                  models.OrderStatusApproved,
			"approved_at":             now,
			"preservation_expires_at": expires,
		},
		events.OrderApproved)
}

// Confirm marks an approved order picked up and takes its quantities out of stock.
// The status change and every decrement commit together or not at all.
func (s *OrderService) Confirm(ctx context.Context, ownerID, id uuid.UUID) (*models.Order, error) {
	store, err := s.ownerStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var confirmed *models.Order
	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		n, err := tx.TransitionOrder(ctx, id, store.ID,
			[]models.OrderStatus{models.OrderStatusApproved},
			map[string]any{"status": models.OrderStatusConfirmed, "confirmed_at": now})
		if err != nil {
			return err
		}
		if n == 0 {
			return explain(ctx, tx, store.ID, id)
		}

		order, err := tx.GetOrder(ctx, id)
		if err != nil {
			return err
		}
		for _, it := range order.Items {
			ok, err := tx.DecrementStock(ctx, store.ID, it.MedicineID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, it.Name)
			}
		}
		confirmed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.OrderConfirmed, confirmed)
	s.reindexStock(ctx, store.ID, confirmed.Items)
	return confirmed, nil
}

// reindexStock pushes the committed quantities of items to the search index.
// Failures are logged; the database stays the source of truth.
func (s *OrderService) reindexStock(ctx context.Context, storeID uuid.UUID, items []models.OrderItem) {
	if s.Index == nil {
		return
	}
	l := logging.FromContext(ctx)
	for _, it := range items {
		med, err := s.Repo.GetStoreMedicine(ctx, storeID, it.MedicineID)
		if err == nil {
			err = s.Index.IndexMedicine(ctx, *med)
		}
		if err != nil {
			l.Warn("index_sync_failed", "medicine_id", it.MedicineID, "error", err)
		}
	}
}

func (s *OrderService) Cancel(ctx context.Context, ownerID, id uuid.UUID, reason string) (*models.Order, error) {
	return s.transition(ctx, ownerID, id,
		[]models.OrderStatus{models.OrderStatusPending, models.OrderStatusApproved},
		map[string]any{
			"status":        models.OrderStatusCancelled,
			"cancelled_at":  s.now(),
			"cancel_reason": strings.TrimSpace(reason),
		},
		events.OrderCancelled)
}

// DeleteOrder removes a finished order. Stock is left as it is.
func (s *OrderService) DeleteOrder(ctx context.Context, ownerID, id uuid.UUID) error {
	store, err := s.ownerStore(ctx, ownerID)
	if err != nil {
		return err
	}

	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return notFound(err, "order")
	}
	if order.StoreID != store.ID {
		return fmt.Errorf("%w: order", ErrNotFound)
	}

	n, err := s.Repo.DeleteOrder(ctx, id, store.ID,
		[]models.OrderStatus{models.OrderStatusConfirmed, models.OrderStatusCancelled})
	if err != nil {
		return err
	}
	if n == 0 {
		return explain(ctx, s.Repo, store.ID, id)
	}

	s.publish(ctx, events.OrderDeleted, order)
	return nil
}

// UpdateStatus dispatches a requested target status to the matching operation.
func (s *OrderService) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, target string, minutes *int, reason string) (*models.Order, error) {
	switch models.OrderStatus(strings.ToLower(strings.TrimSpace(target))) {
	case models.OrderStatusApproved:
		return s.Approve(ctx, ownerID, id, minutes)
	case models.OrderStatusConfirmed:
		return s.Confirm(ctx, ownerID, id)
	case models.OrderStatusCancelled:
		return s.Cancel(ctx, ownerID, id, reason)
	default:
		return nil, fmt.Errorf("%w: unsupported target status %q", ErrValidation, target)
	}
}

// CancelExpired cancels approved orders whose preservation window ended at or before now.
func (s *OrderService) CancelExpired(ctx context.Context, now time.Time) (int, error) {
	now = now.UTC()
	orders, err := s.Repo.ListApprovedOrders(ctx)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for i := range orders {
		o := &orders[i]
		if !o.PreservationElapsed(now) {
			continue
		}
		n, err := s.Repo.TransitionOrder(ctx, o.ID, o.StoreID,
			[]models.OrderStatus{models.OrderStatusApproved},
			map[string]any{
				"status":        models.OrderStatusCancelled,
				"cancelled_at":  now,
				"cancel_reason": ExpiredCancelReason,
			})
		if err != nil {
			return cancelled, err
		}
		if n == 0 {
			continue
		}

		cancelled++
		o.Status = models.OrderStatusCancelled
		o.CancelledAt = &now
		o.CancelReason = ExpiredCancelReason
		s.publish(ctx, events.OrderCancelled, o)
	}
	return cancelled, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListUserOrders(ctx, userID, offset, limit)
}

func (s *OrderService) GetForUser(ctx context.Context, userID, id uuid.UUID) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	return order, nil
}

func (s *OrderService) ListForStore(ctx context.Context, ownerID uuid.UUID, status string, offset, limit int) (int64, []models.Order, error) {
	st := models.OrderStatus(strings.ToLower(strings.TrimSpace(status)))
	if st != "" && !st.Valid() {
		return 0, nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	store, err := s.ownerStore(ctx, ownerID)
	if err != nil {
		return 0, nil, err
	}
	return s.Repo.ListStoreOrders(ctx, store.ID, st, offset, limit)
}
