package memory

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"novasalud/internal/domain/entity"
)

const (
	productPrefix  = "P"
	customerPrefix = "C"
	salePrefix     = "V"
)

// state is one immutable-once-committed version of every collection.
type state struct {
	products      []*entity.Product
	customers     []*entity.Customer
	sales         []*entity.Sale
	notifications *notificationRing
	counters      entity.Counters
}

func newState(capacity int) *state {
	return &state{notifications: newNotificationRing(capacity)}
}

func (s *state) clone() *state {
	cloned := &state{
		products:      make([]*entity.Product, 0, len(s.products)),
		customers:     make([]*entity.Customer, 0, len(s.customers)),
		sales:         make([]*entity.Sale, 0, len(s.sales)),
		notifications: s.notifications.clone(),
		counters:      s.counters,
	}
	for _, p := range s.products {
		cloned.products = append(cloned.products, p.Clone())
	}
	for _, c := range s.customers {
		cloned.customers = append(cloned.customers, c.Clone())
	}
	for _, sale := range s.sales {
		cloned.sales = append(cloned.sales, sale.Clone())
	}

	return cloned
}

// snapshot exports a deep copy suitable for persistence.
func (s *state) snapshot() *entity.Snapshot {
	draft := s.clone()

	return &entity.Snapshot{
		Products:      draft.products,
		Customers:     draft.customers,
		Sales:         draft.sales,
		Notifications: draft.notifications.items(),
		Counters:      draft.counters,
	}
}

// stateFromSnapshot rebuilds a state, raising counters past every stored id so ids are never reused.
func stateFromSnapshot(snap *entity.Snapshot, capacity int) *state {
	st := newState(capacity)
	if snap == nil {
		return st
	}

	for _, p := range snap.Products {
		if p != nil {
			st.products = append(st.products, p.Clone())
		}
	}
	for _, c := range snap.Customers {
		if c != nil {
			st.customers = append(st.customers, c.Clone())
		}
	}
	for _, sale := range snap.Sales {
		if sale != nil {
			st.sales = append(st.sales, sale.Clone())
		}
	}

	notifications := snap.Notifications
	if len(notifications) > capacity {
		notifications = notifications[:capacity]
	}
	for _, n := range slices.Backward(notifications) {
		if n != nil {
			copied := *n
			st.notifications.push(&copied)
		}
	}

	st.counters = snap.Counters
	for _, p := range st.products {
		st.counters.Product = max(st.counters.Product, idSuffix(p.ID, productPrefix))
	}
	for _, c := range st.customers {
		st.counters.Customer = max(st.counters.Customer, idSuffix(c.ID, customerPrefix))
	}
	for _, sale := range st.sales {
		st.counters.Sale = max(st.counters.Sale, idSuffix(sale.ID, salePrefix))
	}

	return st
}

func nextID(prefix string, counter *int) string {
	*counter++

	return fmt.Sprintf("%s%03d", prefix, *counter)
}

// idSuffix returns the numeric part of ids like "P007", or 0 when the id has another shape.
func idSuffix(id, prefix string) int {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0
	}

	return n
}

func (s *state) productIndex(id string) int {
	return slices.IndexFunc(s.products, func(p *entity.Product) bool { return p.ID == id })
}

func (s *state) customerIndex(id string) int {
	return slices.IndexFunc(s.customers, func(c *entity.Customer) bool { return c.ID == id })
}

func (s *state) saleIndex(id string) int {
	return slices.IndexFunc(s.sales, func(sale *entity.Sale) bool { return sale.ID == id })
}
