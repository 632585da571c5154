package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/mylittlefarma/pharmacy-api/client"
	"github.com/mylittlefarma/pharmacy-api/entities"
)

// OrderView is the customer's order screen. It owns its draft; creating a
// fresh view on navigation gives the empty-draft-per-visit behavior.
type OrderView struct {
	api   client.API
	Draft OrderDraft
}

// NewOrderView creates an order view with an empty draft.
func NewOrderView(api client.API) *OrderView {
	return &OrderView{api: api}
}

// Render lists the catalogue next to the current draft.
func (v *OrderView) Render(ctx context.Context, sess entities.Session) (string, error) {
	medications, err := v.api.ListInventory(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Place an order\n\nAvailable medications\n")
	for _, m := range medications {
		fmt.Fprintf(&b, "  [%d] %-40s %10s  stock: %d\n", m.ID, m.Name, formatPrice(m.Price), m.Quantity)
	}

	b.WriteString("\nYour order\n")
	if v.Draft.Empty() {
		b.WriteString("  (empty)\n")
	}
	for _, l := range v.Draft.Lines() {
		fmt.Fprintf(&b, "  %-40s %10s  x %d\n", l.Name, formatPrice(l.Price), l.Quantity)
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", formatPrice(v.Draft.Total()))

	return b.String(), nil
}

// Submit places the order. The empty-draft gate runs before any network
// call; a successful submit clears the draft.
func (v *OrderView) Submit(ctx context.Context, sess entities.Session, prescriptionID, notes string) (int64, error) {
	if v.Draft.Empty() {
		return 0, ErrEmptyDraft
	}

	id, err := v.api.PlaceOrder(ctx, sess.Username, v.Draft.Lines(), prescriptionID, notes)
	if err != nil {
		return 0, err
	}

	v.Draft = OrderDraft{}
	return id, nil
}

// MyOrdersView lists the signed-in customer's orders.
type MyOrdersView struct {
	api client.API
}

// NewMyOrdersView creates the my-orders view.
func NewMyOrdersView(api client.API) *MyOrdersView {
	return &MyOrdersView{api: api}
}

// Render fetches and lists the customer's orders, newest first.
func (v *MyOrdersView) Render(ctx context.Context, sess entities.Session) (string, error) {
	orders, err := v.api.MyOrders(ctx, sess.Username)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("My orders\n")
	if len(orders) == 0 {
		b.WriteString("  (no orders yet)\n")
		return b.String(), nil
	}

	for _, o := range orders {
		fmt.Fprintf(&b, "\nOrder #%d  %s  placed %s\n", o.ID, o.Status, o.CreatedDate.Format("2006-01-02 15:04"))
		for _, it := range o.Items {
			fmt.Fprintf(&b, "  %-40s %10s  x %d\n", it.Name, formatPrice(it.Price), it.Quantity)
		}
		fmt.Fprintf(&b, "  Total: %s\n", formatPrice(o.Total()))
		if o.Status == entities.OrderRejected && o.RejectReason != "" {
			fmt.Fprintf(&b, "  Rejected: %s\n", o.RejectReason)
		}
	}

	return b.String(), nil
}

// PendingOrdersView is the pharmacist's work queue.
type PendingOrdersView struct {
	api client.API
}

// NewPendingOrdersView creates the pending-orders view.
func NewPendingOrdersView(api client.API) *PendingOrdersView {
	return &PendingOrdersView{api: api}
}

// Render lists orders awaiting action, oldest first.
func (v *PendingOrdersView) Render(ctx context.Context, sess entities.Session) (string, error) {
	orders, err := v.api.PendingOrders(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Pending orders\n")
	if len(orders) == 0 {
		b.WriteString("  (nothing waiting)\n")
		return b.String(), nil
	}

	for _, o := range orders {
		fmt.Fprintf(&b, "\nOrder #%d  from %s  placed %s\n", o.ID, o.Customer, o.CreatedDate.Format("2006-01-02 15:04"))
		for _, it := range o.Items {
			fmt.Fprintf(&b, "  %-40s %10s  x %d\n", it.Name, formatPrice(it.Price), it.Quantity)
		}
		fmt.Fprintf(&b, "  Total: %s\n", formatPrice(o.Total()))
		if o.Notes != "" {
			fmt.Fprintf(&b, "  Notes: %s\n", o.Notes)
		}
	}

	return b.String(), nil
}

// Fulfill marks an order fulfilled, which also decrements stock server-side.
func (v *PendingOrdersView) Fulfill(ctx context.Context, orderID int64) error {
	return v.api.FulfillOrder(ctx, orderID)
}

// Reject rejects an order with a reason the customer will see.
func (v *PendingOrdersView) Reject(ctx context.Context, orderID int64, reason string) error {
	return v.api.RejectOrder(ctx, orderID, reason)
}
