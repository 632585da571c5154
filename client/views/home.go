package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/mylittlefarma/pharmacy-api/client"
	"github.com/mylittlefarma/pharmacy-api/entities"
)

// HomeView shows the medication catalogue. For pharmacists it also carries
// the add-to-inventory form; the router guarantees only signed-in users land
// here, so the view only branches on role for that form.
type HomeView struct {
	api client.API
}

// NewHomeView creates the home view.
func NewHomeView(api client.API) *HomeView {
	return &HomeView{api: api}
}

// Render fetches the inventory fresh and lists it.
func (v *HomeView) Render(ctx context.Context, sess entities.Session) (string, error) {
	medications, err := v.api.ListInventory(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Welcome, %s\n\nInventory\n", sess.Username)
	if len(medications) == 0 {
		b.WriteString("  (no medications in stock)\n")
	}
	for _, m := range medications {
		fmt.Fprintf(&b, "  [%d] %-40s %10s  stock: %d\n", m.ID, m.Name, formatPrice(m.Price), m.Quantity)
	}

	if sess.Role == entities.RolePharmacist {
		b.WriteString("\nAs a pharmacist you can add new medications to the inventory.\n")
	}

	return b.String(), nil
}

// AddItem submits a new medication. Only the pharmacist screen offers this
// action.
func (v *HomeView) AddItem(ctx context.Context, name string, quantity int, price float64) error {
	return v.api.AddInventoryItem(ctx, name, quantity, price)
}
