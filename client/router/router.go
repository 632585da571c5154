// Package router maps route names to view handlers and owns the one
// authorization policy in the client. Every navigation passes through the
// gate here; views can assume they only ever run for a session that is
// allowed to see them.
package router

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mylittlefarma/pharmacy-api/client/session"
	"github.com/mylittlefarma/pharmacy-api/entities"
	"github.com/mylittlefarma/pharmacy-api/logging"
)

// Route names, matching the location fragments the web client used.
const (
	RouteLogin              = "login"
	RouteSignup             = "signup"
	RouteHome               = "home"
	RouteOrder              = "order"
	RouteMyOrders           = "my-orders"
	RoutePendingOrders      = "pending-orders"
	RouteInventory          = "inventory"
	RouteCreatePrescription = "create-prescription"
	RoutePrescriptions      = "prescriptions"
)

// Handler renders one route for the given session. Routes reachable without
// a session receive the zero Session.
type Handler func(sess entities.Session) error

// Notifier surfaces a blocking, user-visible message.
type Notifier interface {
	Notify(message string)
}

// allowedRoutes is the fixed per-role allow-list. A role missing from this
// table can reach home and nothing else.
var allowedRoutes = map[entities.Role][]string{
	entities.RoleCustomer:     {RouteHome, RouteOrder, RouteMyOrders},
	entities.RolePharmacist:   {RouteHome, RoutePendingOrders, RouteInventory},
	entities.RolePractitioner: {RouteHome, RouteCreatePrescription, RoutePrescriptions},
}

// Router dispatches navigation through the authorization gate.
type Router struct {
	handlers map[string]Handler
	current  string
	sessions session.Store
	notifier Notifier
}

// New creates a router over the given session store and notifier.
func New(sessions session.Store, notifier Notifier) *Router {
	return &Router{
		handlers: make(map[string]Handler),
		sessions: sessions,
		notifier: notifier,
	}
}

// Register binds a handler to a route name, overwriting any previous one.
func (r *Router) Register(route string, handler Handler) {
	r.handlers[route] = handler
}

// Current returns the active route name, empty before the first navigation.
func (r *Router) Current() string {
	return r.current
}

// Resolve turns a location fragment into a route name. Empty or bare "#"
// defaults to home.
func Resolve(fragment string) string {
	route := strings.TrimPrefix(fragment, "#")
	if route == "" {
		return RouteHome
	}
	return route
}

// Navigate invokes the handler for an already-authorized route. Unknown
// routes are reported and nothing else happens.
func (r *Router) Navigate(route string, sess entities.Session) error {
	handler, ok := r.handlers[route]
	if !ok {
		logging.Error("No handler registered for route", "route", route)
		return fmt.Errorf("unknown route: %s", route)
	}

	r.current = route
	return handler(sess)
}

// Open resolves a fragment, applies the authorization gate, and navigates.
// The gate, in order: login and signup are always reachable; any other route
// requires a session, else login; each role reaches only its allow-list;
// a denial notifies the user and lands on home.
func (r *Router) Open(fragment string) error {
	route := Resolve(fragment)

	if route == RouteLogin || route == RouteSignup {
		return r.Navigate(route, entities.Session{})
	}

	sess, err := r.sessions.Get()
	if errors.Is(err, session.ErrCorruptSession) {
		r.notifier.Notify("Your saved session could not be read. Please sign in again.")
		return r.Navigate(RouteLogin, entities.Session{})
	}
	if err != nil {
		return r.Navigate(RouteLogin, entities.Session{})
	}

	if !roleAllows(sess.Role, route) {
		r.notifier.Notify("You do not have access to that page.")
		return r.Navigate(RouteHome, sess)
	}

	return r.Navigate(route, sess)
}

func roleAllows(role entities.Role, route string) bool {
	allowed, ok := allowedRoutes[role]
	if !ok {
		return route == RouteHome
	}
	for _, a := range allowed {
		if a == route {
			return true
		}
	}
	return false
}
