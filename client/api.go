package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mylittlefarma/pharmacy-api/entities"
)

// API is the surface the views are wired to; every operation returns a value
// and an error, never a success flag to inspect.
type API interface {
	Login(ctx context.Context, username, password string) (entities.Session, error)
	Signup(ctx context.Context, username, email, password string, role entities.Role) error
	ListInventory(ctx context.Context) ([]entities.Medication, error)
	AddInventoryItem(ctx context.Context, name string, quantity int, price float64) error
	PlaceOrder(ctx context.Context, customer string, items []entities.OrderItem, prescriptionID, notes string) (int64, error)
	MyOrders(ctx context.Context, customer string) ([]entities.Order, error)
	PendingOrders(ctx context.Context) ([]entities.Order, error)
	FulfillOrder(ctx context.Context, id int64) error
	RejectOrder(ctx context.Context, id int64, reason string) error
	CreatePrescription(ctx context.Context, p entities.Prescription) (int64, error)
	ListPrescriptions(ctx context.Context, doctor string) ([]entities.Prescription, error)
	Health(ctx context.Context) error
}

// Compile-time check to ensure Client implements API
var _ API = (*Client)(nil)

type loginResponse struct {
	Message  string        `json:"message"`
	Token    string        `json:"token"`
	Username string        `json:"username"`
	Role     entities.Role `json:"role"`
}

// Login authenticates and returns the session record to store.
func (c *Client) Login(ctx context.Context, username, password string) (entities.Session, error) {
	var resp loginResponse
	err := c.Request(ctx, http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil {
		return entities.Session{}, err
	}

	return entities.Session{Username: resp.Username, Role: resp.Role}, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, username, email, password string, role entities.Role) error {
	return c.Request(ctx, http.MethodPost, "/api/signup", map[string]interface{}{
		"username": username,
		"email":    email,
		"password": password,
		"role":     role,
	}, nil)
}

type listResponse[T any] struct {
	Success bool `json:"success"`
	Data    []T  `json:"data"`
}

type createdResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		ID int64 `json:"id"`
	} `json:"data"`
}

// ListInventory fetches the medication catalogue.
func (c *Client) ListInventory(ctx context.Context) ([]entities.Medication, error) {
	var resp listResponse[entities.Medication]
	if err := c.Request(ctx, http.MethodGet, "/api/inventory", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// AddInventoryItem adds a medication to the catalogue.
func (c *Client) AddInventoryItem(ctx context.Context, name string, quantity int, price float64) error {
	return c.Request(ctx, http.MethodPost, "/api/inventory", map[string]interface{}{
		"name":     name,
		"quantity": quantity,
		"price":    price,
	}, nil)
}

// PlaceOrder submits an order and returns its id.
func (c *Client) PlaceOrder(ctx context.Context, customer string, items []entities.OrderItem, prescriptionID, notes string) (int64, error) {
	var resp createdResponse
	err := c.Request(ctx, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer":       customer,
		"items":          items,
		"prescriptionId": prescriptionID,
		"notes":          notes,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Data.ID, nil
}

// MyOrders lists the given customer's orders, newest first.
func (c *Client) MyOrders(ctx context.Context, customer string) ([]entities.Order, error) {
	var resp listResponse[entities.Order]
	endpoint := "/api/orders/my?customer=" + url.QueryEscape(customer)
	if err := c.Request(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// PendingOrders lists every order awaiting pharmacist action, oldest first.
func (c *Client) PendingOrders(ctx context.Context) ([]entities.Order, error) {
	var resp listResponse[entities.Order]
	if err := c.Request(ctx, http.MethodGet, "/api/orders/pending", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// FulfillOrder marks an order fulfilled.
func (c *Client) FulfillOrder(ctx context.Context, id int64) error {
	endpoint := "/api/orders/" + strconv.FormatInt(id, 10) + "/fulfill"
	return c.Request(ctx, http.MethodPost, endpoint, nil, nil)
}

// RejectOrder rejects an order with a reason.
func (c *Client) RejectOrder(ctx context.Context, id int64, reason string) error {
	endpoint := "/api/orders/" + strconv.FormatInt(id, 10) + "/reject"
	return c.Request(ctx, http.MethodPost, endpoint, map[string]string{"reason": reason}, nil)
}

// CreatePrescription submits a prescription and returns its id.
func (c *Client) CreatePrescription(ctx context.Context, p entities.Prescription) (int64, error) {
	var resp createdResponse
	err := c.Request(ctx, http.MethodPost, "/api/prescriptions", map[string]interface{}{
		"patientName":      p.PatientName,
		"doctor":           p.Doctor,
		"prescriptionType": p.Type,
		"notes":            p.Notes,
		"validUntil":       p.ValidUntil,
		"medications":      p.Medications,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Data.ID, nil
}

// ListPrescriptions lists the prescriptions written by one doctor.
func (c *Client) ListPrescriptions(ctx context.Context, doctor string) ([]entities.Prescription, error) {
	var resp listResponse[entities.Prescription]
	endpoint := "/api/prescriptions?doctor=" + url.QueryEscape(doctor)
	if err := c.Request(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

type healthResponse struct {
	Status string `json:"status"`
}

// Health checks that the server is up and reports itself healthy.
func (c *Client) Health(ctx context.Context) error {
	var resp healthResponse
	if err := c.Request(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "healthy" {
		return &apiError{StatusCode: http.StatusOK, Message: "server reported status " + resp.Status}
	}
	return nil
}
