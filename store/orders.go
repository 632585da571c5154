package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mylittlefarma/pharmacy-api/entities"
)

// CreateOrder inserts an order and its items in one transaction and returns
// the new order id. The order starts in the pending state.
func (d *DB) CreateOrder(ctx context.Context, o *entities.Order) (int64, error) {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (customer, prescription_id, notes) VALUES (?, ?, ?)`,
		o.Customer, o.PrescriptionID, o.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading order id: %w", err)
	}

	for _, it := range o.Items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, medication_id, name, price, quantity)
			 VALUES (?, ?, ?, ?, ?)`,
			id, it.MedicationID, it.Name, it.Price, it.Quantity,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing order: %w", err)
	}
	return id, nil
}

// GetOrder returns one order with its items.
func (d *DB) GetOrder(ctx context.Context, id int64) (*entities.Order, error) {
	var o entities.Order
	var status string

	err := d.QueryRowContext(ctx,
		`SELECT id, customer, prescription_id, notes, status, reject_reason, created_date
		 FROM orders WHERE id = ?`, id,
	).Scan(&o.ID, &o.Customer, &o.PrescriptionID, &o.Notes, &status, &o.RejectReason, &o.CreatedDate)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting order: %w", err)
	}

	o.Status = entities.OrderStatus(status)
	if err := d.loadOrderItems(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// OrdersByCustomer returns all orders placed by the given customer,
// newest first.
func (d *DB) OrdersByCustomer(ctx context.Context, customer string) ([]entities.Order, error) {
	return d.queryOrders(ctx,
		`SELECT id, customer, prescription_id, notes, status, reject_reason, created_date
		 FROM orders WHERE customer = ? ORDER BY created_date DESC, id DESC`, customer)
}

// PendingOrders returns every order still awaiting pharmacist action,
// oldest first.
func (d *DB) PendingOrders(ctx context.Context) ([]entities.Order, error) {
	return d.queryOrders(ctx,
		`SELECT id, customer, prescription_id, notes, status, reject_reason, created_date
		 FROM orders WHERE status = 'pending' ORDER BY created_date, id`)
}

// StalePendingOrders returns pending orders created before the cutoff.
func (d *DB) StalePendingOrders(ctx context.Context, cutoff time.Time) ([]entities.Order, error) {
	return d.queryOrders(ctx,
		`SELECT id, customer, prescription_id, notes, status, reject_reason, created_date
		 FROM orders WHERE status = 'pending' AND created_date < ? ORDER BY created_date, id`,
		cutoff.UTC())
}

// FulfillOrder marks a pending order fulfilled and decrements inventory
// quantities for every line, all in one transaction. If any line exceeds the
// available stock, nothing is changed and ErrInsufficientStock is returned.
func (d *DB) FulfillOrder(ctx context.Context, id int64) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = ?`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("reading order status: %w", err)
	}
	if entities.OrderStatus(status) != entities.OrderPending {
		return ErrInvalidState
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT medication_id, quantity FROM order_items WHERE order_id = ?`, id)
	if err != nil {
		return fmt.Errorf("reading order items: %w", err)
	}

	type line struct {
		medicationID int64
		quantity     int
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.medicationID, &l.quantity); err != nil {
			rows.Close()
			return fmt.Errorf("scanning order item: %w", err)
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading order items: %w", err)
	}

	for _, l := range lines {
		res, err := tx.ExecContext(ctx,
			`UPDATE inventory SET quantity = quantity - ?
			 WHERE id = ? AND quantity >= ?`,
			l.quantity, l.medicationID, l.quantity,
		)
		if err != nil {
			return fmt.Errorf("decrementing stock: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking stock update: %w", err)
		}
		if affected == 0 {
			return ErrInsufficientStock
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = 'fulfilled' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	return tx.Commit()
}

// RejectOrder marks a pending order rejected and records the reason.
func (d *DB) RejectOrder(ctx context.Context, id int64, reason string) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = ?`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("reading order status: %w", err)
	}
	if entities.OrderStatus(status) != entities.OrderPending {
		return ErrInvalidState
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = 'rejected', reject_reason = ? WHERE id = ?`,
		reason, id); err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	return tx.Commit()
}

func (d *DB) queryOrders(ctx context.Context, query string, args ...any) ([]entities.Order, error) {
	rows, err := d.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		var o entities.Order
		var status string
		if err := rows.Scan(&o.ID, &o.Customer, &o.PrescriptionID, &o.Notes,
			&status, &o.RejectReason, &o.CreatedDate); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		o.Status = entities.OrderStatus(status)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := d.loadOrderItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (d *DB) loadOrderItems(ctx context.Context, o *entities.Order) error {
	rows, err := d.QueryContext(ctx,
		`SELECT medication_id, name, price, quantity FROM order_items
		 WHERE order_id = ? ORDER BY rowid`, o.ID)
	if err != nil {
		return fmt.Errorf("loading order items: %w", err)
	}
	defer rows.Close()

	o.Items = make([]entities.OrderItem, 0)
	for rows.Next() {
		var it entities.OrderItem
		if err := rows.Scan(&it.MedicationID, &it.Name, &it.Price, &it.Quantity); err != nil {
			return fmt.Errorf("scanning order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}
