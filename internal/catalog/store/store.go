package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
	"github.com/MrJamesThe3rd/fleetledger/internal/catalog"
	"github.com/MrJamesThe3rd/fleetledger/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectVehicleColumns = `id, name, plate, ownership, owner_name, owner_dni, daily_rate, status, created_at, updated_at`

func scanVehicle(s scanner) (*catalog.Vehicle, error) {
	var v catalog.Vehicle

	var ownerName, ownerDNI sql.NullString

	if err := s.Scan(
		&v.ID, &v.Name, &v.Plate, &v.Ownership, &ownerName, &ownerDNI,
		&v.DailyRate, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}

	v.OwnerName = ownerName.String
	v.OwnerDNI = ownerDNI.String

	return &v, nil
}

func (s *Store) CreateVehicle(ctx context.Context, v *catalog.Vehicle) error {
	query := `
		INSERT INTO vehicles (name, plate, ownership, owner_name, owner_dni, daily_rate, status, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		v.Name, v.Plate, v.Ownership, v.OwnerName, v.OwnerDNI, v.DailyRate, v.Status,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating vehicle: %w", database.Translate(err))
	}

	return nil
}

func (s *Store) GetVehicle(ctx context.Context, id uuid.UUID) (*catalog.Vehicle, error) {
	query := `SELECT ` + selectVehicleColumns + ` FROM vehicles WHERE id = $1`

	v, err := scanVehicle(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("vehicle")
		}

		return nil, fmt.Errorf("getting vehicle: %w", err)
	}

	return v, nil
}

func (s *Store) ListVehicles(ctx context.Context, status *catalog.VehicleStatus) ([]*catalog.Vehicle, error) {
	query := `SELECT ` + selectVehicleColumns + ` FROM vehicles`

	var args []any

	if status != nil {
		query += ` WHERE status = $1`

		args = append(args, *status)
	}

	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*catalog.Vehicle

	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning vehicle: %w", err)
		}

		vehicles = append(vehicles, v)
	}

	return vehicles, rows.Err()
}

func (s *Store) UpdateVehicle(ctx context.Context, v *catalog.Vehicle) error {
	query := `
		UPDATE vehicles
		SET name = $1, plate = $2, ownership = $3, owner_name = NULLIF($4, ''), owner_dni = NULLIF($5, ''),
			daily_rate = $6, status = $7, updated_at = NOW()
		WHERE id = $8
	`

	res, err := s.db.ExecContext(ctx, query,
		v.Name, v.Plate, v.Ownership, v.OwnerName, v.OwnerDNI, v.DailyRate, v.Status, v.ID,
	)
	if err != nil {
		return fmt.Errorf("updating vehicle: %w", database.Translate(err))
	}

	return expectRow(res, "vehicle")
}

func (s *Store) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting vehicle: %w", database.Translate(err))
	}

	return expectRow(res, "vehicle")
}

func (s *Store) CountRentalsByVehicle(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM rentals WHERE vehicle_id = $1`, id)
}

const selectClientColumns = `id, name, dni, phone, email, created_at`

func scanClient(s scanner) (*catalog.Client, error) {
	var c catalog.Client

	var dni, phone, email sql.NullString

	if err := s.Scan(&c.ID, &c.Name, &dni, &phone, &email, &c.CreatedAt); err != nil {
		return nil, err
	}

	c.DNI = dni.String
	c.Phone = phone.String
	c.Email = email.String

	return &c, nil
}

func (s *Store) CreateClient(ctx context.Context, c *catalog.Client) error {
	query := `
		INSERT INTO clients (name, dni, phone, email, created_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, c.Name, c.DNI, c.Phone, c.Email).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("creating client: %w", database.Translate(err))
	}

	return nil
}

func (s *Store) GetClient(ctx context.Context, id uuid.UUID) (*catalog.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("client")
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context) ([]*catalog.Client, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectClientColumns+` FROM clients ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*catalog.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	return clients, rows.Err()
}

func (s *Store) UpdateClient(ctx context.Context, c *catalog.Client) error {
	query := `
		UPDATE clients
		SET name = $1, dni = NULLIF($2, ''), phone = NULLIF($3, ''), email = NULLIF($4, '')
		WHERE id = $5
	`

	res, err := s.db.ExecContext(ctx, query, c.Name, c.DNI, c.Phone, c.Email, c.ID)
	if err != nil {
		return fmt.Errorf("updating client: %w", database.Translate(err))
	}

	return expectRow(res, "client")
}

func (s *Store) DeleteClient(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", database.Translate(err))
	}

	return expectRow(res, "client")
}

func (s *Store) CountRentalsByClient(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM rentals WHERE client_id = $1`, id)
}

func (s *Store) CountInvoicesByClient(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM invoices WHERE client_id = $1`, id)
}

func (s *Store) CreateAgent(ctx context.Context, a *catalog.Agent) error {
	return s.createPerson(ctx, "commercial_agents", a)
}

func (s *Store) ListAgents(ctx context.Context) ([]*catalog.Agent, error) {
	return s.listPeople(ctx, "commercial_agents")
}

func (s *Store) DeleteAgent(ctx context.Context, id uuid.UUID) error {
	return s.deletePerson(ctx, "commercial_agents", "agent", id)
}

func (s *Store) CreateOwner(ctx context.Context, o *catalog.Owner) error {
	return s.createPerson(ctx, "owners", o)
}

func (s *Store) ListOwners(ctx context.Context) ([]*catalog.Owner, error) {
	return s.listPeople(ctx, "owners")
}

func (s *Store) DeleteOwner(ctx context.Context, id uuid.UUID) error {
	return s.deletePerson(ctx, "owners", "owner", id)
}

// table is always one of the two constant person tables, never user input.
func (s *Store) createPerson(ctx context.Context, table string, p *catalog.Person) error {
	query := `
		INSERT INTO ` + table + ` (name, dni, phone, email, created_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, p.Name, p.DNI, p.Phone, p.Email).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("creating %s row: %w", table, database.Translate(err))
	}

	return nil
}

func (s *Store) listPeople(ctx context.Context, table string) ([]*catalog.Person, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, dni, phone, email, created_at FROM `+table+` ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", table, err)
	}
	defer rows.Close()

	var people []*catalog.Person

	for rows.Next() {
		var p catalog.Person

		var dni, phone, email sql.NullString

		if err := rows.Scan(&p.ID, &p.Name, &dni, &phone, &email, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}

		p.DNI = dni.String
		p.Phone = phone.String
		p.Email = email.String
		people = append(people, &p)
	}

	return people, rows.Err()
}

func (s *Store) deletePerson(ctx context.Context, table, entity string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", entity, database.Translate(err))
	}

	return expectRow(res, entity)
}

func (s *Store) CreateCategory(ctx context.Context, c *catalog.ExpenseCategory) error {
	query := `
		INSERT INTO expense_categories (name, type, description, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, c.Name, c.Type, c.Description).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("creating expense category: %w", database.Translate(err))
	}

	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]*catalog.ExpenseCategory, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, type, description, created_at FROM expense_categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing expense categories: %w", err)
	}
	defer rows.Close()

	var categories []*catalog.ExpenseCategory

	for rows.Next() {
		var c catalog.ExpenseCategory

		var desc sql.NullString

		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &desc, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning expense category: %w", err)
		}

		c.Description = desc.String
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expense_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting expense category: %w", database.Translate(err))
	}

	return expectRow(res, "expense category")
}

func (s *Store) CountExpensesByCategory(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM expenses WHERE category_id = $1`, id)
}

func (s *Store) count(ctx context.Context, query string, id uuid.UUID) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting dependents: %w", err)
	}

	return n, nil
}

func expectRow(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}

	if n == 0 {
		return apperr.NotFound(entity)
	}

	return nil
}
