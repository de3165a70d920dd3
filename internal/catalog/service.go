package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/actor"
	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	CreateVehicle(ctx context.Context, v *Vehicle) error
	GetVehicle(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	ListVehicles(ctx context.Context, status *VehicleStatus) ([]*Vehicle, error)
	UpdateVehicle(ctx context.Context, v *Vehicle) error
	DeleteVehicle(ctx context.Context, id uuid.UUID) error
	CountRentalsByVehicle(ctx context.Context, id uuid.UUID) (int64, error)

	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	ListClients(ctx context.Context) ([]*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, id uuid.UUID) error
	CountRentalsByClient(ctx context.Context, id uuid.UUID) (int64, error)
	CountInvoicesByClient(ctx context.Context, id uuid.UUID) (int64, error)

	CreateAgent(ctx context.Context, a *Agent) error
	ListAgents(ctx context.Context) ([]*Agent, error)
	DeleteAgent(ctx context.Context, id uuid.UUID) error

	CreateOwner(ctx context.Context, o *Owner) error
	ListOwners(ctx context.Context) ([]*Owner, error)
	DeleteOwner(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, c *ExpenseCategory) error
	ListCategories(ctx context.Context) ([]*ExpenseCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CountExpensesByCategory(ctx context.Context, id uuid.UUID) (int64, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateVehicle(ctx context.Context, v *Vehicle) error {
	if err := validateVehicle(v); err != nil {
		return err
	}

	if v.Status == "" {
		v.Status = VehicleAvailable
	}

	return s.repo.CreateVehicle(ctx, v)
}

func (s *Service) GetVehicle(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	return s.repo.GetVehicle(ctx, id)
}

func (s *Service) ListVehicles(ctx context.Context, status *VehicleStatus) ([]*Vehicle, error) {
	return s.repo.ListVehicles(ctx, status)
}

func (s *Service) UpdateVehicle(ctx context.Context, v *Vehicle) error {
	if err := validateVehicle(v); err != nil {
		return err
	}

	return s.repo.UpdateVehicle(ctx, v)
}

// DeleteVehicle removes a vehicle that was never rented. Admin only.
func (s *Service) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	if err := actor.RequireAdmin(ctx, "deleting a vehicle"); err != nil {
		return err
	}

	rentals, err := s.repo.CountRentalsByVehicle(ctx, id)
	if err != nil {
		return err
	}

	if err := apperr.Blocked("vehicle", map[string]int64{"rentals": rentals}); err != nil {
		return err
	}

	return s.repo.DeleteVehicle(ctx, id)
}

func (s *Service) CreateClient(ctx context.Context, c *Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperr.Validation("client name is required")
	}

	return s.repo.CreateClient(ctx, c)
}

func (s *Service) GetClient(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.GetClient(ctx, id)
}

func (s *Service) ListClients(ctx context.Context) ([]*Client, error) {
	return s.repo.ListClients(ctx)
}

func (s *Service) UpdateClient(ctx context.Context, c *Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperr.Validation("client name is required")
	}

	return s.repo.UpdateClient(ctx, c)
}

// DeleteClient removes a client with no rentals and no invoices. Admin only.
func (s *Service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if err := actor.RequireAdmin(ctx, "deleting a client"); err != nil {
		return err
	}

	rentals, err := s.repo.CountRentalsByClient(ctx, id)
	if err != nil {
		return err
	}

	invoices, err := s.repo.CountInvoicesByClient(ctx, id)
	if err != nil {
		return err
	}

	if err := apperr.Blocked("client", map[string]int64{"rentals": rentals, "invoices": invoices}); err != nil {
		return err
	}

	return s.repo.DeleteClient(ctx, id)
}

func (s *Service) CreateAgent(ctx context.Context, a *Agent) error {
	if strings.TrimSpace(a.Name) == "" {
		return apperr.Validation("agent name is required")
	}

	return s.repo.CreateAgent(ctx, a)
}

func (s *Service) ListAgents(ctx context.Context) ([]*Agent, error) {
	return s.repo.ListAgents(ctx)
}

// DeleteAgent is admin only. Rentals keep the agent name snapshot.
func (s *Service) DeleteAgent(ctx context.Context, id uuid.UUID) error {
	if err := actor.RequireAdmin(ctx, "deleting an agent"); err != nil {
		return err
	}

	return s.repo.DeleteAgent(ctx, id)
}

func (s *Service) CreateOwner(ctx context.Context, o *Owner) error {
	if strings.TrimSpace(o.Name) == "" {
		return apperr.Validation("owner name is required")
	}

	return s.repo.CreateOwner(ctx, o)
}

func (s *Service) ListOwners(ctx context.Context) ([]*Owner, error) {
	return s.repo.ListOwners(ctx)
}

func (s *Service) DeleteOwner(ctx context.Context, id uuid.UUID) error {
	if err := actor.RequireAdmin(ctx, "deleting an owner"); err != nil {
		return err
	}

	return s.repo.DeleteOwner(ctx, id)
}

func (s *Service) CreateCategory(ctx context.Context, c *ExpenseCategory) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperr.Validation("category name is required")
	}

	if c.Type == "" {
		c.Type = CategoryExpense
	}

	if c.Type != CategoryExpense && c.Type != CategoryIncome {
		return apperr.Validation("unknown category type %q", c.Type)
	}

	return s.repo.CreateCategory(ctx, c)
}

func (s *Service) ListCategories(ctx context.Context) ([]*ExpenseCategory, error) {
	return s.repo.ListCategories(ctx)
}

// DeleteCategory removes a category without expenses. Admin only.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := actor.RequireAdmin(ctx, "deleting an expense category"); err != nil {
		return err
	}

	expenses, err := s.repo.CountExpensesByCategory(ctx, id)
	if err != nil {
		return err
	}

	if err := apperr.Blocked("expense category", map[string]int64{"expenses": expenses}); err != nil {
		return err
	}

	return s.repo.DeleteCategory(ctx, id)
}

func validateVehicle(v *Vehicle) error {
	if strings.TrimSpace(v.Name) == "" || strings.TrimSpace(v.Plate) == "" {
		return apperr.Validation("vehicle name and plate are required")
	}

	switch v.Ownership {
	case "":
		v.Ownership = OwnershipOwn
	case OwnershipOwn, OwnershipThirdParty:
	default:
		return apperr.Validation("unknown ownership %q", v.Ownership)
	}

	if v.DailyRate < 0 {
		return apperr.Validation("daily rate cannot be negative")
	}

	if v.Status != "" && v.Status != VehicleAvailable && v.Status != VehicleRented && v.Status != VehicleMaintenance {
		return fmt.Errorf("%w: unknown vehicle status %q", apperr.ErrValidation, v.Status)
	}

	return nil
}
