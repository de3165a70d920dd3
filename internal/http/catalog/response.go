package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/catalog"
)

type vehicleResponse struct {
	ID        uuid.UUID             `json:"id"`
	Name      string                `json:"name"`
	Plate     string                `json:"plate"`
	Ownership catalog.Ownership     `json:"ownership"`
	OwnerName string                `json:"owner_name,omitempty"`
	OwnerDNI  string                `json:"owner_dni,omitempty"`
	DailyRate int64                 `json:"daily_rate"`
	Status    catalog.VehicleStatus `json:"status"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt *time.Time            `json:"updated_at,omitempty"`
}

type personResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	DNI       string    `json:"dni,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type categoryResponse struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Type        catalog.CategoryType `json:"type"`
	Description string               `json:"description,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

func toVehicleResponse(v *catalog.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:        v.ID,
		Name:      v.Name,
		Plate:     v.Plate,
		Ownership: v.Ownership,
		OwnerName: v.OwnerName,
		OwnerDNI:  v.OwnerDNI,
		DailyRate: v.DailyRate,
		Status:    v.Status,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func toClientResponse(c *catalog.Client) personResponse {
	return personResponse{
		ID:        c.ID,
		Name:      c.Name,
		DNI:       c.DNI,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

func toPersonResponse(p *catalog.Person) personResponse {
	return personResponse{
		ID:        p.ID,
		Name:      p.Name,
		DNI:       p.DNI,
		Phone:     p.Phone,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
	}
}

func toCategoryResponse(c *catalog.ExpenseCategory) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Type:        c.Type,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

func toList[T, R any](items []*T, fn func(*T) R) []R {
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}

	return out
}
