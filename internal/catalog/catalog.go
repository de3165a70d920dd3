package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Ownership tells whether a vehicle belongs to the business or to a third party.
type Ownership string

const (
	OwnershipOwn        Ownership = "Propia"
	OwnershipThirdParty Ownership = "Tercero"
)

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "Disponible"
	VehicleRented      VehicleStatus = "Rentado"
	VehicleMaintenance VehicleStatus = "Mantenimiento"
)

type Vehicle struct {
	ID        uuid.UUID
	Name      string
	Plate     string
	Ownership Ownership
	OwnerName string
	OwnerDNI  string
	DailyRate int64
	Status    VehicleStatus
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// DisplayName is the vehicle name, or the first 8 characters of its id when unnamed.
func (v *Vehicle) DisplayName() string {
	if v.Name != "" {
		return v.Name
	}

	return v.ID.String()[:8]
}

type Client struct {
	ID        uuid.UUID
	Name      string
	DNI       string
	Phone     string
	Email     string
	CreatedAt time.Time
}

// Person is the shape shared by commercial agents and vehicle owners.
type Person struct {
	ID        uuid.UUID
	Name      string
	DNI       string
	Phone     string
	Email     string
	CreatedAt time.Time
}

type (
	Agent = Person
	Owner = Person
)

type CategoryType string

const (
	CategoryExpense CategoryType = "Gasto"
	CategoryIncome  CategoryType = "Ingreso"
)

type ExpenseCategory struct {
	ID          uuid.UUID
	Name        string
	Type        CategoryType
	Description string
	CreatedAt   time.Time
}
