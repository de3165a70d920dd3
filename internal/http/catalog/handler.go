package catalog

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/catalog"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/respond"
)

type Handler struct {
	svc *catalog.Service
}

func NewHandler(svc *catalog.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) VehicleRoutes(r chi.Router) {
	r.Post("/", h.createVehicle)
	r.Get("/", h.listVehicles)
	r.Get("/{id}", h.getVehicle)
	r.Put("/{id}", h.updateVehicle)
	r.Delete("/{id}", h.deleteBy(h.svc.DeleteVehicle))
}

func (h *Handler) ClientRoutes(r chi.Router) {
	r.Post("/", h.createClient)
	r.Get("/", h.listClients)
	r.Get("/{id}", h.getClient)
	r.Put("/{id}", h.updateClient)
	r.Delete("/{id}", h.deleteBy(h.svc.DeleteClient))
}

func (h *Handler) AgentRoutes(r chi.Router) {
	r.Post("/", h.createPerson(h.svc.CreateAgent))
	r.Get("/", h.listPeople(h.svc.ListAgents))
	r.Delete("/{id}", h.deleteBy(h.svc.DeleteAgent))
}

func (h *Handler) OwnerRoutes(r chi.Router) {
	r.Post("/", h.createPerson(h.svc.CreateOwner))
	r.Get("/", h.listPeople(h.svc.ListOwners))
	r.Delete("/{id}", h.deleteBy(h.svc.DeleteOwner))
}

func (h *Handler) CategoryRoutes(r chi.Router) {
	r.Post("/", h.createCategory)
	r.Get("/", h.listCategories)
	r.Delete("/{id}", h.deleteBy(h.svc.DeleteCategory))
}

type vehicleRequest struct {
	Name      string                `json:"name"`
	Plate     string                `json:"plate"`
	Ownership catalog.Ownership     `json:"ownership"`
	OwnerName string                `json:"owner_name"`
	OwnerDNI  string                `json:"owner_dni"`
	DailyRate int64                 `json:"daily_rate"`
	Status    catalog.VehicleStatus `json:"status"`
}

func (req vehicleRequest) vehicle() *catalog.Vehicle {
	return &catalog.Vehicle{
		Name:      req.Name,
		Plate:     req.Plate,
		Ownership: req.Ownership,
		OwnerName: req.OwnerName,
		OwnerDNI:  req.OwnerDNI,
		DailyRate: req.DailyRate,
		Status:    req.Status,
	}
}

func (h *Handler) createVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	v := req.vehicle()
	if err := h.svc.CreateVehicle(r.Context(), v); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toVehicleResponse(v))
}

func (h *Handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	var status *catalog.VehicleStatus
	if s := r.URL.Query().Get("status"); s != "" {
		status = new(catalog.VehicleStatus(s))
	}

	vehicles, err := h.svc.ListVehicles(r.Context(), status)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toList(vehicles, toVehicleResponse))
}

func (h *Handler) getVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	v, err := h.svc.GetVehicle(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toVehicleResponse(v))
}

func (h *Handler) updateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req vehicleRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	v := req.vehicle()
	v.ID = id

	if err := h.svc.UpdateVehicle(r.Context(), v); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toVehicleResponse(v))
}

type personRequest struct {
	Name  string `json:"name"`
	DNI   string `json:"dni"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c := &catalog.Client{Name: req.Name, DNI: req.DNI, Phone: req.Phone, Email: req.Email}
	if err := h.svc.CreateClient(r.Context(), c); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toClientResponse(c))
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.ListClients(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toList(clients, toClientResponse))
}

func (h *Handler) getClient(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.GetClient(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toClientResponse(c))
}

func (h *Handler) updateClient(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req personRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c := &catalog.Client{ID: id, Name: req.Name, DNI: req.DNI, Phone: req.Phone, Email: req.Email}
	if err := h.svc.UpdateClient(r.Context(), c); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toClientResponse(c))
}

func (h *Handler) createPerson(create func(context.Context, *catalog.Person) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req personRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}

		p := &catalog.Person{Name: req.Name, DNI: req.DNI, Phone: req.Phone, Email: req.Email}
		if err := create(r.Context(), p); err != nil {
			respond.Error(w, r, err)
			return
		}

		respond.JSON(w, http.StatusCreated, toPersonResponse(p))
	}
}

func (h *Handler) listPeople(list func(context.Context) ([]*catalog.Person, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		people, err := list(r.Context())
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		respond.JSON(w, http.StatusOK, toList(people, toPersonResponse))
	}
}

type categoryRequest struct {
	Name        string               `json:"name"`
	Type        catalog.CategoryType `json:"type"`
	Description string               `json:"description"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c := &catalog.ExpenseCategory{Name: req.Name, Type: req.Type, Description: req.Description}
	if err := h.svc.CreateCategory(r.Context(), c); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toCategoryResponse(c))
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toList(categories, toCategoryResponse))
}

func (h *Handler) deleteBy(del func(context.Context, uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.ID(r, "id")
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		if err := del(r.Context(), id); err != nil {
			respond.Error(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
