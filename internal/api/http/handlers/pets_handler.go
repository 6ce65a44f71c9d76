package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/femcoders/pettrack/internal/api/dto"
	"github.com/femcoders/pettrack/internal/auth"
	"github.com/femcoders/pettrack/internal/domain"
	"github.com/femcoders/pettrack/internal/service"
	apperrors "github.com/femcoders/pettrack/pkg/util"
)

// PetsHandler exposes pet endpoints.
type PetsHandler struct {
	pets *service.PetService
}

// NewPetsHandler constructs handler.
func NewPetsHandler(petService *service.PetService) *PetsHandler {
	return &PetsHandler{pets: petService}
}

// List GET /api/pets.
func (h *PetsHandler) List(c *fiber.Ctx) error {
	pets, err := h.pets.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(petResponses(pets))
}

// Filter GET /api/pets/filter?name=&species=&breed=.
func (h *PetsHandler) Filter(c *fiber.Ctx) error {
	pets, err := h.pets.Filter(c.UserContext(), c.Query("name"), c.Query("species"), c.Query("breed"))
	if err != nil {
		return err
	}
	return c.JSON(petResponses(pets))
}

// Get GET /api/pets/:id.
func (h *PetsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	pet, err := h.pets.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPetResponse(pet))
}

// Create POST /api/pets.
func (h *PetsHandler) Create(c *fiber.Ctx) error {
	caller, _ := auth.PrincipalFromContext(c)
	input, err := parsePetRequest(c)
	if err != nil {
		return err
	}
	pet, err := h.pets.Create(c.UserContext(), caller, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewPetResponse(pet))
}

// Update PUT /api/pets/:id.
func (h *PetsHandler) Update(c *fiber.Ctx) error {
	caller, _ := auth.PrincipalFromContext(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}
	input, err := parsePetRequest(c)
	if err != nil {
		return err
	}
	pet, err := h.pets.Update(c.UserContext(), caller, id, input)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPetResponse(pet))
}

// Delete DELETE /api/pets/:id.
func (h *PetsHandler) Delete(c *fiber.Ctx) error {
	caller, _ := auth.PrincipalFromContext(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}
	message, err := h.pets.Delete(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: message})
}

func parsePetRequest(c *fiber.Ctx) (service.PetInput, error) {
	var req dto.PetRequest
	if err := c.BodyParser(&req); err != nil {
		return service.PetInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Species == "" || req.Breed == "" || req.Username == "" {
		return service.PetInput{}, apperrors.NewValidationError("name, species, breed, username required", nil)
	}
	birthDate, err := time.Parse(dto.DateLayout, req.BirthDate)
	if err != nil {
		return service.PetInput{}, apperrors.NewValidationError("birth_date must be YYYY-MM-DD", nil)
	}
	return service.PetInput{
		Name:      req.Name,
		Species:   req.Species,
		Breed:     req.Breed,
		BirthDate: birthDate,
		Image:     req.Image,
		Username:  req.Username,
	}, nil
}

func petResponses(pets []domain.Pet) []dto.PetResponse {
	items := make([]dto.PetResponse, 0, len(pets))
	for i := range pets {
		items = append(items, dto.NewPetResponse(&pets[i]))
	}
	return items
}
