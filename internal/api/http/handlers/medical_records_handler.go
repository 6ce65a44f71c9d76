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

// MedicalRecordsHandler exposes clinical entry endpoints.
type MedicalRecordsHandler struct {
	records *service.MedicalRecordService
}

// NewMedicalRecordsHandler constructs handler.
func NewMedicalRecordsHandler(recordService *service.MedicalRecordService) *MedicalRecordsHandler {
	return &MedicalRecordsHandler{records: recordService}
}

// List GET /api/medical-records.
func (h *MedicalRecordsHandler) List(c *fiber.Ctx) error {
	caller, _ := auth.PrincipalFromContext(c)
	records, err := h.records.List(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(recordResponses(records))
}

// Get GET /api/medical-records/:id.
func (h *MedicalRecordsHandler) Get(c *fiber.Ctx) error {
	caller, _ := auth.PrincipalFromContext(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}
	record, err := h.records.GetByID(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMedicalRecordResponse(record))
}

// ByPetName GET /api/medical-records/pet/:petName.
func (h *MedicalRecordsHandler) ByPetName(c *fiber.Ctx) error {
	caller, _ := auth.PrincipalFromContext(c)
	petName := c.Params("petName")
	if petName == "" {
		return apperrors.NewValidationError("pet name required", nil)
	}
	records, err := h.records.ListByPetName(c.UserContext(), caller, petName)
	if err != nil {
		return err
	}
	return c.JSON(recordResponses(records))
}

// Create POST /api/medical-records.
func (h *MedicalRecordsHandler) Create(c *fiber.Ctx) error {
	caller, _ := auth.PrincipalFromContext(c)
	input, err := parseMedicalRecordRequest(c)
	if err != nil {
		return err
	}
	record, err := h.records.Create(c.UserContext(), caller, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewMedicalRecordResponse(record))
}

// Update PUT /api/medical-records/:id.
func (h *MedicalRecordsHandler) Update(c *fiber.Ctx) error {
	caller, _ := auth.PrincipalFromContext(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}
	input, err := parseMedicalRecordRequest(c)
	if err != nil {
		return err
	}
	record, err := h.records.Update(c.UserContext(), caller, id, input)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMedicalRecordResponse(record))
}

// Delete DELETE /api/medical-records/:id.
func (h *MedicalRecordsHandler) Delete(c *fiber.Ctx) error {
	caller, _ := auth.PrincipalFromContext(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}
	message, err := h.records.Delete(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: message})
}

func parseMedicalRecordRequest(c *fiber.Ctx) (service.MedicalRecordInput, error) {
	var req dto.MedicalRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return service.MedicalRecordInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Description == "" || req.PetID <= 0 {
		return service.MedicalRecordInput{}, apperrors.NewValidationError("description and pet_id required", nil)
	}
	recordType, ok := domain.ParseMedicalRecordType(req.Type)
	if !ok {
		return service.MedicalRecordInput{}, apperrors.NewValidationError("unknown record type", map[string]any{"type": req.Type})
	}
	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return service.MedicalRecordInput{}, apperrors.NewValidationError("date must be YYYY-MM-DD", nil)
	}
	return service.MedicalRecordInput{
		Description: req.Description,
		Weight:      req.Weight,
		Date:        date,
		Type:        recordType,
		PetID:       req.PetID,
	}, nil
}

func recordResponses(records []domain.MedicalRecord) []dto.MedicalRecordResponse {
	items := make([]dto.MedicalRecordResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.NewMedicalRecordResponse(&records[i]))
	}
	return items
}
