package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gram-seva/internal/domain"
	"gram-seva/internal/middleware"
	"gram-seva/internal/service/issue"
	"gram-seva/internal/service/photo"
)

type IssueHandler struct {
	issueService issue.Service
}

func NewIssueHandler(issueService issue.Service) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// Create accepts a multipart form so the photo rides along with the
// issue fields in one request.
func (h *IssueHandler) Create(c *fiber.Ctx) error {
	citizen := middleware.GetCitizen(c)
	if citizen == nil {
		return middleware.Unauthorized("Not authenticated")
	}

	input := domain.CreateIssueInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    domain.IssueCategory(c.FormValue("category")),
		Location:    c.FormValue("location"),
	}
	if input.Title == "" || input.Description == "" || input.Location == "" {
		return middleware.BadRequest("Title, description and location are required")
	}
	input.Latitude = parseFloatField(c.FormValue("latitude"))
	input.Longitude = parseFloatField(c.FormValue("longitude"))
	input.Accuracy = parseFloatField(c.FormValue("accuracy"))

	upload, err := parsePhotoUpload(c, "photo")
	if err != nil {
		return err
	}

	created, err := h.issueService.Create(c.Context(), citizen, input, upload)
	if err != nil {
		switch {
		case errors.Is(err, issue.ErrInvalidCategory):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, photo.ErrNotAnImage), errors.Is(err, photo.ErrTooLarge):
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListMine returns the citizen's own issues, optionally filtered by
// status and category.
func (h *IssueHandler) ListMine(c *fiber.Ctx) error {
	citizen := middleware.GetCitizen(c)
	if citizen == nil {
		return middleware.Unauthorized("Not authenticated")
	}

	filter := domain.IssueFilter{CitizenID: &citizen.ID}
	applyIssueQueryFilters(c, &filter)

	result, err := h.issueService.List(c.Context(), filter, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *IssueHandler) Get(c *fiber.Ctx) error {
	issueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid issue ID")
	}

	found, err := h.issueService.GetByID(c.Context(), issueID)
	if err != nil {
		if errors.Is(err, issue.ErrIssueNotFound) {
			return middleware.NotFound("Issue not found")
		}
		return err
	}

	// Citizens may only read their own issues; admins see everything.
	if citizen := middleware.GetCitizen(c); citizen != nil && found.CitizenID != citizen.ID {
		return middleware.Forbidden("Not your issue")
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

// ListForAdmin returns the admin's assigned issues, or every issue when
// all=true.
func (h *IssueHandler) ListForAdmin(c *fiber.Ctx) error {
	admin := middleware.GetAdmin(c)
	if admin == nil {
		return middleware.Unauthorized("Not authenticated")
	}

	filter := domain.IssueFilter{}
	if c.Query("all") != "true" {
		filter.AssignedTo = &admin.ID
	}
	applyIssueQueryFilters(c, &filter)

	result, err := h.issueService.List(c.Context(), filter, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *IssueHandler) UpdateStatus(c *fiber.Ctx) error {
	admin := middleware.GetAdmin(c)
	if admin == nil {
		return middleware.Unauthorized("Not authenticated")
	}

	issueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid issue ID")
	}

	input := domain.UpdateIssueStatusInput{
		Status: domain.IssueStatus(c.FormValue("status")),
	}
	if notes := c.FormValue("admin_notes"); notes != "" {
		input.AdminNotes = &notes
	}

	upload, err := parsePhotoUpload(c, "resolution_photo")
	if err != nil {
		return err
	}

	updated, err := h.issueService.UpdateStatus(c.Context(), admin.ID, issueID, input, upload)
	if err != nil {
		switch {
		case errors.Is(err, issue.ErrIssueNotFound):
			return middleware.NotFound("Issue not found")
		case errors.Is(err, issue.ErrNotAssigned):
			return middleware.Forbidden(err.Error())
		case errors.Is(err, issue.ErrInvalidStatus):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, issue.ErrInvalidTransition):
			return middleware.UnprocessableEntity(err.Error())
		case errors.Is(err, photo.ErrNotAnImage), errors.Is(err, photo.ErrTooLarge):
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func applyIssueQueryFilters(c *fiber.Ctx, filter *domain.IssueFilter) {
	if status := c.Query("status"); status != "" {
		s := domain.IssueStatus(status)
		filter.Status = &s
	}
	if category := c.Query("category"); category != "" {
		cat := domain.IssueCategory(category)
		filter.Category = &cat
	}
}

func parseFloatField(value string) *float64 {
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// parsePhotoUpload opens the optional multipart file; nil when the
// field is absent.
func parsePhotoUpload(c *fiber.Ctx, field string) (*issue.PhotoUpload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, middleware.BadRequest("Could not read uploaded photo")
	}

	return &issue.PhotoUpload{
		MimeType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
		Reader:   file,
	}, nil
}
