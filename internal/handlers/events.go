package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"CAMPUS_EVENTS_BACK-END/internal/dto"
	"CAMPUS_EVENTS_BACK-END/internal/models"
	"CAMPUS_EVENTS_BACK-END/internal/store"
	"CAMPUS_EVENTS_BACK-END/internal/upload"
	"CAMPUS_EVENTS_BACK-END/internal/utils"
)

// imageField is the multipart field an event image is submitted under
const imageField = "image"

// EventsHandler manages event-related endpoints
type EventsHandler struct {
	events    store.EventStore
	uploads   *upload.Store
	maxUpload int64
	logger    *logrus.Logger
}

// NewEventsHandler creates a new EventsHandler
func NewEventsHandler(events store.EventStore, uploads *upload.Store, maxUpload int64, logger *logrus.Logger) *EventsHandler {
	return &EventsHandler{events: events, uploads: uploads, maxUpload: maxUpload, logger: logger}
}

// List handles GET /api/events
// @Summary List events
// @Description List all events ordered by date ascending
// @Tags events
// @Produce json
// @Success 200 {object} dto.EventListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/events [get]
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list events")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to list events", "Server error")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toEventListResponse(events))
}

// Search handles GET /api/events/search?query=
// @Summary Search events
// @Description Case-insensitive substring search over title, description, type and location. A blank query returns all events.
// @Tags events
// @Produce json
// @Param query query string false "search text"
// @Success 200 {object} dto.EventListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/events/search [get]
func (h *EventsHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))

	var (
		events []models.Event
		err    error
	)
	if query == "" {
		// Blank query means "everything", by contract rather than by
		// substring-matching coincidence
		events, err = h.events.List(r.Context())
	} else {
		events, err = h.events.Search(r.Context(), query)
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to search events")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to search events", "Server error")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toEventListResponse(events))
}

// Detail handles GET /api/events/{id}
// @Summary Get one event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/events/{id} [get]
func (h *EventsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid event id", "id must be a UUID")
		return
	}

	event, err := h.events.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Event not found", "No such event")
			return
		}
		h.logger.WithError(err).Error("Failed to load event")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to load event", "Server error")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toEventResponse(event))
}

// Create handles POST /api/events (multipart form with optional image)
// @Summary Create an event
// @Tags events
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "title"
// @Param description formData string true "description"
// @Param date formData string true "date (YYYY-MM-DD)"
// @Param time formData string true "time of day"
// @Param location formData string true "location"
// @Param type formData string true "Academic|Cultural|Sports|Technical|Workshop|Other"
// @Param organizer formData string true "organizer"
// @Param image formData file false "event image"
// @Success 201 {object} dto.EventResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/events [post]
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.UserFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	if !h.parseForm(w, r) {
		return // Error already written by parseForm
	}

	event := &models.Event{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Time:        strings.TrimSpace(r.FormValue("time")),
		Location:    strings.TrimSpace(r.FormValue("location")),
		Type:        strings.TrimSpace(r.FormValue("type")),
		Organizer:   strings.TrimSpace(r.FormValue("organizer")),
		UserID:      user.ID,
	}
	dateStr := strings.TrimSpace(r.FormValue("date"))

	if event.Title == "" || event.Description == "" || dateStr == "" || event.Time == "" ||
		event.Location == "" || event.Type == "" || event.Organizer == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields",
			"title, description, date, time, location, type and organizer are required")
		return
	}

	date, err := utils.ParseDate(dateStr)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "date must be ISO 8601 format (YYYY-MM-DD)")
		return
	}
	event.Date = date

	if !models.ValidEventType(event.Type) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error",
			"type must be one of "+strings.Join(models.EventTypes, ", "))
		return
	}

	imagePath, ok := h.saveImage(w, r)
	if !ok {
		return // Error already written by saveImage
	}
	event.Image = imagePath

	if err := h.events.Create(r.Context(), event); err != nil {
		// The record failed; the stored file has no owner anymore
		h.uploads.Remove(imagePath)
		h.logger.WithError(err).Error("Failed to create event")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create event", "Server error")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, toEventResponse(event))
}

// Update handles PUT /api/events/{id} (multipart form with optional image).
// Only the owner may update; fields left blank keep their prior values.
// @Summary Update an event
// @Tags events
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param title formData string false "title"
// @Param description formData string false "description"
// @Param date formData string false "date (YYYY-MM-DD)"
// @Param time formData string false "time of day"
// @Param location formData string false "location"
// @Param type formData string false "Academic|Cultural|Sports|Technical|Workshop|Other"
// @Param organizer formData string false "organizer"
// @Param image formData file false "replacement image"
// @Success 200 {object} dto.EventResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/events/{id} [put]
func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.UserFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid event id", "id must be a UUID")
		return
	}

	event, err := h.events.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Event not found", "No such event")
			return
		}
		h.logger.WithError(err).Error("Failed to load event")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to load event", "Server error")
		return
	}

	// Ownership check before any side effect
	if event.UserID != user.ID {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Not authorized", "Only the owner can update this event")
		return
	}

	if !h.parseForm(w, r) {
		return // Error already written by parseForm
	}

	if v := strings.TrimSpace(r.FormValue("title")); v != "" {
		event.Title = v
	}
	if v := strings.TrimSpace(r.FormValue("description")); v != "" {
		event.Description = v
	}
	if v := strings.TrimSpace(r.FormValue("date")); v != "" {
		date, err := utils.ParseDate(v)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "date must be ISO 8601 format (YYYY-MM-DD)")
			return
		}
		event.Date = date
	}
	if v := strings.TrimSpace(r.FormValue("time")); v != "" {
		event.Time = v
	}
	if v := strings.TrimSpace(r.FormValue("location")); v != "" {
		event.Location = v
	}
	if v := strings.TrimSpace(r.FormValue("type")); v != "" {
		if !models.ValidEventType(v) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error",
				"type must be one of "+strings.Join(models.EventTypes, ", "))
			return
		}
		event.Type = v
	}
	if v := strings.TrimSpace(r.FormValue("organizer")); v != "" {
		event.Organizer = v
	}

	newImage, ok := h.saveImage(w, r)
	if !ok {
		return // Error already written by saveImage
	}
	oldImage := ""
	if newImage != "" {
		oldImage = event.Image
		event.Image = newImage
	}

	if err := h.events.Update(r.Context(), event); err != nil {
		h.uploads.Remove(newImage)
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Event not found", "No such event")
			return
		}
		h.logger.WithError(err).Error("Failed to update event")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to update event", "Server error")
		return
	}

	// Replaced image: unlink the previous file, best effort
	if oldImage != "" && oldImage != newImage {
		h.uploads.Remove(oldImage)
	}

	utils.WriteJSONResponse(w, http.StatusOK, toEventResponse(event))
}

// Delete handles DELETE /api/events/{id}. Only the owner may delete; the
// associated image file is removed best effort.
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/events/{id} [delete]
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.UserFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid event id", "id must be a UUID")
		return
	}

	event, err := h.events.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Event not found", "No such event")
			return
		}
		h.logger.WithError(err).Error("Failed to load event")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to load event", "Server error")
		return
	}

	if event.UserID != user.ID {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Not authorized", "Only the owner can delete this event")
		return
	}

	if err := h.events.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Event not found", "No such event")
			return
		}
		h.logger.WithError(err).Error("Failed to delete event")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to delete event", "Server error")
		return
	}

	h.uploads.Remove(event.Image)

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Event removed"})
}

// parseForm caps the request body at the configured upload limit and parses
// the multipart form. On failure an error response has already been written.
func (h *EventsHandler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			utils.WriteErrorResponse(w, http.StatusRequestEntityTooLarge, "Upload too large",
				fmt.Sprintf("request body must not exceed %d bytes", h.maxUpload))
			return false
		}
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid form data", err.Error())
		return false
	}
	return true
}

// saveImage stores the optional uploaded image and returns its public path.
// An absent file is not an error and yields "". On failure an error response
// has already been written and ok is false.
func (h *EventsHandler) saveImage(w http.ResponseWriter, r *http.Request) (path string, ok bool) {
	file, header, err := r.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return "", true
	}
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid image upload", err.Error())
		return "", false
	}
	defer file.Close()

	path, err = h.uploads.Save(file, header)
	if err != nil {
		if errors.Is(err, upload.ErrNotImage) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid image upload", "Only image files are accepted")
			return "", false
		}
		h.logger.WithError(err).Error("Failed to store image")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to store image", "Server error")
		return "", false
	}
	return path, true
}

func toEventResponse(event *models.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:          event.ID.String(),
		Title:       event.Title,
		Description: event.Description,
		Date:        utils.FormatDate(event.Date),
		Time:        event.Time,
		Location:    event.Location,
		Type:        event.Type,
		Organizer:   event.Organizer,
		Image:       event.Image,
		UserID:      event.UserID.String(),
		CreatedAt:   utils.FormatTimestamp(event.CreatedAt),
		UpdatedAt:   utils.FormatTimestamp(event.UpdatedAt),
	}
}

func toEventListResponse(events []models.Event) dto.EventListResponse {
	items := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		items = append(items, toEventResponse(&events[i]))
	}
	return dto.EventListResponse{Events: items, Total: len(items)}
}
