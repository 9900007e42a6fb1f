package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/facegate/facegate/internal/entity"
	"github.com/facegate/facegate/internal/service"
	"github.com/facegate/facegate/pkg/logger"
)

type Service interface {
	FacialAccess(ctx context.Context, image []byte, req service.AccessRequest) (entity.AccessDecision, error)
	PINAccess(ctx context.Context, pin string, req service.AccessRequest) (entity.AccessDecision, error)
	EnrollFace(ctx context.Context, employeeID int64, image []byte) error
	UnenrollFace(ctx context.Context, employeeID int64) error
	CreateEmployee(ctx context.Context, input service.CreateEmployeeInput) (entity.Employee, error)
	GetEmployee(ctx context.Context, id int64) (entity.Employee, error)
	ListEmployees(ctx context.Context) ([]entity.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
	GetArea(ctx context.Context, id string) (entity.Area, error)
	ListAreas(ctx context.Context) ([]entity.Area, error)
	GetAccess(ctx context.Context, id uuid.UUID) (entity.AccessEvent, error)
	ListAccesses(ctx context.Context, filter entity.AccessFilter, page entity.Page) ([]entity.AccessEvent, entity.PageInfo, error)
}

type Handler struct {
	s Service
}

func NewHandler(s Service) *Handler {
	return &Handler{
		s: s,
	}
}

// @Summary Service health check
// @Description Confirms the server is up
// @Tags system
// @Produce  json
// @Success 200 {string} string "OK"
// @Router  /api/health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("OK\n"))
}

type FacialAccessRequest struct {
	Image  []byte `json:"image" swaggertype:"string" format:"base64"`
	AreaID string `json:"area_id"`
	Type   string `json:"type"`
	Device string `json:"device,omitempty"`
}

type AccessDecisionResponse struct {
	Permitted  bool     `json:"permitted"`
	Reason     string   `json:"reason,omitempty"`
	EmployeeID *int64   `json:"employee_id,omitempty"`
	FullName   string   `json:"full_name,omitempty"`
	AreaID     string   `json:"area_id"`
	Type       string   `json:"type"`
	Method     string   `json:"method"`
	Confidence *float64 `json:"confidence,omitempty"`
	EventID    string   `json:"event_id,omitempty"`
}

func decisionResponse(d entity.AccessDecision) AccessDecisionResponse {
	resp := AccessDecisionResponse{
		Permitted: d.Permitted,
		Reason:    string(d.Reason),
		AreaID:    d.AreaID,
		Type:      string(d.Type),
		Method:    string(d.Method),
	}

	if d.Method == entity.MethodFacial || d.Permitted {
		confidence := d.Confidence
		resp.Confidence = &confidence
	}

	if d.Employee != nil {
		resp.EmployeeID = &d.Employee.ID
		resp.FullName = d.Employee.FirstName + " " + d.Employee.LastName
	}

	if d.EventID != uuid.Nil {
		resp.EventID = d.EventID.String()
	}

	return resp
}

// @Summary Request access with a face image
// @Description Identifies the person on the image and decides whether to open the area. A denial is still a 200; the decision carries the reason.
// @Tags access
// @Accept  json
// @Produce  json
// @Param   request body FacialAccessRequest true "Base64 image plus area and direction"
// @Success 200 {object} AccessDecisionResponse "Access decision"
// @Failure 400 {object} ResponseError "Malformed request"
// @Failure 422 {object} ResponseError "Invalid area or access type"
// @Failure 500 {object} ResponseError "Decision could not be made"
// @Router  /api/access/facial [post]
func (h *Handler) FacialAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctx = logger.SetLogType(ctx, "access")

	var req FacialAccessRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, msgBadRequest)
		return
	}

	if len(req.Image) == 0 {
		sendErr(ctx, w, http.StatusBadRequest, errors.New("image is required"), "An image is required")
		return
	}

	ctx = logger.SetAreaID(ctx, req.AreaID)

	decision, err := h.s.FacialAccess(ctx, req.Image, service.AccessRequest{
		AreaID: req.AreaID,
		Type:   entity.AccessType(req.Type),
		Device: req.Device,
	})
	if err != nil {
		if errors.Is(err, entity.ErrInvalidAccessType) {
			sendErr(ctx, w, http.StatusUnprocessableEntity, err, "Access type must be Entry or Exit")
			return
		}

		if errors.Is(err, entity.ErrExtraction) {
			sendErr(ctx, w, http.StatusUnprocessableEntity, err, "The image could not be processed")
			return
		}

		sendErr(ctx, w, http.StatusInternalServerError, err, msgDecisionFailed)

		return
	}

	sendJSON(ctx, w, http.StatusOK, decisionResponse(decision))
}

type PINAccessRequest struct {
	PIN    string `json:"pin"`
	AreaID string `json:"area_id"`
	Type   string `json:"type"`
	Device string `json:"device,omitempty"`
}

// @Summary Request access with a PIN
// @Description Resolves the PIN to an employee and decides whether to open the area
// @Tags access
// @Accept  json
// @Produce  json
// @Param   request body PINAccessRequest true "PIN plus area and direction"
// @Success 200 {object} AccessDecisionResponse "Access decision"
// @Failure 400 {object} ResponseError "Malformed request"
// @Failure 422 {object} ResponseError "PIN or access type has the wrong shape"
// @Failure 500 {object} ResponseError "Decision could not be made"
// @Router  /api/access/pin [post]
func (h *Handler) PINAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctx = logger.SetLogType(ctx, "access")

	var req PINAccessRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, msgBadRequest)
		return
	}

	ctx = logger.SetAreaID(ctx, req.AreaID)

	decision, err := h.s.PINAccess(ctx, req.PIN, service.AccessRequest{
		AreaID: req.AreaID,
		Type:   entity.AccessType(req.Type),
		Device: req.Device,
	})
	if err != nil {
		if errors.Is(err, entity.ErrPinFormat) {
			sendErr(ctx, w, http.StatusUnprocessableEntity, err, pinFormatText())
			return
		}

		if errors.Is(err, entity.ErrInvalidAccessType) {
			sendErr(ctx, w, http.StatusUnprocessableEntity, err, "Access type must be Entry or Exit")
			return
		}

		sendErr(ctx, w, http.StatusInternalServerError, err, msgDecisionFailed)

		return
	}

	sendJSON(ctx, w, http.StatusOK, decisionResponse(decision))
}

type AccessEventResponse struct {
	ID           string   `json:"id"`
	EmployeeID   *int64   `json:"employee_id,omitempty"`
	AreaID       string   `json:"area_id"`
	Timestamp    string   `json:"timestamp"`
	Type         string   `json:"type"`
	Method       string   `json:"method"`
	Device       string   `json:"device"`
	Confidence   *float64 `json:"confidence,omitempty"`
	Permitted    bool     `json:"permitted"`
	DenialReason string   `json:"denial_reason,omitempty"`
}

func accessEventResponse(e entity.AccessEvent) AccessEventResponse {
	return AccessEventResponse{
		ID:           e.ID.String(),
		EmployeeID:   e.EmployeeID,
		AreaID:       e.AreaID,
		Timestamp:    e.Timestamp.Format(time.RFC3339),
		Type:         string(e.Type),
		Method:       string(e.Method),
		Device:       e.Device,
		Confidence:   e.Confidence,
		Permitted:    e.Permitted,
		DenialReason: string(e.DenialReason),
	}
}

type ListAccessesResponse struct {
	Accesses []AccessEventResponse `json:"accesses"`
	Page     entity.PageInfo       `json:"page"`
}

// @Summary List recorded accesses
// @Description Filterable, paginated access log, newest first
// @Tags access
// @Produce  json
// @Param   employee_id query int false "Filter by employee"
// @Param   area_id query string false "Filter by area"
// @Param   type query string false "Entry or Exit"
// @Param   from query string false "RFC3339 lower bound"
// @Param   to query string false "RFC3339 upper bound"
// @Param   page query int false "Page number, 1-based"
// @Param   page_size query int false "Rows per page, max 100"
// @Success 200 {object} ListAccessesResponse "One page of accesses"
// @Failure 400 {object} ResponseError "Malformed filter"
// @Failure 401 {object} ResponseError "Missing or invalid operator token"
// @Failure 500 {object} ResponseError "Query failed"
// @Router  /api/access [get]
func (h *Handler) ListAccesses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctx = logger.SetLogType(ctx, "audit")

	filter, page, err := parseAccessQuery(r)
	if err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, msgBadRequest)
		return
	}

	events, info, err := h.s.ListAccesses(ctx, filter, page)
	if err != nil {
		sendErr(ctx, w, http.StatusInternalServerError, err, "Could not read the access log")
		return
	}

	resp := ListAccessesResponse{
		Accesses: make([]AccessEventResponse, 0, len(events)),
		Page:     info,
	}

	for _, e := range events {
		resp.Accesses = append(resp.Accesses, accessEventResponse(e))
	}

	sendJSON(ctx, w, http.StatusOK, resp)
}

// @Summary Get one recorded access
// @Tags access
// @Produce  json
// @Param   id path string true "Access event UUID"
// @Success 200 {object} AccessEventResponse
// @Failure 400 {object} ResponseError "Malformed UUID"
// @Failure 401 {object} ResponseError "Missing or invalid operator token"
// @Failure 404 {object} ResponseError "No such access"
// @Router  /api/access/{id} [get]
func (h *Handler) GetAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctx = logger.SetLogType(ctx, "audit")

	id, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, "Malformed access id")
		return
	}

	event, err := h.s.GetAccess(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			sendErr(ctx, w, http.StatusNotFound, err, "Access not found")
			return
		}

		sendErr(ctx, w, http.StatusInternalServerError, err, "Could not read the access")

		return
	}

	sendJSON(ctx, w, http.StatusOK, accessEventResponse(event))
}

type CreateEmployeeRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	NationalID  string `json:"national_id"`
	BirthDate   string `json:"birth_date"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	AreaID      string `json:"area_id"`
	AccessLevel int    `json:"access_level"`
	PIN         string `json:"pin,omitempty"`
}

type EmployeeResponse struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	NationalID  string `json:"national_id"`
	BirthDate   string `json:"birth_date"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	AreaID      string `json:"area_id"`
	AccessLevel int    `json:"access_level"`
	HasPIN      bool   `json:"has_pin"`
	CreatedAt   string `json:"created_at"`
}

func employeeResponse(e entity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		NationalID:  e.NationalID,
		BirthDate:   e.BirthDate,
		Email:       e.Email,
		Role:        string(e.Role),
		Status:      string(e.Status),
		AreaID:      e.AreaID,
		AccessLevel: e.AccessLevel,
		HasPIN:      e.PINHash != nil,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}

// @Summary Register an employee
// @Description Creates an employee record. The optional PIN is stored as a hash only.
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   request body CreateEmployeeRequest true "Employee data"
// @Success 201 {object} EmployeeResponse "Employee created"
// @Failure 400 {object} ResponseError "Malformed request"
// @Failure 401 {object} ResponseError "Missing or invalid operator token"
// @Failure 409 {object} ResponseError "National id or email already registered"
// @Failure 422 {object} ResponseError "Invalid role, status, level, area, or PIN"
// @Failure 500 {object} ResponseError "Could not create the employee"
// @Router  /api/employees [post]
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctx = logger.SetLogType(ctx, "admin")

	var req CreateEmployeeRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, msgBadRequest)
		return
	}

	employee, err := h.s.CreateEmployee(ctx, service.CreateEmployeeInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		NationalID:  req.NationalID,
		BirthDate:   req.BirthDate,
		Email:       req.Email,
		Role:        entity.EmployeeRole(req.Role),
		Status:      entity.EmployeeStatus(req.Status),
		AreaID:      req.AreaID,
		AccessLevel: req.AccessLevel,
		PIN:         req.PIN,
	})
	if err != nil {
		if errors.Is(err, entity.ErrAlreadyExists) {
			sendErr(ctx, w, http.StatusConflict, err, "An employee with that national id or email already exists")
			return
		}

		if errors.Is(err, entity.ErrNotFound) {
			sendErr(ctx, w, http.StatusUnprocessableEntity, err, "The assigned area does not exist")
			return
		}

		if isValidationErr(err) {
			sendErr(ctx, w, http.StatusUnprocessableEntity, err, validationErrText(err))
			return
		}

		sendErr(ctx, w, http.StatusInternalServerError, err, "Could not create the employee")

		return
	}

	sendJSON(ctx, w, http.StatusCreated, employeeResponse(employee))
}

// @Summary List employees
// @Tags employees
// @Produce  json
// @Success 200 {array} EmployeeResponse
// @Failure 401 {object} ResponseError "Missing or invalid operator token"
// @Failure 500 {object} ResponseError "Query failed"
// @Router  /api/employees [get]
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctx = logger.SetLogType(ctx, "admin")

	employees, err := h.s.ListEmployees(ctx)
	if err != nil {
		sendErr(ctx, w, http.StatusInternalServerError, err, "Could not list employees")
		return
	}

	resp := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, employeeResponse(e))
	}

	sendJSON(ctx, w, http.StatusOK, resp)
}

// @Summary Get one employee
// @Tags employees
// @Produce  json
// @Param   id path int true "Employee id"
// @Success 200 {object} EmployeeResponse
// @Failure 400 {object} ResponseError "Malformed id"
// @Failure 401 {object} ResponseError "Missing or invalid operator token"
// @Failure 404 {object} ResponseError "No such employee"
// @Router  /api/employees/{id} [get]
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctx = logger.SetLogType(ctx, "admin")

	id, ok := employeeID(ctx, w, r)
	if !ok {
		return
	}

	employee, err := h.s.GetEmployee(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			sendErr(ctx, w, http.StatusNotFound, err, msgEmployeeNotFound)
			return
		}

		sendErr(ctx, w, http.StatusInternalServerError, err, "Could not read the employee")

		return
	}

	sendJSON(ctx, w, http.StatusOK, employeeResponse(employee))
}

// @Summary Delete an employee
// @Description Removes the employee together with their biometric template
// @Tags employees
// @Produce  json
// @Param   id path int true "Employee id"
// @Success 204 "Employee deleted"
// @Failure 400 {object} ResponseError "Malformed id"
// @Failure 401 {object} ResponseError "Missing or invalid operator token"
// @Failure 404 {object} ResponseError "No such employee"
// @Router  /api/employees/{id} [delete]
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctx = logger.SetLogType(ctx, "admin")

	id, ok := employeeID(ctx, w, r)
	if !ok {
		return
	}

	err := h.s.DeleteEmployee(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			sendErr(ctx, w, http.StatusNotFound, err, msgEmployeeNotFound)
			return
		}

		sendErr(ctx, w, http.StatusInternalServerError, err, "Could not delete the employee")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type EnrollFaceRequest struct {
	Image []byte `json:"image" swaggertype:"string" format:"base64"`
}

type EnrollFaceResponse struct {
	Message string `json:"message"`
}

// @Summary Enroll or replace an employee's face template
// @Description Extracts the face embedding, encrypts it, and stores it. Re-enrolling replaces the previous template.
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   id path int true "Employee id"
// @Param   request body EnrollFaceRequest true "Base64 image with exactly one face"
// @Success 200 {object} EnrollFaceResponse "Template stored"
// @Failure 400 {object} ResponseError "Malformed request"
// @Failure 401 {object} ResponseError "Missing or invalid operator token"
// @Failure 404 {object} ResponseError "No such employee"
// @Failure 422 {object} ResponseError "No face, several faces, or an unusable image"
// @Failure 500 {object} ResponseError "Could not store the template"
// @Router  /api/employees/{id}/face [post]
func (h *Handler) EnrollFace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctx = logger.SetLogType(ctx, "enrollment")

	id, ok := employeeID(ctx, w, r)
	if !ok {
		return
	}

	var req EnrollFaceRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, msgBadRequest)
		return
	}

	if len(req.Image) == 0 {
		sendErr(ctx, w, http.StatusBadRequest, errors.New("image is required"), "An image is required")
		return
	}

	err = h.s.EnrollFace(ctx, id, req.Image)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			sendErr(ctx, w, http.StatusNotFound, err, msgEmployeeNotFound)
			return
		}

		if errors.Is(err, entity.ErrNoFace) {
			sendErr(ctx, w, http.StatusUnprocessableEntity, err, "No face was found on the image")
			return
		}

		if errors.Is(err, entity.ErrMultipleFaces) {
			sendErr(ctx, w, http.StatusUnprocessableEntity, err, "The image must contain exactly one face")
			return
		}

		if errors.Is(err, entity.ErrExtraction) || errors.Is(err, context.DeadlineExceeded) {
			sendErr(ctx, w, http.StatusUnprocessableEntity, err, "The image could not be processed")
			return
		}

		sendErr(ctx, w, http.StatusInternalServerError, err, "Could not store the face template")

		return
	}

	sendJSON(ctx, w, http.StatusOK, EnrollFaceResponse{Message: "Face template stored"})
}

// @Summary Remove an employee's face template
// @Tags employees
// @Produce  json
// @Param   id path int true "Employee id"
// @Success 204 "Template removed"
// @Failure 400 {object} ResponseError "Malformed id"
// @Failure 401 {object} ResponseError "Missing or invalid operator token"
// @Failure 404 {object} ResponseError "The employee has no template"
// @Router  /api/employees/{id}/face [delete]
func (h *Handler) UnenrollFace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctx = logger.SetLogType(ctx, "enrollment")

	id, ok := employeeID(ctx, w, r)
	if !ok {
		return
	}

	err := h.s.UnenrollFace(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNoTemplate) {
			sendErr(ctx, w, http.StatusNotFound, err, "The employee has no face template")
			return
		}

		sendErr(ctx, w, http.StatusInternalServerError, err, "Could not remove the face template")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type AreaResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AccessLevel int    `json:"access_level"`
	Active      bool   `json:"active"`
}

func areaResponse(a entity.Area) AreaResponse {
	return AreaResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		AccessLevel: a.AccessLevel,
		Active:      a.Active,
	}
}

// @Summary List plant areas
// @Tags areas
// @Produce  json
// @Success 200 {array} AreaResponse
// @Failure 500 {object} ResponseError "Query failed"
// @Router  /api/areas [get]
func (h *Handler) ListAreas(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	areas, err := h.s.ListAreas(ctx)
	if err != nil {
		sendErr(ctx, w, http.StatusInternalServerError, err, "Could not list areas")
		return
	}

	resp := make([]AreaResponse, 0, len(areas))
	for _, a := range areas {
		resp = append(resp, areaResponse(a))
	}

	sendJSON(ctx, w, http.StatusOK, resp)
}

// @Summary Get one plant area
// @Tags areas
// @Produce  json
// @Param   id path string true "Area id"
// @Success 200 {object} AreaResponse
// @Failure 404 {object} ResponseError "No such area"
// @Router  /api/areas/{id} [get]
func (h *Handler) GetArea(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	area, err := h.s.GetArea(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			sendErr(ctx, w, http.StatusNotFound, err, "Area not found")
			return
		}

		sendErr(ctx, w, http.StatusInternalServerError, err, "Could not read the area")

		return
	}

	sendJSON(ctx, w, http.StatusOK, areaResponse(area))
}

func employeeID(ctx context.Context, w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		sendErr(ctx, w, http.StatusBadRequest, err, "Malformed employee id")
		return 0, false
	}

	return id, true
}

func parseAccessQuery(r *http.Request) (entity.AccessFilter, entity.Page, error) {
	var filter entity.AccessFilter

	q := r.URL.Query()

	if v := q.Get("employee_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, entity.Page{}, err
		}

		filter.EmployeeID = &id
	}

	filter.AreaID = q.Get("area_id")

	if v := q.Get("type"); v != "" {
		accessType := entity.AccessType(v)
		if !accessType.Valid() {
			return filter, entity.Page{}, entity.ErrInvalidAccessType
		}

		filter.Type = accessType
	}

	if v := q.Get("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, entity.Page{}, err
		}

		filter.From = &from
	}

	if v := q.Get("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, entity.Page{}, err
		}

		filter.To = &to
	}

	var page entity.Page

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, entity.Page{}, err
		}

		page.Number = n
	}

	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, entity.Page{}, err
		}

		page.Size = n
	}

	return filter, page, nil
}
