package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/facegate/facegate/internal/entity"
	"github.com/facegate/facegate/pkg/logger"
)

// AccessRequest is one attempt to pass through an area, independent of
// how the person identifies themselves.
type AccessRequest struct {
	AreaID string
	Type   entity.AccessType
	Device string
}

func (r AccessRequest) validate() error {
	if r.AreaID == "" {
		return errors.New("area id is required")
	}

	if !r.Type.Valid() {
		return entity.ErrInvalidAccessType
	}

	return nil
}

// FacialAccess runs the full pipeline for a face image: extract the
// embedding, identify against the vault, authorize, record, actuate.
// Every step is strictly ordered; no audit row exists until the verdict
// is final.
func (s *Service) FacialAccess(ctx context.Context, image []byte, req AccessRequest) (entity.AccessDecision, error) {
	if err := req.validate(); err != nil {
		return entity.AccessDecision{}, err
	}

	decision := entity.AccessDecision{
		AreaID: req.AreaID,
		Type:   req.Type,
		Method: entity.MethodFacial,
	}

	extractCtx, cancel := context.WithTimeout(ctx, s.cfg.Matcher.ExtractTimeout)
	defer cancel()

	query, err := s.extractor.Extract(extractCtx, image)
	if err != nil {
		reason, ok := extractionDenial(err)
		if !ok {
			return entity.AccessDecision{}, fmt.Errorf("extract embedding: %w", err)
		}

		decision.Reason = reason

		return s.finalize(ctx, req, decision)
	}

	result, err := s.Identify(ctx, query, s.cfg.Matcher.Threshold)
	if err != nil {
		return entity.AccessDecision{}, err
	}

	decision.Confidence = result.Confidence

	if !result.Matched {
		// No identity was resolved, so there is nothing to authorize.
		decision.Reason = entity.DenialNotRecognized

		return s.finalize(ctx, req, decision)
	}

	return s.authorizeAndFinalize(ctx, req, decision, result.EmployeeID)
}

// PINAccess runs the pipeline for a PIN entry. PIN verification compares
// the presented PIN against every stored bcrypt hash without early exit,
// so response timing does not reveal whether or where a PIN matched.
func (s *Service) PINAccess(ctx context.Context, pin string, req AccessRequest) (entity.AccessDecision, error) {
	if err := req.validate(); err != nil {
		return entity.AccessDecision{}, err
	}

	if err := ValidatePIN(pin); err != nil {
		return entity.AccessDecision{}, err
	}

	decision := entity.AccessDecision{
		AreaID:     req.AreaID,
		Type:       req.Type,
		Method:     entity.MethodPIN,
		Confidence: 1.0,
	}

	employeeID, found, err := s.resolveByPIN(ctx, pin)
	if err != nil {
		return entity.AccessDecision{}, err
	}

	if !found {
		decision.Reason = entity.DenialInvalidPin
		decision.Confidence = 0

		return s.finalize(ctx, req, decision)
	}

	return s.authorizeAndFinalize(ctx, req, decision, employeeID)
}

func (s *Service) authorizeAndFinalize(
	ctx context.Context,
	req AccessRequest,
	decision entity.AccessDecision,
	employeeID int64,
) (entity.AccessDecision, error) {
	ctx = logger.SetEmployeeID(ctx, fmt.Sprint(employeeID))

	verdict, err := s.Authorize(ctx, employeeID, req.AreaID, decision.Method)
	if err != nil {
		return entity.AccessDecision{}, err
	}

	if !verdict.Permitted {
		decision.Reason = verdict.Reason

		return s.finalize(ctx, req, decision)
	}

	employee, err := s.employeeRepo.GetEmployee(ctx, employeeID)
	if err != nil {
		return entity.AccessDecision{}, fmt.Errorf("get employee: %w", err)
	}

	decision.Permitted = true
	decision.Employee = &employee

	return s.finalize(ctx, req, decision)
}

// finalize closes out an attempt. Reference recording policy: only
// permits produce an audit row; denials are returned to the caller and
// published to the security topic but never persisted. The row is
// written before the door is signaled, so a recorded permit can never
// trail the physical actuation.
func (s *Service) finalize(ctx context.Context, req AccessRequest, decision entity.AccessDecision) (entity.AccessDecision, error) {
	if !decision.Permitted {
		ctx = logger.SetLogType(ctx, "security")
		slog.InfoContext(ctx, "access denied",
			"reason", string(decision.Reason),
			"area_id", req.AreaID,
			"access_method", string(decision.Method),
		)

		s.security.PublishAccessDecision(ctx, decision)

		return decision, nil
	}

	confidence := decision.Confidence
	event := entity.AccessEvent{
		ID:         uuid.Must(uuid.NewV4()),
		EmployeeID: &decision.Employee.ID,
		AreaID:     req.AreaID,
		Timestamp:  time.Now().UTC(),
		Type:       req.Type,
		Method:     decision.Method,
		Device:     deviceOrDefault(ctx, req.Device),
		Confidence: &confidence,
		Permitted:  true,
	}

	if err := s.accessRepo.SaveAccess(ctx, event); err != nil {
		return entity.AccessDecision{}, fmt.Errorf("record access: %w", err)
	}

	decision.EventID = event.ID

	if err := s.door.Open(ctx, req.AreaID); err != nil {
		// The permit stands and is recorded; a stuck actuator is an
		// operations problem, not an authorization one.
		slog.ErrorContext(ctx, "door open command failed", "area_id", req.AreaID, "error", err)
	}

	slog.InfoContext(ctx, "access permitted",
		"area_id", req.AreaID,
		"access_method", string(decision.Method),
		"confidence", decision.Confidence,
	)

	s.security.PublishAccessDecision(ctx, decision)

	return decision, nil
}

// resolveByPIN scans every candidate even after a hit so that the work
// done is independent of which, if any, employee matched.
func (s *Service) resolveByPIN(ctx context.Context, pin string) (int64, bool, error) {
	candidates, err := s.employeeRepo.ListEmployeesWithPIN(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("list pin candidates: %w", err)
	}

	matchedID, found := matchPIN(candidates, pin, bcryptCompare)

	return matchedID, found, nil
}

type pinCompareFunc func(hash []byte, pin string) bool

func bcryptCompare(hash []byte, pin string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(pin)) == nil
}

// matchPIN compares the PIN against every candidate hash. The loop
// never exits early and compares after a hit too: the invariant is one
// comparison per candidate no matter where, or whether, a match sits.
// The first match wins.
func matchPIN(candidates []entity.Employee, pin string, compare pinCompareFunc) (int64, bool) {
	var (
		matchedID int64
		found     bool
	)

	for _, c := range candidates {
		if compare(c.PINHash, pin) && !found {
			matchedID = c.ID
			found = true
		}
	}

	return matchedID, found
}

func extractionDenial(err error) (entity.DenialReason, bool) {
	switch {
	case errors.Is(err, entity.ErrNoFace):
		return entity.DenialNoFaceDetected, true
	case errors.Is(err, entity.ErrMultipleFaces):
		return entity.DenialMultipleFaces, true
	case errors.Is(err, context.DeadlineExceeded):
		return entity.DenialExtractionTimeout, true
	default:
		return entity.DenialNone, false
	}
}

// deviceOrDefault picks the recorded device: the request body first,
// then the terminal attribution the middleware put on the context, then
// "unknown". The audit row and the published events agree this way.
func deviceOrDefault(ctx context.Context, device string) string {
	if device != "" {
		return device
	}

	if fromCtx := entity.DeviceIDFromCtx(ctx); fromCtx != "" {
		return fromCtx
	}

	return "unknown"
}
