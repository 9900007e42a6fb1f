package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/facegate/facegate/internal/entity"
	"github.com/facegate/facegate/pkg/logger"
)

// ambiguityEpsilon is the distance window within which two enrolled
// templates are considered indistinguishable. A best match shadowed by a
// runner-up inside this window is rejected outright: handing out access
// on a coin flip between two identities is a security failure.
const ambiguityEpsilon = 1e-6

// Identify runs 1:N identification of query against the whole vault.
//
// The metric is Euclidean distance over the 128-dimension embedding
// space, the same space templates were enrolled in. Distance maps to
// confidence as max(0, 1-distance): identical vectors score 1.0 and the
// score decays linearly, hitting zero at distance 1. dlib embeddings of
// the same person typically sit below distance 0.6, so the default 0.6
// confidence threshold accepts pairs closer than 0.4.
//
// Templates that fail decryption are reported as anomalies and excluded
// from the candidate set; they never count as near or far matches.
func (s *Service) Identify(ctx context.Context, query entity.FaceVector, threshold float64) (entity.IdentificationResult, error) {
	if !query.ValidDim() {
		return entity.IdentificationResult{}, fmt.Errorf("%w: got %d, want %d", entity.ErrBadVectorDim, len(query), entity.FaceVectorDim)
	}

	templates, err := s.templateRepo.FetchAllTemplates(ctx)
	if err != nil {
		return entity.IdentificationResult{}, fmt.Errorf("fetch templates: %w", err)
	}

	var (
		bestID       int64
		bestDist     = math.Inf(1)
		runnerUpDist = math.Inf(1)
		candidates   int
	)

	for _, tpl := range templates {
		candidate, err := s.cipher.Decrypt(tpl.CipherText, tpl.Nonce)
		if err != nil {
			s.reportTemplateAnomaly(ctx, tpl.EmployeeID, err)
			continue
		}

		if !candidate.ValidDim() {
			s.reportTemplateAnomaly(ctx, tpl.EmployeeID, fmt.Errorf("decrypted vector has %d dimensions", len(candidate)))
			continue
		}

		candidates++

		dist := euclideanDistance(query, candidate)

		switch {
		case dist < bestDist:
			runnerUpDist = bestDist
			bestDist = dist
			bestID = tpl.EmployeeID
		case dist < runnerUpDist:
			runnerUpDist = dist
		}
	}

	if candidates == 0 {
		return entity.IdentificationResult{}, nil
	}

	confidence := distanceToConfidence(bestDist)
	ambiguous := runnerUpDist-bestDist <= ambiguityEpsilon

	if ambiguous {
		ctx = logger.SetLogType(ctx, "security")
		slog.WarnContext(ctx, "ambiguous biometric match rejected",
			"best_distance", bestDist,
			"runner_up_distance", runnerUpDist,
		)
	}

	if confidence < threshold || ambiguous {
		return entity.IdentificationResult{Confidence: confidence}, nil
	}

	return entity.IdentificationResult{
		EmployeeID: bestID,
		Confidence: confidence,
		Matched:    true,
	}, nil
}

// AuditTemplates opens every stored template once and reports the ones
// that fail, so corruption surfaces from the background sweep instead of
// from a failed identification at the gate.
func (s *Service) AuditTemplates(ctx context.Context) (int, error) {
	templates, err := s.templateRepo.FetchAllTemplates(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch templates: %w", err)
	}

	var anomalies int

	for _, tpl := range templates {
		candidate, err := s.cipher.Decrypt(tpl.CipherText, tpl.Nonce)
		if err != nil {
			s.reportTemplateAnomaly(ctx, tpl.EmployeeID, err)

			anomalies++

			continue
		}

		if !candidate.ValidDim() {
			s.reportTemplateAnomaly(ctx, tpl.EmployeeID, fmt.Errorf("decrypted vector has %d dimensions", len(candidate)))

			anomalies++
		}
	}

	return anomalies, nil
}

func (s *Service) reportTemplateAnomaly(ctx context.Context, employeeID int64, err error) {
	ctx = logger.SetLogType(ctx, "security")
	slog.ErrorContext(ctx, "biometric template excluded from matching",
		"template_employee_id", employeeID,
		"error", err,
	)

	s.security.PublishTemplateAnomaly(ctx, employeeID, err.Error())
}

func euclideanDistance(a, b entity.FaceVector) float64 {
	var sum float64

	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return math.Sqrt(sum)
}

func distanceToConfidence(dist float64) float64 {
	return math.Max(0, 1-dist)
}
