package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/facegate/facegate/internal/entity"
	"github.com/facegate/facegate/pkg/config"
)

type TemplateRepository interface {
	StoreTemplate(ctx context.Context, tpl entity.BiometricTemplate) error
	FetchAllTemplates(ctx context.Context) ([]entity.BiometricTemplate, error)
	FetchTemplate(ctx context.Context, employeeID int64) (entity.BiometricTemplate, error)
	DeleteTemplate(ctx context.Context, employeeID int64) error
}

type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, e entity.Employee) (int64, error)
	GetEmployee(ctx context.Context, id int64) (entity.Employee, error)
	ListEmployees(ctx context.Context) ([]entity.Employee, error)
	ListEmployeesWithPIN(ctx context.Context) ([]entity.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

type AreaRepository interface {
	GetArea(ctx context.Context, id string) (entity.Area, error)
	ListAreas(ctx context.Context) ([]entity.Area, error)
}

type AccessRepository interface {
	SaveAccess(ctx context.Context, event entity.AccessEvent) error
	GetAccess(ctx context.Context, id uuid.UUID) (entity.AccessEvent, error)
	ListAccesses(ctx context.Context, filter entity.AccessFilter, page entity.Page) ([]entity.AccessEvent, int, error)
}

// VectorCipher seals and opens face vectors; see pkg/vectorcrypt.
type VectorCipher interface {
	Encrypt(vec entity.FaceVector) (cipherText, nonce []byte, err error)
	Decrypt(cipherText, nonce []byte) (entity.FaceVector, error)
}

// Extractor turns an image into a face embedding. Implemented by the
// dlib recognizer client; faked in tests.
type Extractor interface {
	Extract(ctx context.Context, image []byte) (entity.FaceVector, error)
}

type DoorController interface {
	Open(ctx context.Context, areaID string) error
}

// SecurityPublisher feeds the plant monitoring pipeline. Implementations
// must be non-blocking and must never fail the access decision.
type SecurityPublisher interface {
	PublishAccessDecision(ctx context.Context, d entity.AccessDecision)
	PublishTemplateAnomaly(ctx context.Context, employeeID int64, detail string)
}

type Service struct {
	cfg          config.Config
	templateRepo TemplateRepository
	employeeRepo EmployeeRepository
	areaRepo     AreaRepository
	accessRepo   AccessRepository
	cipher       VectorCipher
	extractor    Extractor
	door         DoorController
	security     SecurityPublisher
	authorize    AreaPolicy
}

func NewService(
	cfg config.Config,
	templateRepo TemplateRepository,
	employeeRepo EmployeeRepository,
	areaRepo AreaRepository,
	accessRepo AccessRepository,
	cipher VectorCipher,
	extractor Extractor,
	door DoorController,
	security SecurityPublisher,
) *Service {
	return &Service{
		cfg:          cfg,
		templateRepo: templateRepo,
		employeeRepo: employeeRepo,
		areaRepo:     areaRepo,
		accessRepo:   accessRepo,
		cipher:       cipher,
		extractor:    extractor,
		door:         door,
		security:     security,
		authorize:    PolicyFromName(cfg.AuthPolicy),
	}
}

func (s *Service) GetEmployee(ctx context.Context, id int64) (entity.Employee, error) {
	return s.employeeRepo.GetEmployee(ctx, id)
}

func (s *Service) ListEmployees(ctx context.Context) ([]entity.Employee, error) {
	return s.employeeRepo.ListEmployees(ctx)
}

func (s *Service) GetArea(ctx context.Context, id string) (entity.Area, error) {
	return s.areaRepo.GetArea(ctx, id)
}

func (s *Service) ListAreas(ctx context.Context) ([]entity.Area, error) {
	return s.areaRepo.ListAreas(ctx)
}

func (s *Service) GetAccess(ctx context.Context, id uuid.UUID) (entity.AccessEvent, error) {
	return s.accessRepo.GetAccess(ctx, id)
}

func (s *Service) ListAccesses(
	ctx context.Context,
	filter entity.AccessFilter,
	page entity.Page,
) ([]entity.AccessEvent, entity.PageInfo, error) {
	if page.Number < 1 {
		page.Number = 1
	}

	if page.Size < 1 || page.Size > 100 {
		page.Size = 10
	}

	events, total, err := s.accessRepo.ListAccesses(ctx, filter, page)
	if err != nil {
		return nil, entity.PageInfo{}, err
	}

	totalPages := (total + page.Size - 1) / page.Size
	if totalPages == 0 {
		totalPages = 1
	}

	info := entity.PageInfo{
		Total:       total,
		Page:        page.Number,
		PageSize:    page.Size,
		TotalPages:  totalPages,
		HasPrevious: page.Number > 1,
		HasNext:     page.Number < totalPages,
	}

	return events, info, nil
}
