package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/facegate/facegate/internal/entity"
	"github.com/facegate/facegate/internal/repository"
)

type AccessRepositoryTestSuite struct {
	suite.Suite
	db   *pgxpool.Pool
	repo *repository.AccessRepository
	emp  *repository.EmployeeRepository
}

func (ts *AccessRepositoryTestSuite) SetupTest() {
	ts.db = repository.SetupTestDatabase(ts.T())
	ts.repo = repository.NewAccessRepository(ts.db)
	ts.emp = repository.NewEmployeeRepository(ts.db)
}

func TestAccessRepositoryTestSuite(t *testing.T) { //nolint:paralleltest
	suite.Run(t, new(AccessRepositoryTestSuite))
}

func (ts *AccessRepositoryTestSuite) saveEvent(employeeID int64, areaID string, accessType entity.AccessType, at time.Time) entity.AccessEvent {
	ts.T().Helper()

	confidence := 0.93
	event := entity.AccessEvent{
		ID:         uuid.Must(uuid.NewV4()),
		EmployeeID: &employeeID,
		AreaID:     areaID,
		Timestamp:  at,
		Type:       accessType,
		Method:     entity.MethodFacial,
		Device:     "gate-1",
		Confidence: &confidence,
		Permitted:  true,
	}

	ts.Require().NoError(ts.repo.SaveAccess(context.Background(), event))

	return event
}

func (ts *AccessRepositoryTestSuite) TestSaveAndGet() {
	ctx := context.Background()

	seedArea(ts.T(), ts.db, "AREA001", 2, true)
	empID := seedEmployee(ts.T(), ts.emp, "AREA001", entity.EmployeeActive, nil)

	event := ts.saveEvent(empID, "AREA001", entity.AccessEntry, time.Now().UTC().Truncate(time.Millisecond))

	got, err := ts.repo.GetAccess(ctx, event.ID)
	ts.Require().NoError(err)
	ts.Require().Equal(event.ID, got.ID)
	ts.Require().Equal(empID, *got.EmployeeID)
	ts.Require().Equal(entity.MethodFacial, got.Method)
	ts.Require().True(got.Permitted)
	ts.Require().InDelta(0.93, *got.Confidence, 1e-9)

	_, err = ts.repo.GetAccess(ctx, uuid.Must(uuid.NewV4()))
	ts.Require().ErrorIs(err, entity.ErrNotFound)
}

func (ts *AccessRepositoryTestSuite) TestListFilters() {
	ctx := context.Background()

	seedArea(ts.T(), ts.db, "AREA001", 2, true)
	seedArea(ts.T(), ts.db, "AREA002", 3, true)

	e1 := seedEmployee(ts.T(), ts.emp, "AREA001", entity.EmployeeActive, nil)
	e2 := seedEmployee(ts.T(), ts.emp, "AREA002", entity.EmployeeActive, nil)

	now := time.Now().UTC().Truncate(time.Millisecond)

	ts.saveEvent(e1, "AREA001", entity.AccessEntry, now.Add(-2*time.Hour))
	ts.saveEvent(e1, "AREA001", entity.AccessExit, now.Add(-1*time.Hour))
	ts.saveEvent(e2, "AREA002", entity.AccessEntry, now)

	events, total, err := ts.repo.ListAccesses(ctx, entity.AccessFilter{EmployeeID: &e1}, entity.Page{Number: 1, Size: 10})
	ts.Require().NoError(err)
	ts.Require().Equal(2, total)
	ts.Require().Len(events, 2)
	ts.Require().True(events[0].Timestamp.After(events[1].Timestamp), "newest first")

	events, total, err = ts.repo.ListAccesses(ctx, entity.AccessFilter{AreaID: "AREA002"}, entity.Page{Number: 1, Size: 10})
	ts.Require().NoError(err)
	ts.Require().Equal(1, total)
	ts.Require().Equal(e2, *events[0].EmployeeID)

	events, total, err = ts.repo.ListAccesses(ctx, entity.AccessFilter{Type: entity.AccessExit}, entity.Page{Number: 1, Size: 10})
	ts.Require().NoError(err)
	ts.Require().Equal(1, total)
	ts.Require().Equal(entity.AccessExit, events[0].Type)

	from := now.Add(-30 * time.Minute)
	events, total, err = ts.repo.ListAccesses(ctx, entity.AccessFilter{From: &from}, entity.Page{Number: 1, Size: 10})
	ts.Require().NoError(err)
	ts.Require().Equal(1, total)
	ts.Require().Len(events, 1)
}

func (ts *AccessRepositoryTestSuite) TestListPagination() {
	ctx := context.Background()

	seedArea(ts.T(), ts.db, "AREA001", 2, true)
	empID := seedEmployee(ts.T(), ts.emp, "AREA001", entity.EmployeeActive, nil)

	now := time.Now().UTC()
	for i := range 5 {
		ts.saveEvent(empID, "AREA001", entity.AccessEntry, now.Add(time.Duration(i)*time.Minute))
	}

	page1, total, err := ts.repo.ListAccesses(ctx, entity.AccessFilter{}, entity.Page{Number: 1, Size: 2})
	ts.Require().NoError(err)
	ts.Require().Equal(5, total)
	ts.Require().Len(page1, 2)

	page3, total, err := ts.repo.ListAccesses(ctx, entity.AccessFilter{}, entity.Page{Number: 3, Size: 2})
	ts.Require().NoError(err)
	ts.Require().Equal(5, total)
	ts.Require().Len(page3, 1)
}
