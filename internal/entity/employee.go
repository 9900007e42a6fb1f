package entity

import "time"

type EmployeeStatus string

const (
	EmployeeActive    EmployeeStatus = "Active"
	EmployeeInactive  EmployeeStatus = "Inactive"
	EmployeeSuspended EmployeeStatus = "Suspended"
)

type EmployeeRole string

const (
	RoleSupervisor     EmployeeRole = "Supervisor"
	RoleOperator       EmployeeRole = "Operator"
	RoleShiftLead      EmployeeRole = "ShiftLead"
	RoleQualityControl EmployeeRole = "QualityControl"
	RoleMaintenance    EmployeeRole = "Maintenance"
	RoleAdministration EmployeeRole = "Administration"
)

func (r EmployeeRole) Valid() bool {
	switch r {
	case RoleSupervisor, RoleOperator, RoleShiftLead, RoleQualityControl, RoleMaintenance, RoleAdministration:
		return true
	}

	return false
}

func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeActive, EmployeeInactive, EmployeeSuspended:
		return true
	}

	return false
}

type Employee struct {
	ID          int64
	FirstName   string
	LastName    string
	NationalID  string
	BirthDate   string
	Email       string
	Role        EmployeeRole
	Status      EmployeeStatus
	AreaID      string
	AccessLevel int
	// PINHash is the bcrypt hash of the employee's access PIN, nil when
	// no PIN is assigned. The raw PIN is never stored.
	PINHash   []byte
	CreatedAt time.Time
}
