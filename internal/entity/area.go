package entity

const (
	AreaMinAccessLevel = 1
	AreaMaxAccessLevel = 4
)

type Area struct {
	ID          string
	Name        string
	Description string
	AccessLevel int
	Active      bool
}
