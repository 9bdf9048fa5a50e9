package employee

import "context"

// Filter narrows the directory by organizational placement. Empty fields
// are ignored; set fields are exact matches on stored values, ANDed.
type Filter struct {
	Section    string `json:"section"`
	SubSection string `json:"sub_section"`
	Category   string `json:"category"`
}

// EmployeeRepository defines read access to the employee directory.
type EmployeeRepository interface {
	// List returns employees matching filter ordered by employee id, with
	// designation attributes resolved
	List(ctx context.Context, filter Filter) ([]Employee, error)

	GetByID(ctx context.Context, id string) (Employee, error)

	DistinctSections(ctx context.Context) ([]string, error)
	DistinctSubSections(ctx context.Context, section string) ([]string, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}
