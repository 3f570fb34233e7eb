package grade

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/lamms/lamms/core"
)

// OrderingFields are the fields grades can be ordered by.
var OrderingFields = map[string]bool{
	"id":            true,
	"name":          true,
	"code":          true,
	"is_active":     true,
	"display_order": true,
	"created_at":    true,
	"updated_at":    true,
}

// DefaultOrdering lists grades the way they are displayed.
var DefaultOrdering = []core.DBOrdering{
	{Field: "display_order", Ascending: true},
	{Field: "name", Ascending: true},
}

// Grade is a school grade level (e.g. "Grade 3"). Grades are soft-disabled through IsActive, never hard deleted by the UI.
type Grade struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	Code         null.String `json:"code"`
	IsActive     bool        `json:"is_active"`
	DisplayOrder int         `json:"display_order"`
	CreatedAt    time.Time   `json:"created_at"` // UTC
	UpdatedAt    time.Time   `json:"updated_at"` // UTC
}

// NewGrade contains information needed to create a new Grade.
type NewGrade struct {
	Name         string `json:"name" validate:"required,notblank,max=255"`
	Code         string `json:"code" validate:"omitempty,max=255"`
	IsActive     *bool  `json:"is_active"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

func (ng *NewGrade) Validate(validate *validator.Validate, svc *Service) error {
	ng.Name = core.CleanString(ng.Name)
	ng.Code = core.CleanString(ng.Code)

	if err := validate.Struct(ng); err != nil {
		return err
	}
	return svc.CheckUniqueness(ng.Name)
}

// UpdateGrade defines what information may be provided to modify an existing Grade.
// Omitted fields keep their current value.
type UpdateGrade struct {
	Name         string  `json:"name" validate:"max=255"`
	Code         *string `json:"code" validate:"omitempty,max=255"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int    `json:"display_order" validate:"omitempty,gte=0"`
}

func (ug *UpdateGrade) Validate(orig Grade, validate *validator.Validate, svc *Service) error {
	if name := core.CleanString(ug.Name); name != "" {
		ug.Name = name
	} else {
		ug.Name = orig.Name
	}
	if ug.Code != nil {
		code := core.CleanString(*ug.Code)
		ug.Code = &code
	}

	if err := validate.Struct(ug); err != nil {
		return err
	}
	return svc.CheckUniqueness(ug.Name, orig)
}

type QueryFilter struct {
	Search   string `query:"search"`
	IsActive *bool  `query:"is_active"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
