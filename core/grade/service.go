package grade

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/lamms/lamms/core"
)

var ErrNameExists = errors.New("a grade with this name already exists")

type (
	Repository interface {
		// CheckNameUniqueness returns ErrNameExists if a grade other than excludedGrades is named `name`.
		CheckNameUniqueness(ctx context.Context, name string, excludedGrades ...Grade) error
		CreateGrade(ctx context.Context, grd Grade) (Grade, error)
		// FilterGrades applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of Grade.Name or Grade.Code.
		FilterGrades(ctx context.Context, filter QueryFilter, orderings ...core.DBOrdering) ([]Grade, error)
		GetGradeByID(ctx context.Context, id int) (Grade, error)
		UpdateGrade(ctx context.Context, grd Grade) (Grade, error)
		DeleteGradesByID(ctx context.Context, ids ...int) error
	}

	Service struct {
		repo    Repository
		nowFunc func() time.Time
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo, nowFunc: time.Now}
}

func (svc *Service) now() time.Time {
	return svc.nowFunc().UTC()
}

// CheckUniqueness maps a name clash to a field validation error.
func (svc *Service) CheckUniqueness(name string, exclGrades ...Grade) error {
	if err := svc.repo.CheckNameUniqueness(context.Background(), name, exclGrades...); err != nil {
		if errors.Cause(err) == ErrNameExists {
			return core.NewValidationError(ErrNameExists, core.FieldError{Field: "name", Error: ErrNameExists.Error()})
		}
		return errors.Wrap(err, "checking grade name uniqueness")
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, ng NewGrade) (Grade, error) {
	now := svc.now()
	grd := Grade{
		Name:         ng.Name,
		Code:         null.NewString(ng.Code, ng.Code != ""),
		IsActive:     true,
		DisplayOrder: ng.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if ng.IsActive != nil {
		grd.IsActive = *ng.IsActive
	}
	grd, err := svc.repo.CreateGrade(ctx, grd)
	if err != nil {
		return Grade{}, svc.trapNameExists(err, "creating grade")
	}
	return grd, nil
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter, orderings ...core.DBOrdering) ([]Grade, error) {
	if err := core.CheckOrderings(orderings, OrderingFields); err != nil {
		return nil, err
	}
	if len(orderings) == 0 {
		orderings = DefaultOrdering
	}
	return svc.repo.FilterGrades(ctx, filter, orderings...)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Grade, error) {
	return svc.repo.GetGradeByID(ctx, id)
}

// Update applies a validated UpdateGrade to the grade identified by `id`.
func (svc *Service) Update(ctx context.Context, id int, ug UpdateGrade) (Grade, error) {
	grd, err := svc.repo.GetGradeByID(ctx, id)
	if err != nil {
		return Grade{}, err
	}
	grd.Name = ug.Name
	if ug.Code != nil {
		grd.Code = null.NewString(*ug.Code, *ug.Code != "")
	}
	if ug.IsActive != nil {
		grd.IsActive = *ug.IsActive
	}
	if ug.DisplayOrder != nil {
		grd.DisplayOrder = *ug.DisplayOrder
	}
	grd.UpdatedAt = svc.now()

	grd, err = svc.repo.UpdateGrade(ctx, grd)
	if err != nil {
		return Grade{}, svc.trapNameExists(err, "updating grade")
	}
	return grd, nil
}

// Deactivate soft-disables a grade.
func (svc *Service) Deactivate(ctx context.Context, id int) (Grade, error) {
	grd, err := svc.repo.GetGradeByID(ctx, id)
	if err != nil {
		return Grade{}, err
	}
	grd.IsActive = false
	grd.UpdatedAt = svc.now()
	return svc.repo.UpdateGrade(ctx, grd)
}

func (svc *Service) Delete(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteGradesByID(ctx, ids...)
}

// trapNameExists turns a unique violation that slipped past CheckUniqueness into a validation error.
func (svc *Service) trapNameExists(err error, msg string) error {
	if errors.Cause(err) == ErrNameExists {
		return core.NewValidationError(ErrNameExists, core.FieldError{Field: "name", Error: ErrNameExists.Error()})
	}
	return errors.Wrap(err, msg)
}
