package section

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

type (
	Repository interface {
		CreateSection(ctx context.Context, sec Section) (Section, error)
		QueryAllSections(ctx context.Context) ([]Section, error)
		GetSectionByID(ctx context.Context, id int) (Section, error)
		UpdateSection(ctx context.Context, sec Section) (Section, error)
		DeleteSectionByID(ctx context.Context, id int) error
	}

	Service struct {
		repo    Repository
		nowFunc func() time.Time
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo, nowFunc: time.Now}
}

func (svc *Service) List(ctx context.Context) ([]Section, error) {
	return svc.repo.QueryAllSections(ctx)
}

func (svc *Service) Create(ctx context.Context, payload Payload) (Section, error) {
	now := svc.nowFunc().UTC()
	return svc.repo.CreateSection(ctx, Section{
		Data:      payload.Clean(),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) GetByID(ctx context.Context, id int) (Section, error) {
	return svc.repo.GetSectionByID(ctx, id)
}

// Update replaces the payload of the section identified by `id`.
func (svc *Service) Update(ctx context.Context, id int, payload Payload) (Section, error) {
	sec, err := svc.repo.GetSectionByID(ctx, id)
	if err != nil {
		return Section{}, err
	}
	sec.Data = payload.Clean()
	sec.UpdatedAt = svc.nowFunc().UTC()
	return svc.repo.UpdateSection(ctx, sec)
}

// Delete removes the section identified by `id` and returns it as it was.
func (svc *Service) Delete(ctx context.Context, id int) (Section, error) {
	sec, err := svc.repo.GetSectionByID(ctx, id)
	if err != nil {
		return Section{}, err
	}
	if err := svc.repo.DeleteSectionByID(ctx, id); err != nil {
		return Section{}, errors.Wrap(err, "deleting section")
	}
	return sec, nil
}
