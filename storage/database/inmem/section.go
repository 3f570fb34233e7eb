package inmemdb

import (
	"context"
	"sort"

	"github.com/lamms/lamms/core"
	"github.com/lamms/lamms/core/section"
)

type sectionRepository struct {
	db *sectionTable
}

var _ section.Repository = (*sectionRepository)(nil) // interface compliance check

func NewSectionRepository(db *DB) section.Repository {
	return &sectionRepository{db: db.section}
}

// copyPayload keeps stored payloads from being mutated through returned sections.
func copyPayload(p section.Payload) section.Payload {
	return p.Clean()
}

func (repo *sectionRepository) CreateSection(_ context.Context, sec section.Section) (section.Section, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pkCount++
	sec.ID = repo.db.pkCount
	sec.Data = copyPayload(sec.Data)
	stored := sec
	repo.db.table[sec.ID] = &stored
	return sec, nil
}

func (repo *sectionRepository) QueryAllSections(context.Context) ([]section.Section, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	sections := make([]section.Section, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		sec := *s
		sec.Data = copyPayload(s.Data)
		sections = append(sections, sec)
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].ID < sections[j].ID })
	return sections, nil
}

func (repo *sectionRepository) GetSectionByID(_ context.Context, id int) (section.Section, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.table[id]; ok {
		sec := *s
		sec.Data = copyPayload(s.Data)
		return sec, nil
	}
	return section.Section{}, core.ErrNotFound
}

func (repo *sectionRepository) UpdateSection(_ context.Context, sec section.Section) (section.Section, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[sec.ID]
	if !ok {
		return section.Section{}, core.ErrNotFound
	}
	sec.CreatedAt = orig.CreatedAt
	sec.Data = copyPayload(sec.Data)
	stored := sec
	repo.db.table[sec.ID] = &stored
	return sec, nil
}

func (repo *sectionRepository) DeleteSectionByID(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return core.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
