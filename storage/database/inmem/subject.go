package inmemdb

import (
	"github.com/vku/studentrecords/core/academic"
)

type subjectRepository struct {
	db *subjectTable
}

var _ academic.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(db *DB) academic.Repository {
	return &subjectRepository{db: db.subject}
}

func (repo *subjectRepository) CreateSubject(sub academic.Subject) (academic.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[sub.ID]; ok {
		return academic.Subject{}, academic.ErrSubjectExists
	}
	repo.db.table[sub.ID] = &sub
	repo.db.order = append(repo.db.order, sub.ID)
	return sub, nil
}

func (repo *subjectRepository) QueryAllSubjects() ([]academic.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	subjects := make([]academic.Subject, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		subjects = append(subjects, *repo.db.table[id])
	}
	return subjects, nil
}

func (repo *subjectRepository) GetSubjectByID(id string) (academic.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sub, ok := repo.db.table[id]; ok {
		return *sub, nil
	}
	return academic.Subject{}, academic.ErrSubjectNotFound
}

func (repo *subjectRepository) GetSubjectByName(name string) (academic.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, id := range repo.db.order {
		if sub := repo.db.table[id]; sub.Name == name {
			return *sub, nil
		}
	}
	return academic.Subject{}, academic.ErrSubjectNotFound
}
