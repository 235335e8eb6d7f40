package inmemdb

import (
	"github.com/vku/studentrecords/core/user"
)

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

func (repo *userRepository) get(id string) (user.User, bool) {
	if t, ok := repo.db.teachers[id]; ok {
		return t.Clone().User, true
	}
	if s, ok := repo.db.students[id]; ok {
		return s.Clone().User, true
	}
	return user.User{}, false
}

func (repo *userRepository) students() []user.Student {
	students := make([]user.Student, 0, len(repo.db.students))
	for _, id := range repo.db.order {
		if s, ok := repo.db.students[id]; ok {
			students = append(students, s.Clone())
		}
	}
	return students
}

func (repo *userRepository) CheckUniqueness(id, email string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, uid := range repo.db.order {
		usr, _ := repo.get(uid)
		if usr.ID == id {
			return user.ErrIDExists
		}
		if usr.Email == email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateTeacher(t user.Teacher) (user.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.get(t.ID); ok {
		return user.Teacher{}, user.ErrIDExists
	}
	t.Kind = user.KindTeacher
	t = t.Clone()
	repo.db.teachers[t.ID] = &t
	repo.db.order = append(repo.db.order, t.ID)
	return t.Clone(), nil
}

func (repo *userRepository) CreateStudent(s user.Student) (user.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.get(s.ID); ok {
		return user.Student{}, user.ErrIDExists
	}
	s.Kind = user.KindStudent
	s = s.Clone()
	repo.db.students[s.ID] = &s
	repo.db.order = append(repo.db.order, s.ID)
	return s.Clone(), nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	users := make([]user.User, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		if usr, ok := repo.get(id); ok {
			users = append(users, usr)
		}
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if usr, ok := repo.get(id); ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) QueryAllTeachers() ([]user.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	teachers := make([]user.Teacher, 0, len(repo.db.teachers))
	for _, id := range repo.db.order {
		if t, ok := repo.db.teachers[id]; ok {
			teachers = append(teachers, t.Clone())
		}
	}
	return teachers, nil
}

func (repo *userRepository) GetTeacherByID(id string) (user.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if t, ok := repo.db.teachers[id]; ok {
		return t.Clone(), nil
	}
	return user.Teacher{}, user.ErrNotFound
}

func (repo *userRepository) QueryAllStudents() ([]user.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.students(), nil
}

func (repo *userRepository) GetStudentByID(id string) (user.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.students[id]; ok {
		return s.Clone(), nil
	}
	return user.Student{}, user.ErrNotFound
}

func (repo *userRepository) FilterStudents(filter user.QueryFilter) ([]user.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	result := make([]user.Student, 0)
	for _, s := range repo.students() {
		if filter.Match(s) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (repo *userRepository) UpdateTeacher(t user.Teacher) (user.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.teachers[t.ID]
	if !ok {
		return user.Teacher{}, user.ErrNotFound
	}
	// identity & credentials are not updated here
	orig.Name = t.Name
	orig.Subjects = t.Clone().Subjects
	return orig.Clone(), nil
}

func (repo *userRepository) UpdateStudent(s user.Student) (user.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.students[s.ID]
	if !ok {
		return user.Student{}, user.ErrNotFound
	}
	// identity & credentials are not updated here
	hash := orig.PasswordHash
	email := orig.Email
	updated := s.Clone()
	updated.Kind = user.KindStudent
	updated.PasswordHash = hash
	updated.Email = email
	*orig = updated
	return orig.Clone(), nil
}

func (repo *userRepository) UpdatePassword(id string, hash []byte) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	hash = append([]byte(nil), hash...)
	if t, ok := repo.db.teachers[id]; ok {
		t.PasswordHash = hash
		return nil
	}
	if s, ok := repo.db.students[id]; ok {
		s.PasswordHash = hash
		return nil
	}
	return user.ErrNotFound
}
