package user

import (
	"strings"

	"github.com/pkg/errors"
)

// Session holds the single authenticated User of the application.
// It is either anonymous or authenticated; it is not safe for concurrent use.
type Session struct {
	repo    Repository
	current *User
}

func NewSession(repo Repository) *Session {
	return &Session{repo: repo}
}

// Login authenticates the first user, in store order, whose kind matches role (case-insensitive)
// and whose email and password match exactly. On failure the session is left unchanged.
func (s *Session) Login(role, email, password string) (User, error) {
	users, err := s.repo.QueryAllUsers()
	if err != nil {
		return User{}, errors.Wrap(err, "querying users")
	}
	for _, usr := range users {
		if !strings.EqualFold(string(usr.Kind), role) || usr.Email != email {
			continue
		}
		if usr.CheckPassword(password) != nil {
			continue
		}
		u := usr
		s.current = &u
		return u, nil
	}
	return User{}, ErrInvalidCredentials
}

func (s *Session) Logout() {
	s.current = nil
}

// Current returns the authenticated User, if any.
func (s *Session) Current() (User, bool) {
	if s.current == nil {
		return User{}, false
	}
	return *s.current, true
}

func (s *Session) IsAuthenticated() bool { return s.current != nil }
func (s *Session) IsTeacher() bool       { return s.current != nil && s.current.IsTeacher() }
func (s *Session) IsStudent() bool       { return s.current != nil && s.current.IsStudent() }
