package campus

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/pkg/errors"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/user"
)

var ErrTeacherNotFound = errors.New("teacher not found")

// Messenger delivers messages from users to teachers by email.
type Messenger struct {
	users  *user.Service
	emails core.EmailService
}

func NewMessenger(users *user.Service, emails core.EmailService) *Messenger {
	return &Messenger{users: users, emails: emails}
}

// NewMessage contains information needed to message a teacher.
type NewMessage struct {
	TeacherID string `json:"teacher"`
	Message   string `json:"message"`
}

func (nm *NewMessage) Validate() error {
	nm.TeacherID = core.CleanString(nm.TeacherID)
	nm.Message = strings.TrimSpace(nm.Message)

	var flds []core.FieldError
	if nm.TeacherID == "" {
		flds = append(flds, core.FieldError{Field: "teacher", Error: "please choose a teacher"})
	}
	if nm.Message == "" {
		flds = append(flds, core.FieldError{Field: "message", Error: ErrEmptyMessage.Error()})
	}
	if len(flds) > 0 {
		return core.NewValidationError(errors.New("invalid message"), flds...)
	}
	return nil
}

// MessageTeacher emails nm.Message to the teacher, with replies going to the sender.
func (m *Messenger) MessageTeacher(from user.User, nm NewMessage) (core.EmailMessage, error) {
	if err := nm.Validate(); err != nil {
		return core.EmailMessage{}, err
	}
	tchr, err := m.users.GetTeacher(nm.TeacherID)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return core.EmailMessage{}, core.NewValidationError(ErrTeacherNotFound, core.FieldError{Field: "teacher", Error: ErrTeacherNotFound.Error()})
		}
		return core.EmailMessage{}, errors.Wrap(err, "getting teacher")
	}

	msg := core.EmailMessage{
		To:      []mail.Address{{Name: tchr.Name, Address: tchr.Email}},
		ReplyTo: &mail.Address{Name: from.Name, Address: from.Email},
		Subject: fmt.Sprintf("Message from %s (%s)", from.Name, from.ID),
		Body:    nm.Message,
	}
	m.emails.SendMessages(&msg)
	return msg, nil
}
