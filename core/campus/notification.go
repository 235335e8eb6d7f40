package campus

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/academic"
)

// SystemSender signs notifications not posted by a user.
const SystemSender = "System"

type Notification struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Date      time.Time `json:"date"`
	SubjectID string    `json:"subject_id,omitempty"` // empty for general announcements
}

func (n Notification) IsGeneral() bool { return n.SubjectID == "" }

type NewNotification struct {
	Sender    string
	Message   string
	SubjectID string
}

// PostNotification appends an announcement. An empty message is rejected.
func (svc *Service) PostNotification(nn NewNotification) (Notification, error) {
	nn.Message = core.CleanString(nn.Message)
	nn.Sender = core.CleanString(nn.Sender)
	nn.SubjectID = core.CleanString(nn.SubjectID)

	if nn.Message == "" {
		return Notification{}, core.NewValidationError(ErrEmptyMessage, core.FieldError{Field: "message", Error: ErrEmptyMessage.Error()})
	}
	if nn.Sender == "" {
		nn.Sender = SystemSender
	}
	if nn.SubjectID != "" {
		if _, err := svc.subjects.GetSubjectByID(nn.SubjectID); err != nil {
			if errors.Cause(err) == academic.ErrSubjectNotFound {
				return Notification{}, core.NewValidationError(err, core.FieldError{Field: "subject", Error: err.Error()})
			}
			return Notification{}, err
		}
	}

	return svc.repo.CreateNotification(Notification{
		ID:        uuid.New().String(),
		Sender:    nn.Sender,
		Message:   nn.Message,
		Date:      nowFunc(),
		SubjectID: nn.SubjectID,
	})
}

// Notifications returns every notification, in store order.
func (svc *Service) Notifications() ([]Notification, error) {
	return svc.repo.QueryAllNotifications()
}

// Feed returns the general notifications plus those of the student's subjects, newest first.
func (svc *Service) Feed(studentID string) ([]Notification, error) {
	s, err := svc.getStudent(studentID)
	if err != nil {
		return nil, err
	}
	all, err := svc.repo.QueryAllNotifications()
	if err != nil {
		return nil, err
	}

	feed := make([]Notification, 0, len(all))
	for _, n := range all {
		if n.IsGeneral() || s.HasSubject(n.SubjectID) {
			feed = append(feed, n)
		}
	}
	NewestFirst(feed)
	return feed, nil
}

// NewestFirst sorts notifications by descending date; later posts win ties.
func NewestFirst(ns []Notification) {
	idx := make(map[string]int, len(ns))
	for i, n := range ns {
		idx[n.ID] = i
	}
	sort.SliceStable(ns, func(i, j int) bool {
		if ns[i].Date.Equal(ns[j].Date) {
			return idx[ns[i].ID] > idx[ns[j].ID]
		}
		return ns[i].Date.After(ns[j].Date)
	})
}
