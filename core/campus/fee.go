package campus

import (
	"github.com/pkg/errors"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/academic"
	"github.com/vku/studentrecords/core/user"
)

type Fee struct {
	StudentID string  `json:"student_id"`
	Amount    float64 `json:"amount"`
	Paid      bool    `json:"paid"`
}

type FeeLine struct {
	Subject academic.Subject `json:"subject"`
	Amount  float64          `json:"amount"`
}

// FeeStatement details the fee of a student per enrolled subject.
type FeeStatement struct {
	Student  user.Student `json:"student"`
	Lines    []FeeLine    `json:"lines"`
	Total    float64      `json:"total"`
	Paid     bool         `json:"paid"`
	Currency string       `json:"currency"`
}

// FeeAmount is the fee of the given credits.
func (svc *Service) FeeAmount(credits int) float64 {
	return float64(credits) * svc.conf.FeePerCredit
}

// AssessFee computes the fee of a student from their enrolled credits and saves it.
// A previously recorded payment status is kept.
func (svc *Service) AssessFee(studentID string, paid ...bool) (Fee, error) {
	s, err := svc.getStudent(studentID)
	if err != nil {
		return Fee{}, err
	}

	fee := Fee{StudentID: s.ID}
	if prev, err := svc.repo.GetFeeByStudentID(s.ID); err == nil {
		fee.Paid = prev.Paid
	} else if errors.Cause(err) != ErrFeeNotFound {
		return Fee{}, err
	}
	if len(paid) > 0 {
		fee.Paid = paid[0]
	}
	fee.Amount = svc.FeeAmount(s.TotalCredits())
	return svc.repo.SaveFee(fee)
}

func (svc *Service) Fees() ([]Fee, error) {
	return svc.repo.QueryAllFees()
}

func (svc *Service) FeeOf(studentID string) (Fee, error) {
	return svc.repo.GetFeeByStudentID(core.CleanString(studentID))
}

func (svc *Service) SetFeePaid(studentID string, paid bool) (Fee, error) {
	fee, err := svc.FeeOf(studentID)
	if err != nil {
		return Fee{}, err
	}
	fee.Paid = paid
	return svc.repo.SaveFee(fee)
}

// UnpaidTotal sums the amounts of all unpaid fees.
func (svc *Service) UnpaidTotal() (float64, error) {
	fees, err := svc.repo.QueryAllFees()
	if err != nil {
		return 0, err
	}
	var total float64
	for _, f := range fees {
		if !f.Paid {
			total += f.Amount
		}
	}
	return total, nil
}

// FeeStatement lists what a student owes per enrolled subject.
// Total is the recorded fee amount, 0 when none was assessed.
func (svc *Service) FeeStatement(studentID string) (FeeStatement, error) {
	s, err := svc.getStudent(studentID)
	if err != nil {
		return FeeStatement{}, err
	}

	st := FeeStatement{
		Student:  s,
		Lines:    make([]FeeLine, 0, len(s.Subjects)),
		Currency: svc.conf.Currency,
	}
	for _, sub := range s.Subjects {
		st.Lines = append(st.Lines, FeeLine{Subject: sub, Amount: svc.FeeAmount(sub.Credits)})
	}

	fee, err := svc.repo.GetFeeByStudentID(s.ID)
	switch errors.Cause(err) {
	case nil:
		st.Total = fee.Amount
		st.Paid = fee.Paid
	case ErrFeeNotFound:
	default:
		return FeeStatement{}, err
	}
	return st, nil
}
