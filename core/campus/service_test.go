package campus_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/campus"
	"github.com/vku/studentrecords/core/user"
	"github.com/vku/studentrecords/storage/database/inmem"
	"github.com/vku/studentrecords/tests"
)

type fixture struct {
	svc    *campus.Service
	usrSvc *user.Service
}

func setup(t *testing.T) fixture {
	conf := testutil.NewConfig()
	db := testutil.PrepareSeededDB(t, conf)
	usrRepo := inmemdb.NewUserRepository(db)
	subRepo := inmemdb.NewSubjectRepository(db)
	return fixture{
		svc:    campus.NewService(inmemdb.NewCampusRepository(db), usrRepo, subRepo, conf),
		usrSvc: user.NewService(usrRepo, subRepo),
	}
}

func TestService_Fees(t *testing.T) {
	f := setup(t)

	tests := []struct {
		studentID  string
		wantAmount float64
		wantPaid   bool
	}{
		{studentID: "S001", wantAmount: 6000000, wantPaid: true},
		{studentID: "S002", wantAmount: 6000000},
		{studentID: "S003", wantAmount: 2000000, wantPaid: true},
		{studentID: "S004", wantAmount: 2000000},
		{studentID: "S005", wantAmount: 2000000},
	}
	for _, tt := range tests {
		t.Run(tt.studentID, func(t *testing.T) {
			fee, err := f.svc.FeeOf(tt.studentID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, fee.Amount)
			assert.Equal(t, tt.wantPaid, fee.Paid)
		})
	}

	total, err := f.svc.UnpaidTotal()
	require.NoError(t, err)
	assert.Equal(t, float64(10000000), total)

	_, err = f.svc.FeeOf("S999")
	assert.Equal(t, campus.ErrFeeNotFound, err)
}

func TestService_AssessFee(t *testing.T) {
	f := setup(t)

	_, err := f.usrSvc.Enroll("S003", "SUB002")
	require.NoError(t, err)

	// keeps the payment status
	fee, err := f.svc.AssessFee("S003")
	require.NoError(t, err)
	assert.Equal(t, float64(5000000), fee.Amount)
	assert.True(t, fee.Paid)

	fee, err = f.svc.SetFeePaid("S003", false)
	require.NoError(t, err)
	assert.False(t, fee.Paid)

	fees, err := f.svc.Fees()
	require.NoError(t, err)
	assert.Len(t, fees, 5)

	_, err = f.svc.AssessFee("S999")
	assert.Error(t, err)
}

func TestService_FeeStatement(t *testing.T) {
	f := setup(t)

	st, err := f.svc.FeeStatement("S001")
	require.NoError(t, err)
	assert.Equal(t, "VND", st.Currency)
	assert.Equal(t, float64(6000000), st.Total)
	assert.True(t, st.Paid)
	require.Len(t, st.Lines, 2)
	assert.Equal(t, "SUB001", st.Lines[0].Subject.ID)
	assert.Equal(t, float64(3000000), st.Lines[0].Amount)
}

func TestService_Attendance(t *testing.T) {
	f := setup(t)
	today := time.Now()
	tomorrow := today.AddDate(0, 0, 1)

	t.Run("present unless recorded otherwise", func(t *testing.T) {
		present, recorded, err := f.svc.Presence("S002", "SUB001", tomorrow)
		require.NoError(t, err)
		assert.True(t, present)
		assert.False(t, recorded)

		present, recorded, err = f.svc.Presence("S002", "SUB001", today)
		require.NoError(t, err)
		assert.True(t, present)
		assert.True(t, recorded)
	})

	t.Run("same day record is replaced", func(t *testing.T) {
		before, err := f.svc.AttendanceOf("S002")
		require.NoError(t, err)

		_, err = f.svc.RecordAttendance("S002", "SUB001", today, false)
		require.NoError(t, err)
		present, _, err := f.svc.Presence("S002", "SUB001", today)
		require.NoError(t, err)
		assert.False(t, present)

		after, err := f.svc.AttendanceOf("S002")
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})

	t.Run("summary", func(t *testing.T) {
		_, err := f.svc.RecordAttendance("S001", "SUB002", tomorrow, false)
		require.NoError(t, err)

		sum, err := f.svc.AttendanceSummary("S001", "SUB002")
		require.NoError(t, err)
		assert.Equal(t, 2, sum.Sessions)
		assert.Equal(t, 1, sum.Attended)
		assert.Equal(t, .5, sum.Rate)

		sum, err = f.svc.AttendanceSummary("S001", "SUB003")
		require.NoError(t, err)
		assert.Equal(t, 0, sum.Sessions)
		assert.Equal(t, float64(1), sum.Rate)
	})

	t.Run("not enrolled", func(t *testing.T) {
		_, err := f.svc.RecordAttendance("S003", "SUB001", today, true)
		assert.True(t, core.IsValidationError(err))
	})

	t.Run("batch is all or nothing", func(t *testing.T) {
		_, err := f.svc.RecordSessionAttendance([]string{"S005", "S003", "S001"}, "SUB003", tomorrow, false)
		assert.True(t, core.IsValidationError(err))
		for _, id := range []string{"S005", "S003"} {
			_, recorded, err := f.svc.Presence(id, "SUB003", tomorrow)
			require.NoError(t, err)
			assert.False(t, recorded, "attendance of %s recorded", id)
		}

		records, err := f.svc.RecordSessionAttendance([]string{"S005", "S003"}, "SUB003", today, false)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "S005", records[0].StudentID)
		assert.Equal(t, "S003", records[1].StudentID)
		assert.False(t, records[1].Present)
	})

	t.Run("session roster", func(t *testing.T) {
		roster, err := f.svc.SessionRoster("SUB003", tomorrow)
		require.NoError(t, err)
		require.Len(t, roster, 3)
		for _, e := range roster {
			assert.True(t, e.Present)
			assert.False(t, e.Recorded)
		}
	})
}

func TestService_Projects(t *testing.T) {
	f := setup(t)
	validate := testutil.NewValidator()

	t.Run("first project of student", func(t *testing.T) {
		p, err := f.svc.ProjectOf("S004")
		require.NoError(t, err)
		assert.Equal(t, "P002", p.ID)
		assert.Equal(t, 60, p.Progress)
		assert.Equal(t, 7.8, p.Grade)

		_, err = f.svc.ProjectOf("S999")
		assert.Equal(t, campus.ErrProjectNotFound, err)
	})

	t.Run("supervised by", func(t *testing.T) {
		projects, err := f.svc.SupervisedBy("T001")
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "P001", projects[0].ID)
	})

	t.Run("progress bounds", func(t *testing.T) {
		for _, progress := range []int{-1, 101} {
			_, err := f.svc.UpdateProgress("P001", progress)
			assert.True(t, core.IsValidationError(err))
		}
		p, err := f.svc.GetProject("P001")
		require.NoError(t, err)
		assert.Equal(t, 75, p.Progress)

		pending, err := f.svc.PendingProjects()
		require.NoError(t, err)
		assert.Equal(t, 2, pending)

		_, err = f.svc.UpdateProgress("P001", 100)
		require.NoError(t, err)
		pending, err = f.svc.PendingProjects()
		require.NoError(t, err)
		assert.Equal(t, 1, pending)
	})

	t.Run("approve topic", func(t *testing.T) {
		p, err := f.svc.GetProject("P002")
		require.NoError(t, err)
		assert.False(t, p.Approved)

		p, err = f.svc.ApproveTopic("P002")
		require.NoError(t, err)
		assert.True(t, p.Approved)
		p, err = f.svc.ApproveTopic(" P002 ")
		require.NoError(t, err)
		assert.True(t, p.Approved)

		_, err = f.svc.ApproveTopic("P404")
		assert.Equal(t, campus.ErrProjectNotFound, err)
	})

	t.Run("grade from input", func(t *testing.T) {
		_, err := f.svc.SetProjectGrade("P002", "eight")
		assert.True(t, core.IsValidationError(err))
		p, err := f.svc.GetProject("P002")
		require.NoError(t, err)
		assert.Equal(t, 7.8, p.Grade)

		p, err = f.svc.SetProjectGrade("P002", " 9.25 ")
		require.NoError(t, err)
		assert.Equal(t, 9.25, p.Grade)
	})

	t.Run("create", func(t *testing.T) {
		tests := []struct {
			name      string
			np        campus.NewProject
			wantValid bool
		}{
			{name: "missing fields", np: campus.NewProject{ID: "P003"}},
			{name: "id exists", np: campus.NewProject{ID: "P001", Name: "X", StudentIDs: []string{"S001"}, SupervisorID: "T001"}},
			{name: "supervisor not a teacher", np: campus.NewProject{ID: "P003", Name: "X", StudentIDs: []string{"S001"}, SupervisorID: "S002"}},
			{name: "unknown student", np: campus.NewProject{ID: "P003", Name: "X", StudentIDs: []string{"S001", "S999"}, SupervisorID: "T001"}},
			{name: "bad deadline", np: campus.NewProject{ID: "P003", Name: "X", StudentIDs: []string{"S001"}, SupervisorID: "T001", Deadline: "31/12/2024"}},
			{name: "valid", np: campus.NewProject{ID: "P003", Name: " Portfolio ", StudentIDs: []string{" S004 "}, SupervisorID: "T002", Deadline: "2024-06-30"}, wantValid: true},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.np.Validate(validate, f.svc)
				if !tt.wantValid {
					assert.Error(t, err)
					return
				}
				require.NoError(t, err)
				p, err := f.svc.CreateProject(tt.np)
				require.NoError(t, err)
				assert.Equal(t, "Portfolio", p.Name)
				assert.True(t, p.HasStudent("S004"))
				assert.True(t, p.IsPending())

				// S004 still belongs to P002 first
				first, err := f.svc.ProjectOf("S004")
				require.NoError(t, err)
				assert.Equal(t, "P002", first.ID)
			})
		}
	})
}

func TestService_Notifications(t *testing.T) {
	f := setup(t)

	t.Run("feed", func(t *testing.T) {
		feed, err := f.svc.Feed("S001")
		require.NoError(t, err)
		require.Len(t, feed, 2)
		assert.Equal(t, "SUB001", feed[0].SubjectID)
		assert.True(t, feed[1].IsGeneral())

		feed, err = f.svc.Feed("S003")
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, campus.SystemSender, feed[0].Sender)
	})

	t.Run("post", func(t *testing.T) {
		tests := []struct {
			name    string
			nn      campus.NewNotification
			wantErr bool
		}{
			{name: "empty message", nn: campus.NewNotification{Message: "  "}, wantErr: true},
			{name: "unknown subject", nn: campus.NewNotification{Message: "Hi", SubjectID: "SUB999"}, wantErr: true},
			{name: "general", nn: campus.NewNotification{Message: "Exams start next week"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				n, err := f.svc.PostNotification(tt.nn)
				if tt.wantErr {
					assert.True(t, core.IsValidationError(err))
					return
				}
				require.NoError(t, err)
				assert.Equal(t, campus.SystemSender, n.Sender)
				assert.NotEmpty(t, n.ID)
			})
		}
	})

	t.Run("newest first", func(t *testing.T) {
		restore := campus.SetNowFunc(func() time.Time { return time.Now().AddDate(0, 0, -7) })
		_, err := f.svc.PostNotification(campus.NewNotification{Sender: "Tran Thi Lecturer", Message: "Old news", SubjectID: "SUB003"})
		restore()
		require.NoError(t, err)

		feed, err := f.svc.Feed("S003")
		require.NoError(t, err)
		require.Len(t, feed, 3)
		assert.Equal(t, "Exams start next week", feed[0].Message)
		assert.Equal(t, "Old news", feed[2].Message)

		all, err := f.svc.Notifications()
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})
}

func TestNewestFirst(t *testing.T) {
	day := time.Date(2023, 11, 20, 9, 0, 0, 0, time.UTC)
	ns := []campus.Notification{
		{ID: "1", Date: day},
		{ID: "2", Date: day.Add(time.Hour)},
		{ID: "3", Date: day},
		{ID: "4", Date: day.Add(-time.Hour)},
	}
	campus.NewestFirst(ns)

	ids := make([]string, 0, len(ns))
	for _, n := range ns {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"2", "3", "1", "4"}, ids)
}

func TestService_Overviews(t *testing.T) {
	f := setup(t)

	t.Run("teacher", func(t *testing.T) {
		ov, err := f.svc.TeacherOverview()
		require.NoError(t, err)
		assert.Equal(t, 5, ov.TotalStudents)
		assert.Equal(t, 2, ov.PendingProjects)
		assert.Equal(t, float64(10000000), ov.UnpaidFees)
		assert.InDelta(t, 8.02, ov.AverageGPA, 1e-9)
		assert.Equal(t, []campus.MajorCount{
			{Major: "Information Technology", Count: 2, Share: .4},
			{Major: "Business Administration", Count: 2, Share: .4},
			{Major: "Design", Count: 1, Share: .2},
		}, ov.Majors)
	})

	t.Run("student", func(t *testing.T) {
		ov, err := f.svc.StudentOverview("S001")
		require.NoError(t, err)
		assert.Equal(t, 2, ov.CurrentSubjects)
		assert.Equal(t, 75, ov.ProjectProgress)
		assert.InDelta(t, 8.05, ov.Transcript.GPA10, 1e-9)
		assert.Equal(t, 6, ov.Transcript.TotalCredits)
		assert.Equal(t, 120, ov.Transcript.RequiredCredits)
	})
}
