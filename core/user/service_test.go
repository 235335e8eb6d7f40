package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/academic"
	"github.com/vku/studentrecords/core/user"
	"github.com/vku/studentrecords/storage/database/inmem"
	"github.com/vku/studentrecords/tests"
)

func setup(t *testing.T) (*user.Service, user.Repository) {
	db := testutil.PrepareSeededDB(t, testutil.NewConfig())
	repo := inmemdb.NewUserRepository(db)
	return user.NewService(repo, inmemdb.NewSubjectRepository(db)), repo
}

func studentIDs(students []user.Student) []string {
	ids := make([]string, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestService_Filter(t *testing.T) {
	svc, _ := setup(t)

	tests := []struct {
		name   string
		filter user.QueryFilter
		want   []string
	}{
		{name: "empty", want: []string{"S001", "S002", "S003", "S004", "S005"}},
		{name: "all majors", filter: user.QueryFilter{Major: "All", Class: "all"}, want: []string{"S001", "S002", "S003", "S004", "S005"}},
		{name: "search a", filter: user.QueryFilter{Search: "a"}, want: []string{"S001", "S002", "S003", "S004", "S005"}},
		{name: "search van", filter: user.QueryFilter{Search: "VAN"}, want: []string{"S001", "S003", "S005"}},
		{name: "search id", filter: user.QueryFilter{Search: "s004"}, want: []string{"S004"}},
		{name: "major", filter: user.QueryFilter{Major: "Information Technology"}, want: []string{"S001", "S002"}},
		{name: "class", filter: user.QueryFilter{Class: "K42B"}, want: []string{"S003", "S005"}},
		{name: "major and search", filter: user.QueryFilter{Major: "Business Administration", Search: "hoang"}, want: []string{"S005"}},
		{name: "major and class mismatch", filter: user.QueryFilter{Major: "Design", Class: "K41A"}, want: []string{}},
		{name: "no match", filter: user.QueryFilter{Search: "zzz"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Filter(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, studentIDs(got))
		})
	}
}

func TestService_SeededTranscripts(t *testing.T) {
	svc, _ := setup(t)

	tests := []struct {
		id          string
		wantGPA10   float64
		wantGPA4    float64
		wantRank    string
		wantCredits int
	}{
		{id: "S001", wantGPA10: 8.05, wantGPA4: 3.7, wantRank: academic.LetterB, wantCredits: 6},
		{id: "S002", wantGPA10: 7.65, wantGPA4: 3.3, wantRank: academic.LetterB, wantCredits: 6},
		{id: "S003", wantGPA10: 9.2, wantGPA4: 4.0, wantRank: academic.LetterA, wantCredits: 2},
		{id: "S005", wantGPA10: 7.1, wantGPA4: 3.0, wantRank: academic.LetterB, wantCredits: 2},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, err := svc.GetStudent(tt.id)
			require.NoError(t, err)
			tr := s.Transcript(120)
			assert.InDelta(t, tt.wantGPA10, tr.GPA10, 1e-9)
			assert.Equal(t, tt.wantGPA4, tr.GPA4)
			assert.Equal(t, tt.wantRank, tr.Rank)
			assert.Equal(t, tt.wantCredits, tr.TotalCredits)
			assert.Equal(t, 120, tr.RequiredCredits)
		})
	}
}

func TestService_Enroll(t *testing.T) {
	svc, _ := setup(t)

	s, err := svc.Enroll("S003", "SUB001")
	require.NoError(t, err)
	assert.True(t, s.HasSubject("SUB001"))
	assert.Equal(t, 5, s.TotalCredits())

	// enrolling twice is a no-op
	s, err = svc.Enroll("S003", "SUB001")
	require.NoError(t, err)
	assert.Len(t, s.Subjects, 2)

	// ungraded subjects do not weigh on the GPA
	assert.InDelta(t, 9.2, s.GPA10(), 1e-9)

	_, err = svc.Enroll("S003", "SUB999")
	assert.Equal(t, academic.ErrSubjectNotFound, err)
	_, err = svc.Enroll("S999", "SUB001")
	assert.Equal(t, user.ErrNotFound, err)
}

func TestService_RecordGrade(t *testing.T) {
	svc, _ := setup(t)
	scores := academic.Scores{Assignment: 10, Midterm: 9, Attendance: 10, Final: 9.5}

	t.Run("not enrolled", func(t *testing.T) {
		_, err := svc.RecordGrade("S003", "SUB001", scores)
		require.Error(t, err)
		assert.True(t, core.IsValidationError(err))
	})

	t.Run("replaces existing grade", func(t *testing.T) {
		g, err := svc.RecordGrade("S001", "SUB001", scores)
		require.NoError(t, err)
		assert.Equal(t, academic.LetterA, g.Letter())

		s, err := svc.GetStudent("S001")
		require.NoError(t, err)
		assert.Len(t, s.Grades, 2)
		got, ok := s.GradeFor("SUB001")
		require.True(t, ok)
		assert.Equal(t, scores, got.Scores)
		assert.InDelta(t, (9.5*3+7.9*3)/6, s.GPA10(), 1e-9)
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := svc.RecordGrade("S999", "SUB001", scores)
		assert.Equal(t, user.ErrNotFound, err)
	})
}

func TestService_Roster(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Enroll("S005", "SUB001")
	require.NoError(t, err)

	roster, err := svc.Roster("SUB001")
	require.NoError(t, err)
	require.Len(t, roster, 3)

	assert.Equal(t, "S001", roster[0].Student.ID)
	assert.True(t, roster[0].Graded)
	assert.InDelta(t, 8.3, roster[0].Grade.Average(), 1e-9)

	assert.Equal(t, "S005", roster[2].Student.ID)
	assert.False(t, roster[2].Graded)
	assert.Equal(t, academic.LetterF, roster[2].Grade.Letter())

	_, err = svc.Roster("SUB999")
	assert.Equal(t, academic.ErrSubjectNotFound, err)
}

func TestService_CreateStudent(t *testing.T) {
	svc, repo := setup(t)
	validate := testutil.NewValidator()

	tests := []struct {
		name      string
		ns        user.NewStudent
		wantValid bool
	}{
		{name: "missing fields", ns: user.NewStudent{ID: "S006"}},
		{name: "bad class", ns: user.NewStudent{ID: "S006", Name: "Vo Van F", Class: "K4 1", Major: "Design", Email: "f@vku.vn", Password: "x"}},
		{name: "id exists", ns: user.NewStudent{ID: "S001", Name: "Vo Van F", Class: "K41A", Major: "Design", Email: "f@vku.vn", Password: "x"}},
		{name: "email exists", ns: user.NewStudent{ID: "S006", Name: "Vo Van F", Class: "K41A", Major: "Design", Email: " STUDENT1@vku.vn", Password: "x"}},
		{name: "valid", ns: user.NewStudent{ID: "S006", Name: " Vo Van F ", Class: "K41A", Major: "Design", Email: "F@vku.vn", Password: "x"}, wantValid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ns.Validate(validate, svc)
			if !tt.wantValid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			s, err := svc.CreateStudent(tt.ns)
			require.NoError(t, err)
			assert.Equal(t, "Vo Van F", s.Name)
			assert.Equal(t, "f@vku.vn", s.Email)
			assert.Equal(t, user.KindStudent, s.Kind)
			assert.NoError(t, s.CheckPassword("x"))

			all, err := repo.QueryAllUsers()
			require.NoError(t, err)
			assert.Equal(t, "S006", all[len(all)-1].ID)
		})
	}
}

func TestService_CreateSubject(t *testing.T) {
	svc, repo := setup(t)

	_, err := svc.CreateSubject(academic.NewSubject{ID: "SUB004", Name: "Databases", Credits: 3, TeacherID: "T999"})
	assert.True(t, core.IsValidationError(err))

	sub, err := svc.CreateSubject(academic.NewSubject{ID: "SUB004", Name: "Databases", Credits: 3, TeacherID: "T002"})
	require.NoError(t, err)
	assert.Equal(t, "SUB004", sub.ID)

	tchr, err := repo.GetTeacherByID("T002")
	require.NoError(t, err)
	assert.True(t, academic.ContainsSubject(tchr.Subjects, "SUB004"))
}

func TestService_ChangePassword(t *testing.T) {
	svc, _ := setup(t)
	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)

	usr, err := svc.GetByID("S001")
	require.NoError(t, err)

	tests := []struct {
		name      string
		cp        user.ChangePassword
		wantField string
	}{
		{name: "missing fields", cp: user.ChangePassword{}, wantField: "old_password"},
		{name: "confirm mismatch", cp: user.ChangePassword{OldPassword: "student123", Password: "N3w-Passw0rd!", PasswordConfirm: "N3w-Passw0rd?"}, wantField: "password_confirm"},
		{name: "too short", cp: user.ChangePassword{OldPassword: "student123", Password: "Ab1!", PasswordConfirm: "Ab1!"}, wantField: "password"},
		{name: "whitespace", cp: user.ChangePassword{OldPassword: "student123", Password: "N3w Passw0rd!", PasswordConfirm: "N3w Passw0rd!"}, wantField: "password"},
		{name: "all numeric", cp: user.ChangePassword{OldPassword: "student123", Password: "1234567890", PasswordConfirm: "1234567890"}, wantField: "password"},
		{name: "not complex", cp: user.ChangePassword{OldPassword: "student123", Password: "abcdefgh1", PasswordConfirm: "abcdefgh1"}, wantField: "password"},
		{name: "similar to name", cp: user.ChangePassword{OldPassword: "student123", Password: "Nguyenvan1!", PasswordConfirm: "Nguyenvan1!"}, wantField: "password"},
		{name: "same as old", cp: user.ChangePassword{OldPassword: "student123", Password: "student123", PasswordConfirm: "student123"}, wantField: "password"},
		{name: "wrong old password", cp: user.ChangePassword{OldPassword: "student12", Password: "N3w-Passw0rd!", PasswordConfirm: "N3w-Passw0rd!"}, wantField: "old_password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cp.Validate(validate, usr)
			require.Error(t, err)
			fields, ok := core.TranslateError(err, translator)
			require.True(t, ok)
			assert.Contains(t, fields, tt.wantField)
		})
	}

	t.Run("valid", func(t *testing.T) {
		cp := user.ChangePassword{OldPassword: "student123", Password: "N3w-Passw0rd!", PasswordConfirm: "N3w-Passw0rd!"}
		require.NoError(t, cp.Validate(validate, usr))
		require.NoError(t, svc.ChangePassword(usr.ID, cp))

		updated, err := svc.GetByID("S001")
		require.NoError(t, err)
		assert.NoError(t, updated.CheckPassword("N3w-Passw0rd!"))
		assert.Error(t, updated.CheckPassword("student123"))
	})
}
