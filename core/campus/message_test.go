package campus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/campus"
	"github.com/vku/studentrecords/services/email"
	"github.com/vku/studentrecords/tests"
)

func TestMessenger_MessageTeacher(t *testing.T) {
	f := setup(t)
	emailsvc.ResetSentMessages()
	defer emailsvc.ResetSentMessages()
	messenger := campus.NewMessenger(f.usrSvc, emailsvc.NewConsoleServiceMock(testutil.NewConfig()))

	from, err := f.usrSvc.GetByID("S003")
	require.NoError(t, err)

	tests := []struct {
		name      string
		nm        campus.NewMessage
		wantField string
	}{
		{name: "no teacher", nm: campus.NewMessage{Message: "Hello"}, wantField: "teacher"},
		{name: "empty message", nm: campus.NewMessage{TeacherID: "T002", Message: " \n\t "}, wantField: "message"},
		{name: "unknown teacher", nm: campus.NewMessage{TeacherID: "T404", Message: "Hello"}, wantField: "teacher"},
		{name: "student is not a teacher", nm: campus.NewMessage{TeacherID: "S001", Message: "Hello"}, wantField: "teacher"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := messenger.MessageTeacher(from, tt.nm)
			vErr, ok := err.(*core.ValidationError)
			require.True(t, ok, "MessageTeacher() error = %v, want a validation error", err)
			assert.Equal(t, tt.wantField, vErr.Fields[0].Field)
		})
	}
	assert.Empty(t, emailsvc.SentMessages)

	t.Run("sent", func(t *testing.T) {
		msg, err := messenger.MessageTeacher(from, campus.NewMessage{TeacherID: " T002 ", Message: "  Can I get an extension?\n"})
		require.NoError(t, err)
		require.Len(t, msg.To, 1)
		assert.Equal(t, "Tran Thi Lecturer", msg.To[0].Name)
		assert.Equal(t, "teacher2@vku.vn", msg.To[0].Address)
		require.NotNil(t, msg.ReplyTo)
		assert.Equal(t, "student3@vku.vn", msg.ReplyTo.Address)
		assert.Equal(t, "Message from Le Van C (S003)", msg.Subject)
		assert.Equal(t, "Can I get an extension?", msg.Body)

		require.Len(t, emailsvc.SentMessages, 1)
		assert.Equal(t, msg.Subject, emailsvc.SentMessages[0].Subject)
	})
}
