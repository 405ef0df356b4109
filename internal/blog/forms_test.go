package blog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateForm(t *testing.T) {
	t.Run("ReportsFormFieldNames", func(t *testing.T) {
		err := validateForm(ProfileForm{Username: "ab", Email: "nope"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, map[string]string{
			"username": "at least 3 characters",
			"email":    "enter a valid email address",
		}, verr.Fields)
	})

	t.Run("AlphanumUsername", func(t *testing.T) {
		err := validateForm(SignupForm{Username: "bad name", Password: "long enough"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "only letters and digits are allowed", verr.Fields["username"])
	})

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, validateForm(CommentForm{Text: "hello"}))
		assert.NoError(t, validateForm(LoginForm{Username: "leo", Password: "x"}))
	})

	t.Run("ErrorMessageIsStable", func(t *testing.T) {
		err := validateForm(PostForm{})
		require.Error(t, err)
		assert.Equal(t, "invalid form: category: this field is required, text: this field is required, title: this field is required", err.Error())
	})
}

func TestPostForm_PublishAt(t *testing.T) {
	now := baseTime

	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{name: "Empty", raw: "", want: now},
		{name: "Blank", raw: "   ", want: now},
		{name: "DateTimeLocal", raw: "2024-03-01T08:15", want: time.Date(2024, 3, 1, 8, 15, 0, 0, time.UTC)},
		{name: "RFC3339", raw: "2024-03-01T08:15:00+02:00", want: time.Date(2024, 3, 1, 6, 15, 0, 0, time.UTC)},
		{name: "Garbage", raw: "next week", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PostForm{PubDate: tt.raw}.publishAt(now)
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, "pub_date")
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}
