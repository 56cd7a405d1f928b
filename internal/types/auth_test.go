package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateUserRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req: CreateUserRequest{
				FirstName:    "Ada",
				LastName:     "Lovelace",
				Emails:       []string{"ada@example.com"},
				DefaultEmail: "ada@example.com",
				Password:     "correct-horse",
			},
			wantErr: false,
		},
		{
			name: "multiple emails with default among them",
			req: CreateUserRequest{
				FirstName:    "Ada",
				Emails:       []string{"ada@example.com", "ada@work.example.com"},
				DefaultEmail: "ada@work.example.com",
				Password:     "correct-horse",
			},
			wantErr: false,
		},
		{
			name: "missing first name",
			req: CreateUserRequest{
				Emails:       []string{"ada@example.com"},
				DefaultEmail: "ada@example.com",
				Password:     "correct-horse",
			},
			wantErr: true,
		},
		{
			name: "no emails",
			req: CreateUserRequest{
				FirstName:    "Ada",
				Emails:       []string{},
				DefaultEmail: "ada@example.com",
				Password:     "correct-horse",
			},
			wantErr: true,
		},
		{
			name: "malformed email",
			req: CreateUserRequest{
				FirstName:    "Ada",
				Emails:       []string{"not-an-email"},
				DefaultEmail: "not-an-email",
				Password:     "correct-horse",
			},
			wantErr: true,
		},
		{
			name: "short password",
			req: CreateUserRequest{
				FirstName:    "Ada",
				Emails:       []string{"ada@example.com"},
				DefaultEmail: "ada@example.com",
				Password:     "short",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateUserRequest_Validate_DefaultEmailNotInList(t *testing.T) {
	req := CreateUserRequest{
		FirstName:    "Ada",
		Emails:       []string{"ada@example.com"},
		DefaultEmail: "other@example.com",
		Password:     "correct-horse",
	}

	err := req.Validate()
	require.Error(t, err)

	var dee *DefaultEmailError
	require.ErrorAs(t, err, &dee)
	assert.Equal(t, "other@example.com", dee.Email)
}

func TestLoginRequest_Validate(t *testing.T) {
	valid := LoginRequest{Email: "ada@example.com", Password: "pw"}
	assert.NoError(t, valid.Validate())

	missing := LoginRequest{Email: "ada@example.com"}
	assert.Error(t, missing.Validate())

	badEmail := LoginRequest{Email: "nope", Password: "pw"}
	assert.Error(t, badEmail.Validate())
}

func TestUpdatePasswordRequest_Validate(t *testing.T) {
	valid := UpdatePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"}
	assert.NoError(t, valid.Validate())

	short := UpdatePasswordRequest{CurrentPassword: "old-password", NewPassword: "short"}
	assert.Error(t, short.Validate())
}
