package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "valid simple", username: "alice", wantErr: false},
		{name: "valid single char", username: "a", wantErr: false},
		{name: "valid with digits and underscore", username: "user_42", wantErr: false},
		{name: "empty", username: "", wantErr: true},
		{name: "too long", username: strings.Repeat("a", MaxUsernameLen+1), wantErr: true},
		{name: "max length ok", username: strings.Repeat("a", MaxUsernameLen), wantErr: false},
		{name: "spaces", username: "user name", wantErr: true},
		{name: "special chars", username: "user@host", wantErr: true},
		{name: "cyrillic", username: "пользователь", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid short", password: "pw1", wantErr: false},
		{name: "empty", password: "", wantErr: true},
		{name: "bcrypt limit ok", password: strings.Repeat("x", 72), wantErr: false},
		{name: "over bcrypt limit", password: strings.Repeat("x", 73), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
