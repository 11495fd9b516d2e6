package redact

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		mustDrop string
	}{
		{
			name:     "connection string credentials",
			input:    "failed to connect to postgres://app:s3cret@db:5432/worktracker",
			want:     "failed to connect to [REDACTED_CREDENTIAL]db:5432/worktracker",
			mustDrop: "s3cret",
		},
		{
			name:     "password assignment",
			input:    "auth failed: password=hunter22 user=app",
			mustDrop: "hunter22",
		},
		{
			name:     "token",
			input:    "token: abcdefgh12345678",
			want:     RedactedKeyPlaceholder,
			mustDrop: "abcdefgh12345678",
		},
		{
			name:     "email address",
			input:    `duplicate key for "ada@example.com"`,
			want:     `duplicate key for "[REDACTED_EMAIL]"`,
			mustDrop: "ada@example.com",
		},
		{
			name:     "sql statement",
			input:    "query failed: SELECT id, email FROM users WHERE id = $1",
			want:     "query failed: " + RedactedSQLPlaceholder,
			mustDrop: "users",
		},
		{
			name:     "file path",
			input:    "open /etc/worktracker/config.yaml: permission denied",
			want:     "open [REDACTED_PATH]: permission denied",
			mustDrop: "/etc/worktracker",
		},
		{
			name:     "ip and port",
			input:    "dial tcp 10.0.0.12:5432: connect: connection refused",
			want:     "dial tcp [REDACTED_HOST]: connect: connection refused",
			mustDrop: "10.0.0.12",
		},
		{
			name:     "hostname and port",
			input:    "dial tcp db.internal.example:5432: i/o timeout",
			mustDrop: "db.internal.example",
		},
		{
			name:  "nothing sensitive",
			input: "task not found",
			want:  "task not found",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := String(tt.input)
			if tt.want != "" || tt.input == "" {
				assert.Equal(t, tt.want, got)
			}
			if tt.mustDrop != "" {
				assert.NotContains(t, got, tt.mustDrop)
			}
		})
	}
}

func TestError(t *testing.T) {
	assert.Equal(t, "", Error(nil))

	err := fmt.Errorf("create user: %w", errors.New("password: letmein123"))
	assert.NotContains(t, Error(err), "letmein123")
	assert.Contains(t, Error(err), "create user")
}
