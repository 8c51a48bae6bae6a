package server_test

import (
	"testing"

	"scene-sync/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     server.Config
		wantErr bool
	}{
		{"Default", server.Config{Port: "8080", BodyLimitMB: 50}, false},
		{"HighPort", server.Config{Port: "65535"}, false},
		{"Empty", server.Config{Port: ""}, true},
		{"NotNumeric", server.Config{Port: "http"}, true},
		{"OutOfRange", server.Config{Port: "70000"}, true},
		{"NegativeBody", server.Config{Port: "8080", BodyLimitMB: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_BodyLimit(t *testing.T) {
	assert.Equal(t, 4*1024*1024, server.Config{}.BodyLimit())
	assert.Equal(t, 50*1024*1024, server.Config{BodyLimitMB: 50}.BodyLimit())
}
