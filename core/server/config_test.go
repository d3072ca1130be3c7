package server_test

import (
	"testing"
	"time"

	"asset-variants/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ReconcileTTL(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    time.Duration
	}{
		{"Default", 300, 5 * time.Minute},
		{"Disabled", 0, 0},
		{"Negative", -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{ReconcileTTLSeconds: tt.seconds}
			assert.Equal(t, tt.want, c.ReconcileTTL())
		})
	}
}

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, ":8080", server.Config{Port: "8080"}.Address())
}

func TestConfig_BodyLimit(t *testing.T) {
	assert.Equal(t, 64*1024, server.Config{BodyLimitKB: 64}.BodyLimit())
	assert.Equal(t, 4*1024*1024, server.Config{}.BodyLimit())
}
