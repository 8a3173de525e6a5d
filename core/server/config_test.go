package server_test

import (
	"testing"
	"time"

	"mailrecon/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_BodyLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"Default", 0, 64 << 20},
		{"Negative", -3, 64 << 20},
		{"Custom", 8, 8 << 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{BodyLimitMB: tt.limit}
			assert.Equal(t, tt.want, c.BodyLimit())
		})
	}
}

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, ":8080", server.Config{}.Address())
	assert.Equal(t, ":9000", server.Config{Port: "9000"}.Address())
}

func TestConfig_SourceCacheTTL(t *testing.T) {
	assert.Equal(t, time.Duration(0), server.Config{}.SourceCacheTTL())
	assert.Equal(t, time.Minute, server.Config{SourceCacheSeconds: 60}.SourceCacheTTL())
}
