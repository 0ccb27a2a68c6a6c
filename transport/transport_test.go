package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{":8080", true},
		{"127.0.0.1:9090", true},
		{"localhost:1", true},
		{"[::1]:65535", true},
		{"", false},
		{"8080", false},
		{":0", false},
		{":65536", false},
		{"-bad:80", false},
		{"ba_d:80", false},
		{"host:", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidateAddress(tt.addr), tt.addr)
	}
}
