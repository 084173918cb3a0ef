package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultShortName(t *testing.T) {
	tests := []struct {
		full string
		want string
	}{
		{"Dr. Jane Lee", "Jane"},
		{"Dr Sam Patel", "Sam"},
		{"Jane Lee", "Jane"},
		{"Lee,", "Lee"},
		{"Dr.", "Dr"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultShortName(tt.full), "full=%q", tt.full)
	}
}

func TestConfigureProviders(t *testing.T) {
	in := strings.NewReader("Lee\n\n")
	var out bytes.Buffer
	p := NewPrompter(in, &out)

	mapping, err := p.ConfigureProviders([]string{"Dr. Jane Lee", "Dr. Sam Patel"})
	require.NoError(t, err)

	assert.Equal(t, "Lee", mapping["Dr. Jane Lee"])
	// Empty answer takes the default.
	assert.Equal(t, "Sam", mapping["Dr. Sam Patel"])
	assert.Contains(t, out.String(), "Dr. Jane Lee")
}

func TestConfigureProvidersEOFUsesDefaults(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})

	mapping, err := p.ConfigureProviders([]string{"Dr. Jane Lee", "Dr. Sam Patel"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", mapping["Dr. Jane Lee"])
	assert.Equal(t, "Sam", mapping["Dr. Sam Patel"])
}
