package geoip

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolver_EmptyPath(t *testing.T) {
	r, err := NewResolver("  ")
	require.NoError(t, err)
	assert.Nil(t, r)

	_, err = r.CountryCode(net.ParseIP("8.8.8.8"))
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "", r.Lookup(net.ParseIP("8.8.8.8")))
	assert.NoError(t, r.Close())
}

func TestNewResolver_MissingFile(t *testing.T) {
	_, err := NewResolver(filepath.Join(t.TempDir(), "missing.mmdb"))
	assert.Error(t, err)
}
