package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("ASKARRAY_TEST_DIR", "/srv/asks")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/asks.db", want: filepath.Join(home, "asks.db")},
		{in: "$ASKARRAY_TEST_DIR/asks.db", want: "/srv/asks/asks.db"},
		{in: "/tmp/asks.db", want: "/tmp/asks.db"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDatabasePath(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	assert.Equal(t, ExpandPath(DefaultDatabasePath), DatabasePath())

	viper.Set("database.path", "/var/lib/askarray/test.db")
	assert.Equal(t, "/var/lib/askarray/test.db", DatabasePath())
}
