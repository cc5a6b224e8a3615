package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	sections int
	name     string
}

func withSections(n int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if n <= 0 {
			return errors.New("sections must be positive")
		}
		c.sections = n

		return nil
	})
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.name = name
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withSections(10), withName("a"), withSections(16))
		require.NoError(t, err)
		require.Equal(t, 16, cfg.sections)
		require.Equal(t, "a", cfg.name)
	})

	t.Run("stops at the first error", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withName("a"), withSections(0), withName("b"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "option 1")
		require.Contains(t, err.Error(), "sections must be positive")
		require.Equal(t, "a", cfg.name)
	})

	t.Run("nil options are skipped", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg, nil, withName("c")))
		require.Equal(t, "c", cfg.name)
	})

	t.Run("no options", func(t *testing.T) {
		require.NoError(t, Apply(&testConfig{}))
	})
}
