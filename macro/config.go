package macro

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/arloliu/dedit/errs"
	"github.com/arloliu/dedit/internal/logging"
	"github.com/arloliu/dedit/internal/options"
	"github.com/arloliu/dedit/section"
)

// Config holds the settings of one macro dictionary operation.
type Config struct {
	// SectionCount is the number of header slots honoured (10, 11 or 16).
	SectionCount int
	// Logger receives debug entries per section.
	Logger log.FieldLogger
}

// Option configures a macro dictionary operation.
type Option = options.Option[*Config]

// WithSectionCount selects the dictionary format generation by its section count.
func WithSectionCount(n int) Option {
	return options.New(func(c *Config) error {
		if !section.ValidSectionCount(n) {
			return fmt.Errorf("%w: section count %d, want %d, %d or %d", errs.ErrInvalidOption, n,
				section.SectionCountGen1, section.SectionCountGen2, section.SectionCountGen3)
		}
		c.SectionCount = n

		return nil
	})
}

// WithLogger sets the logger for debug output.
func WithLogger(l log.FieldLogger) Option {
	return options.NoError(func(c *Config) {
		c.Logger = logging.OrDiscard(l)
	})
}

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		SectionCount: section.SectionCountGen3,
		Logger:       logging.Discard(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}
