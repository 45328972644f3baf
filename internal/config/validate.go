package config

import (
	"fmt"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Throttle.Limit <= 0 {
		return fmt.Errorf("throttle.limit must be > 0 (got %d)", c.Throttle.Limit)
	}
	if c.Throttle.Window <= 0 {
		return fmt.Errorf("throttle.window must be > 0 (got %v)", c.Throttle.Window)
	}
	if c.Calendar.FetchTimeout <= 0 {
		return fmt.Errorf("calendar.fetch_timeout must be > 0 (got %v)", c.Calendar.FetchTimeout)
	}
	if _, err := time.LoadLocation(c.Calendar.Timezone); err != nil {
		return fmt.Errorf("calendar.timezone: %w", err)
	}
	return nil
}
