package config

import (
	"fmt"

	"github.com/Akashdeep-Patra/scmpanel/internal/command"
	"github.com/Akashdeep-Patra/scmpanel/internal/keypress"
)

// KeyMaps returns the built-in bindings followed by the user's, so user
// entries take precedence.
func (c *Config) KeyMaps() ([]keypress.KeyMap, error) {
	maps := keypress.DefaultKeyMaps()
	for i, km := range c.Keymaps {
		cmd, err := command.Parse(km.Command)
		if err != nil {
			return nil, fmt.Errorf("keymaps[%d]: %w", i, err)
		}
		keys := keypress.ParseKeys(km.Key)
		if len(keys) == 0 {
			return nil, fmt.Errorf("keymaps[%d]: empty key", i)
		}
		entry := keypress.KeyMap{Keys: keys, When: km.When, Command: cmd}
		if km.Mode != "" {
			mode, err := keypress.ParseMode(km.Mode)
			if err != nil {
				return nil, fmt.Errorf("keymaps[%d]: %w", i, err)
			}
			entry.Modes = []keypress.Mode{mode}
		}
		maps = append(maps, entry)
	}
	return maps, nil
}
