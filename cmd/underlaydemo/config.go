// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/image/colornames"
)

// config is the contents of the -config file.
type config struct {
	// CancelOnDisable cancels the surface's gesture when
	// arbitration is switched off mid-drag.
	CancelOnDisable bool            `toml:"cancel_on_disable"`
	Surfaces        []surfaceConfig `toml:"surface"`
}

type surfaceConfig struct {
	Key   string `toml:"key"`
	Title string `toml:"title"`
	// Color is a CSS color name or #rrggbb.
	Color string `toml:"color"`
	Items int    `toml:"items"`
}

const defaultConfig = `
[[surface]]
key = "red_view"
title = "Red"
color = "#e53935"
items = 20

[[surface]]
key = "green_view"
title = "Green"
color = "#43a047"
items = 20

[[surface]]
key = "blue_view"
title = "Blue"
color = "#1e88e5"
items = 20
`

// loadConfig reads the file at path, falling back to the built-in
// surfaces if it does not exist.
func loadConfig(path string) (*config, error) {
	var cfg config
	_, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if _, err := toml.Decode(defaultConfig, &cfg); err != nil {
			panic(err)
		}
	case err != nil:
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(cfg.Surfaces) == 0 {
		return nil, fmt.Errorf("%s: no surfaces", path)
	}
	seen := make(map[string]bool)
	for i := range cfg.Surfaces {
		s := &cfg.Surfaces[i]
		if s.Key == "" {
			return nil, fmt.Errorf("%s: surface %d has no key", path, i)
		}
		if seen[s.Key] {
			return nil, fmt.Errorf("%s: duplicate surface %q", path, s.Key)
		}
		seen[s.Key] = true
		if s.Title == "" {
			s.Title = s.Key
		}
		if s.Items <= 0 {
			s.Items = 20
		}
		if _, err := parseColor(s.Color); err != nil {
			return nil, fmt.Errorf("%s: surface %q: %w", path, s.Key, err)
		}
	}
	return &cfg, nil
}

// parseColor accepts the CSS color names known to package colornames
// and hexadecimal #rrggbb values.
func parseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
