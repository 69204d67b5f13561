// Package config reads settings from the environment. Every key can also be
// supplied as KEY_FILE pointing at a file, for container secrets.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the value of key, then the trimmed contents of the file named
// by key_FILE, then def.
func Get(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	path := os.Getenv(key + "_FILE")
	if path == "" {
		return def
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return def
	}
	return strings.TrimSpace(string(data))
}

// parsed returns def when key is unset or does not parse.
func parsed[T any](key string, def T, parse func(string) (T, error)) T {
	raw := Get(key, "")
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

func GetInt(key string, def int) int {
	return parsed(key, def, strconv.Atoi)
}

// GetBool accepts 1/t/true/y/yes and 0/f/false/n/no in any case.
func GetBool(key string, def bool) bool {
	return parsed(key, def, parseBool)
}

func GetDuration(key string, def time.Duration) time.Duration {
	return parsed(key, def, ParseDuration)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "t", "true", "y", "yes":
		return true, nil
	case "0", "f", "false", "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}

// GetList splits a comma separated value into lowercased entries, dropping
// blanks.
func GetList(key string) []string {
	var out []string
	for _, part := range strings.Split(Get(key, ""), ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseDuration is time.ParseDuration plus a whole-day form such as "30d".
func ParseDuration(s string) (time.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if days, ok := strings.CutSuffix(s, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil {
			return time.Duration(n) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}
