package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Vars is a map of interpolation variables for translations.
type Vars map[string]any

const defaultLocale = "en"

// builtin holds the English messages for the validator tags records use most.
var builtin = map[string]any{
	"errors.validations.required": "%{field} is required",
	"errors.validations.email":    "%{field} must be a valid email address",
	"errors.validations.min":      "%{field} must be at least %{param}",
	"errors.validations.max":      "%{field} must be at most %{param}",
	"errors.validations.len":      "%{field} must have length %{param}",
	"errors.validations.oneof":    "%{field} must be one of [%{param}]",
	"errors.validations.numeric":  "%{field} must be numeric",
	"errors.validations.gte":      "%{field} must be greater than or equal to %{param}",
	"errors.validations.lte":      "%{field} must be less than or equal to %{param}",
	"errors.validations.gt":       "%{field} must be greater than %{param}",
	"errors.validations.lt":       "%{field} must be less than %{param}",
}

var (
	mu           sync.RWMutex
	translations = map[string]map[string]any{defaultLocale: copyFlat(builtin)}
	current      = defaultLocale
)

// Init loads every *.yaml / *.yml file in dir; the file name is the locale.
// A missing directory is not an error.
func Init(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, f := range entries {
		ext := filepath.Ext(f.Name())
		if f.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			return err
		}
		if err := Load(strings.TrimSuffix(f.Name(), ext), data); err != nil {
			return fmt.Errorf("i18n: %s: %w", f.Name(), err)
		}
	}
	return nil
}

// Load merges a YAML document into the given locale. The document may nest
// its keys under the locale name (en: {...}).
func Load(locale string, data []byte) error {
	var nested map[string]any
	if err := yaml.Unmarshal(data, &nested); err != nil {
		return err
	}
	if inner, ok := nested[locale].(map[string]any); ok {
		nested = inner
	}

	mu.Lock()
	defer mu.Unlock()
	dst, ok := translations[locale]
	if !ok {
		dst = make(map[string]any)
		translations[locale] = dst
	}
	for k, v := range flatten(nested, "") {
		dst[k] = v
	}
	return nil
}

// T translates key in the current locale, falling back to English and then
// to the key itself.
func T(key string, vars Vars) string {
	mu.RLock()
	val, ok := lookup(current, key)
	if !ok && current != defaultLocale {
		val, ok = lookup(defaultLocale, key)
	}
	mu.RUnlock()
	if !ok {
		return key
	}

	for k, v := range vars {
		val = strings.ReplaceAll(val, "%{"+k+"}", fmt.Sprint(v))
	}
	return val
}

func lookup(locale, key string) (string, bool) {
	s, ok := translations[locale][key].(string)
	return s, ok
}

// SetLocale sets the current locale.
func SetLocale(locale string) {
	if locale == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	current = locale
}

// Locale returns the current locale.
func Locale() string {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLocales returns the loaded locales, sorted.
func AvailableLocales() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(translations))
	for l := range translations {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// flatten turns nested maps into dot-notation keys.
func flatten(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)
	for k, v := range nested {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			for sk, sv := range flatten(sub, key) {
				flat[sk] = sv
			}
			continue
		}
		flat[key] = v
	}
	return flat
}

func copyFlat(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
