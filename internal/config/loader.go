package config

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/vango-dev/techcorp/internal/errors"
)

// Source names the layer that supplied a configuration key.
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceEnv     Source = "env"
)

// Option customises Load.
type Option func(*loader)

// WithEnviron replaces os.Environ as the source of environment overrides.
func WithEnviron(environ func() []string) Option {
	return func(l *loader) { l.environ = environ }
}

// RequireFile makes a missing configuration file an error.
func RequireFile() Option {
	return func(l *loader) { l.requireFile = true }
}

// Loaded is a configuration together with where each key came from.
type Loaded struct {
	*Config

	// Path is the file that was read, or "" when none was found.
	Path string

	sources map[string]Source
	values  map[string]any
}

// Source reports which layer supplied key, e.g. "inbox.driver".
func (l *Loaded) Source(key string) Source {
	if s, ok := l.sources[key]; ok {
		return s
	}
	return SourceDefault
}

// Entry is one flattened configuration key.
type Entry struct {
	Key    string
	Value  any
	Source Source
}

// Entries lists every key in order with its effective value and source.
// Secrets are masked.
func (l *Loaded) Entries() []Entry {
	keys := make([]string, 0, len(l.values))
	for k := range l.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		v := l.values[k]
		if strings.HasSuffix(k, "password") && fmt.Sprint(v) != "" {
			v = "********"
		}
		out = append(out, Entry{Key: k, Value: v, Source: l.Source(k)})
	}
	return out
}

type loader struct {
	k           *koanf.Koanf
	validate    *validator.Validate
	environ     func() []string
	requireFile bool
	sources     map[string]Source
}

// Load reads defaults, then path (if it exists), then TECHCORP_ variables,
// and validates the result. Errors are coded T1xx.
func Load(path string, opts ...Option) (*Loaded, error) {
	l := &loader{
		k:        koanf.New("."),
		validate: validator.New(),
		environ:  os.Environ,
		sources:  make(map[string]Source),
	}
	for _, opt := range opts {
		opt(l)
	}

	if err := l.k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, errors.New("T101").Wrap(fmt.Errorf("load defaults: %w", err))
	}
	for _, key := range l.k.Keys() {
		l.sources[key] = SourceDefault
	}

	loadedPath, err := l.loadFile(path)
	if err != nil {
		return nil, err
	}
	if err := l.loadEnv(); err != nil {
		return nil, err
	}

	cfg, err := l.unmarshalAndValidate()
	if err != nil {
		return nil, err
	}
	return &Loaded{
		Config:  cfg,
		Path:    loadedPath,
		sources: l.sources,
		values:  l.k.All(),
	}, nil
}

func (l *loader) loadFile(path string) (string, error) {
	if path == "" {
		if l.requireFile {
			return "", errors.New("T101").WithDetail("No configuration file given.")
		}
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) && !l.requireFile {
			return "", nil
		}
		return "", errors.New("T101").
			WithSuggestion("Check that " + path + " exists and is readable").
			Wrap(err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", errors.New("T101").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + path + " is valid JSON")
	}
	if err := l.track(rawMap(raw), SourceFile); err != nil {
		return "", errors.New("T101").Wrap(err)
	}
	return path, nil
}

// envKey maps TECHCORP_INBOX_REDIS_ADDR to inbox.redis_addr.
func envKey(name string) string {
	s := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' })
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return parts[0] + "." + strings.Join(parts[1:], "_")
}

func (l *loader) loadEnv() error {
	p := env.Provider(".", env.Opt{
		Prefix:      EnvPrefix,
		EnvironFunc: l.environ,
		TransformFunc: func(k, v string) (string, any) {
			return envKey(k), v
		},
	})
	if err := l.track(p, SourceEnv); err != nil {
		return errors.New("T103").Wrap(err)
	}
	return nil
}

// track loads p and records src for every key it added or changed.
func (l *loader) track(p koanf.Provider, src Source) error {
	before := l.k.All()
	if err := l.k.Load(p, nil); err != nil {
		return err
	}
	for key, after := range l.k.All() {
		prev, existed := before[key]
		if !existed || !reflect.DeepEqual(prev, after) {
			l.sources[key] = src
		}
	}
	return nil
}

func (l *loader) unmarshalAndValidate() (*Config, error) {
	var cfg Config
	if err := l.k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return nil, errors.New("T103").
			WithSuggestion("Durations use Go syntax such as 1.5s or 30m").
			Wrap(err)
	}

	if err := l.validate.Struct(&cfg); err != nil {
		return nil, validationError(err)
	}
	return &cfg, nil
}

// Validate checks cfg against its struct rules, e.g. after command-line
// overrides were applied to a loaded configuration.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.New("T102").Wrap(err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		problems = append(problems, fmt.Sprintf("%s fails %s", keyOf(fe.Namespace()), rule))
	}
	return errors.New("T102").
		WithDetail(strings.Join(problems, "; ")).
		WithSuggestion("Fix the value in " + FileName + " or the matching " + EnvPrefix + " variable").
		Wrap(err)
}

// keyOf turns "Config.Inbox.RedisAddr" into "inbox.redis_addr".
func keyOf(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = snake(p)
	}
	return strings.Join(parts, ".")
}

func snake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// rawMap adapts a decoded map to koanf.Provider.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, stderrors.New("rawMap does not support ReadBytes")
}
