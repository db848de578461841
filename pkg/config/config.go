package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the CLI, batch, watch and serve modes.
type Config struct {
	ComponentName string        `yaml:"component_name" validate:"required,identifier"`
	PropsName     string        `yaml:"props_name" validate:"required,identifier"`
	Formatter     string        `yaml:"formatter" validate:"oneof=builtin prettier none"`
	PrettierBin   string        `yaml:"prettier_bin"`
	PrintWidth    int           `yaml:"print_width" validate:"gt=0,lte=400"`
	Debounce      time.Duration `yaml:"debounce" validate:"gte=0"`
	Target        string        `yaml:"target" validate:"oneof=svg react native reactNative all"`
	Parallel      int           `yaml:"parallel" validate:"gt=0,lte=64"`
	Addr          string        `yaml:"addr" validate:"required"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ComponentName: "Icon",
		PropsName:     "props",
		Formatter:     "builtin",
		PrettierBin:   "prettier",
		PrintWidth:    80,
		Debounce:      800 * time.Millisecond,
		Target:        "react",
		Parallel:      5,
		Addr:          ":8080",
	}
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	})
	return v
}

// Load reads a YAML file over the defaults and validates the result.
// An empty path returns the validated defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every field and reports all violations at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("invalid %s %q (rule %s)", yamlName(fe.StructField()), fmt.Sprint(fe.Value()), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func yamlName(field string) string {
	switch field {
	case "ComponentName":
		return "component_name"
	case "PropsName":
		return "props_name"
	case "PrettierBin":
		return "prettier_bin"
	case "PrintWidth":
		return "print_width"
	default:
		return strings.ToLower(field)
	}
}
