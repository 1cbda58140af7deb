// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tonneli-cli/tonneli/color"
	"github.com/tonneli-cli/tonneli/constant"
	"github.com/tonneli-cli/tonneli/icon"
	"github.com/tonneli-cli/tonneli/key"
	"github.com/tonneli-cli/tonneli/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string

	validate func(any) error
}

// Validate checks v against the constraints of the field. The type of v must match the default value.
func (f *Field) Validate(v any) error {
	if reflect.TypeOf(v) != reflect.TypeOf(f.Value) {
		return fmt.Errorf("%s expects %s, got %T", f.Key, f.typeName(), v)
	}
	if f.validate == nil {
		return nil
	}
	if err := f.validate(v); err != nil {
		return fmt.Errorf("%s: %w", f.Key, err)
	}
	return nil
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Tonneli + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string, validate ...func(any) error) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		if len(validate) > 0 {
			f.validate = validate[0]
		}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.DefaultCity, "", "City to open directly, skipping the city selection.\nType \"tonneli cities list\" to show available cities")
	register(key.ServiceTimeout, 15, "Seconds to wait for a city provider before giving up", positive)
	register(key.SearchLimit, 50, "Maximum number of addresses shown for a search", positive)
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when searching")
	register(key.ScheduleLookBackDays, 0, "Days before today that are still shown in a schedule.\n0 shows upcoming pickups only", nonNegative)
	register(key.ScheduleHorizonDays, 60, "Days after today that are requested from the provider", nonNegative)
	register(key.NetworkSpoofTLS, false, "Use a browser TLS fingerprint for provider requests")
	register(key.ProvidersCustom, true, "Load Lua city providers from the providers directory")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)", oneOf(icon.AvailableVariants()...))
	register(key.TUISearchPromptString, "> ", "Search prompt string to use")
	register(key.TUIDateFormat, "02.01.2006", "Go time layout used for pickup dates", dateLayout)
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace", logLevel)
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}

func positive(v any) error {
	if v.(int) <= 0 {
		return errors.New("must be greater than 0")
	}
	return nil
}

func nonNegative(v any) error {
	if v.(int) < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func oneOf(options ...string) func(any) error {
	return func(v any) error {
		if !lo.Contains(options, v.(string)) {
			return fmt.Errorf("must be one of %s", strings.Join(options, ", "))
		}
		return nil
	}
}

// dateLayout rejects layouts without a day, which would render every pickup the same.
func dateLayout(v any) error {
	layout := v.(string)
	a := time.Date(2006, time.January, 2, 0, 0, 0, 0, time.UTC).Format(layout)
	b := time.Date(2006, time.January, 3, 0, 0, 0, 0, time.UTC).Format(layout)
	if a == b {
		return fmt.Errorf("layout %q does not contain the day", layout)
	}
	return nil
}

func logLevel(v any) error {
	_, err := logrus.ParseLevel(v.(string))
	return err
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
