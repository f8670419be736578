package resource

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultPropertiesPath = "configs/application.yml"

var (
	props      = viper.New()
	envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)
)

// Init loads the properties file named by PROPERTIES_FILE_PATH, or configs/application.yml.
func Init() error {
	path, ok := os.LookupEnv("PROPERTIES_FILE_PATH")
	if !ok {
		path = defaultPropertiesPath
	}
	return Load(path)
}

// Load replaces the current properties with the content of the YAML file at path.
// Every string value of the form ${ENV} or ${ENV:default} is resolved against the environment.
func Load(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read properties %s: %w", path, err)
	}

	resolved := make(map[string]any)
	flatten("", v.AllSettings(), resolved)
	for key, value := range resolved {
		v.Set(key, value)
	}

	props = v
	return nil
}

// Set overrides a single property. Mostly useful in tests.
func Set(key string, value any) {
	props.Set(key, value)
}

func flatten(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariable(v)
		case map[string]any:
			flatten(fullKey, v, result)
		default:
			result[fullKey] = v
		}
	}
}

// resolveEnvVariable expands every ${ENV:default} occurrence in value. Values without a placeholder are returned as is.
func resolveEnvVariable(value string) string {
	if !strings.Contains(value, "${") {
		return value
	}
	return envPattern.ReplaceAllStringFunc(value, func(match string) string {
		parts := envPattern.FindStringSubmatch(match)
		if envValue, exists := os.LookupEnv(parts[1]); exists {
			return envValue
		}
		return parts[2]
	})
}

func Get(key string) any {
	return props.Get(key)
}

func GetString(key string) string {
	return props.GetString(key)
}

func GetStringOrDefault(key, defaultValue string) string {
	if value := props.GetString(key); value != "" {
		return value
	}
	return defaultValue
}

func GetBool(key string) bool {
	return props.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return props.GetDuration(key)
}

func GetInt(key string) int {
	return props.GetInt(key)
}

func GetInt32(key string) int32 {
	return props.GetInt32(key)
}

func GetInt64(key string) int64 {
	return props.GetInt64(key)
}

func GetStringSlice(key string) []string {
	return props.GetStringSlice(key)
}
