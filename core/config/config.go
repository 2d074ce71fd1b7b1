package config

import (
	"reflect"
	"strings"

	"catalog-sync/core/database"
	"catalog-sync/core/logger"
	"catalog-sync/core/server"
	"catalog-sync/core/shopify"
	"catalog-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (handle lists, run reports).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the run journal database.
	Database database.Config `mapstructure:"database"`
	// Source is the authoritative store, read-only during a run.
	Source shopify.Config `mapstructure:"source"`
	// Target is the store being brought in line with Source.
	Target shopify.Config `mapstructure:"target"`
	// Catalog holds sync behaviour settings.
	Catalog CatalogConfig `mapstructure:"catalog"`
}

// CatalogConfig tunes the catalog sync passes.
type CatalogConfig struct {
	// HandlesFile is a local file listing the product handles to sync.
	HandlesFile string `mapstructure:"handles_file" default:"handles.txt"`
	// HandlesObject, when set, reads the handle list from the storage bucket instead.
	HandlesObject string `mapstructure:"handles_object" default:""`
	// OwnerTypes lists the attribute definition owner types, comma separated.
	OwnerTypes string `mapstructure:"owner_types" default:"PAGE,PRODUCT,PRODUCTVARIANT"`
	// CacheTTLSeconds is how long source point reads are cached. Zero disables it.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
	// Journal records runs and failures in the database.
	Journal bool `mapstructure:"journal" default:"false"`
}

// OwnerTypeList splits OwnerTypes, dropping blanks.
func (c CatalogConfig) OwnerTypeList() []string {
	var out []string
	for _, t := range strings.Split(c.OwnerTypes, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, strings.ToUpper(t))
		}
	}
	return out
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// SOURCE_STORE_NAME -> source.store_name
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every mapstructure key with its
// 'default' tag value so AutomaticEnv can resolve it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
