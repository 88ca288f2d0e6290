package pkgconfig

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Viper struct {
	v *viper.Viper
}

// NewViper reads the yaml file at path. Values can be overridden through the
// environment (app.server.address.http -> APP_SERVER_ADDRESS_HTTP), and any
// .env / .env.local file in the working directory is loaded first.
func NewViper(path string) (*Viper, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return &Viper{v: v}, nil
}

// NewFromMap builds a config from in-memory values, used by tests and tools.
func NewFromMap(values map[string]any) *Viper {
	v := viper.New()
	for key, value := range values {
		v.Set(key, value)
	}
	return &Viper{v: v}
}

func (c *Viper) GetString(key string) string { return c.v.GetString(key) }
func (c *Viper) GetInt(key string) int { return c.v.GetInt(key) }
func (c *Viper) GetBool(key string) bool { return c.v.GetBool(key) }
func (c *Viper) GetFloat64(key string) float64 { return c.v.GetFloat64(key) }
func (c *Viper) GetDuration(key string) time.Duration { return c.v.GetDuration(key) }
func (c *Viper) GetStringSlice(key string) []string { return c.v.GetStringSlice(key) }
func (c *Viper) Close() error { return nil }
