package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tevo-storefront/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, config.StorageFile, cfg.Storage.Driver)
	assert.Equal(t, 4*time.Second, cfg.UI.BannerDelay)
	assert.Equal(t, "127.0.0.1:5173", cfg.HTTP.Addr())
}

func TestFromViper_Sobrescrituras(t *testing.T) {
	v := viper.New()
	v.Set("API_BASE_URL", "https://tevo.example.com/api/")
	v.Set("STORAGE_DRIVER", "REDIS")
	v.Set("BANNER_SECONDS", "2")
	v.Set("HTTP_PORT", 9000)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "https://tevo.example.com/api", cfg.API.BaseURL, "se elimina la barra final")
	assert.Equal(t, config.StorageRedis, cfg.Storage.Driver)
	assert.Equal(t, 2*time.Second, cfg.UI.BannerDelay)
	assert.Equal(t, 9000, cfg.HTTP.Port)
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "indexeddb")

	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "tevo", Password: "p@ss word", DBName: "store", SSLMode: "disable"}
	assert.Equal(t, "postgres://tevo:p%40ss%20word@db:5432/store?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
