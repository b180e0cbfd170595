package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"gtamap/internal/basemap"
)

// FileName is looked up in the directory passed to Load.
const FileName = "gtamap.json"

// Config is the resolved start-up configuration.
type Config struct {
	LogLevel   string
	LogFile    string
	DatasetDir string
	DefaultMap string
	Maps       basemap.Catalog
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	cwd, _ := os.Getwd()
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", filepath.Join(os.TempDir(), "gtamap.log"))
	viper.SetDefault("datasetDir", cwd)
	viper.SetDefault("defaultMap", basemap.Satellite)
	viper.SetDefault("assetsDir", "assets")

	viper.SetDefault("maps.satellite.image", "")
	viper.SetDefault("maps.satellite.background", "#143d6b")
	viper.SetDefault("maps.atlas.image", "")
	viper.SetDefault("maps.atlas.background", "#0FA8D2")
}

// Load sets defaults and reads FileName from configDir when it exists.
// An empty configDir skips the file.
func Load(configDir string) error {
	SetDefaults()
	if configDir == "" {
		return nil
	}
	viper.SetConfigName(FileName)
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}
	return nil
}

// Current builds a Config from the loaded values and validates it.
func Current() (Config, error) {
	maps := basemap.DefaultCatalog(viper.GetString("assetsDir"))
	if img := viper.GetString("maps.satellite.image"); img != "" {
		maps.Satellite.Image = img
	}
	if img := viper.GetString("maps.atlas.image"); img != "" {
		maps.Atlas.Image = img
	}
	maps.Satellite.Background = viper.GetString("maps.satellite.background")
	maps.Atlas.Background = viper.GetString("maps.atlas.background")

	cfg := Config{
		LogLevel:   viper.GetString("logLevel"),
		LogFile:    viper.GetString("logFile"),
		DatasetDir: viper.GetString("datasetDir"),
		DefaultMap: viper.GetString("defaultMap"),
		Maps:       maps,
	}
	if err := maps.Validate(); err != nil {
		return Config{}, err
	}
	if _, err := maps.Lookup(cfg.DefaultMap); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
