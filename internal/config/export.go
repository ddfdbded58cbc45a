package config

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ExportConfig controls how the invoice preview becomes a PDF.
type ExportConfig struct {
	// Margins are top, right, bottom, left in Unit.
	Margins      []float64 `mapstructure:"margins"`
	Scale        float64   `mapstructure:"scale"`
	ImageType    string    `mapstructure:"imageType"`
	ImageQuality float64   `mapstructure:"imageQuality"`
	PageFormat   string    `mapstructure:"pageFormat"`
	Orientation  string    `mapstructure:"orientation"`
	Unit         string    `mapstructure:"unit"`
	Images       []string  `mapstructure:"images"`
	CompanyName  string    `mapstructure:"companyName"`
}

func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Margins:      []float64{10, 10, 10, 10},
		Scale:        3,
		ImageType:    "jpeg",
		ImageQuality: 1.0,
		PageFormat:   "a4",
		Orientation:  "portrait",
		Unit:         "mm",
		CompanyName:  "Rank Store",
	}
}

type ExportConfigHolder struct {
	current atomic.Value // holds ExportConfig
}

// NewStaticExportConfigHolder returns a holder that never reloads.
func NewStaticExportConfigHolder(cfg ExportConfig) *ExportConfigHolder {
	holder := &ExportConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewExportConfigHolder(cfg Config, log *zap.Logger) (*ExportConfigHolder, error) {
	log = log.Named("config.export")
	v := viper.New()

	if cfg.ExportConfigPath != "" {
		v.SetConfigFile(cfg.ExportConfigPath)
	} else {
		v.SetConfigName("export")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/rankinvoice")
		v.AddConfigPath(".")
	}

	defaults := DefaultExportConfig()
	v.SetDefault("export.margins", defaults.Margins)
	v.SetDefault("export.scale", defaults.Scale)
	v.SetDefault("export.imageType", defaults.ImageType)
	v.SetDefault("export.imageQuality", defaults.ImageQuality)
	v.SetDefault("export.pageFormat", defaults.PageFormat)
	v.SetDefault("export.orientation", defaults.Orientation)
	v.SetDefault("export.unit", defaults.Unit)
	v.SetDefault("export.images", defaults.Images)
	v.SetDefault("export.companyName", defaults.CompanyName)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read export config: %w", err)
		}
		fileLoaded = false
		log.Info("export config file not found, using defaults")
	}

	exportCfg, err := decodeExportConfig(v)
	if err != nil {
		return nil, err
	}

	holder := NewStaticExportConfigHolder(exportCfg)
	if !fileLoaded || !cfg.ExportConfigWatch {
		return holder, nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeExportConfig(v)
		if err != nil {
			log.Warn("invalid export config ignored", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("export config reloaded", zap.String("file", e.Name))
	})
	v.WatchConfig()

	return holder, nil
}

func (h *ExportConfigHolder) Get() ExportConfig {
	return h.current.Load().(ExportConfig)
}

func decodeExportConfig(v *viper.Viper) (ExportConfig, error) {
	// Unmarshal over all settings so defaults fill keys the file omits.
	var root struct {
		Export ExportConfig `mapstructure:"export"`
	}
	if err := v.Unmarshal(&root); err != nil {
		return ExportConfig{}, fmt.Errorf("decode export config: %w", err)
	}
	cfg := root.Export
	cfg.ImageType = strings.ToLower(strings.TrimSpace(cfg.ImageType))
	cfg.PageFormat = strings.ToLower(strings.TrimSpace(cfg.PageFormat))
	cfg.Orientation = strings.ToLower(strings.TrimSpace(cfg.Orientation))
	cfg.Unit = strings.ToLower(strings.TrimSpace(cfg.Unit))
	if err := validateExportConfig(cfg); err != nil {
		return ExportConfig{}, err
	}
	return cfg, nil
}

func validateExportConfig(cfg ExportConfig) error {
	if len(cfg.Margins) != 4 {
		return errors.New("export.margins must have four values")
	}
	for _, m := range cfg.Margins {
		if m < 0 {
			return errors.New("export.margins cannot be negative")
		}
	}
	if cfg.Scale <= 0 {
		return errors.New("export.scale must be positive")
	}
	if cfg.ImageQuality <= 0 || cfg.ImageQuality > 1 {
		return errors.New("export.imageQuality must be in (0, 1]")
	}
	switch cfg.ImageType {
	case "jpeg", "png":
	default:
		return fmt.Errorf("export.imageType %q is not supported", cfg.ImageType)
	}
	switch cfg.PageFormat {
	case "a4", "letter":
	default:
		return fmt.Errorf("export.pageFormat %q is not supported", cfg.PageFormat)
	}
	switch cfg.Orientation {
	case "portrait", "landscape":
	default:
		return fmt.Errorf("export.orientation %q is not supported", cfg.Orientation)
	}
	if cfg.Unit != "mm" {
		return fmt.Errorf("export.unit %q is not supported", cfg.Unit)
	}
	return nil
}
