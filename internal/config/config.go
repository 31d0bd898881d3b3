package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int     `envconfig:"PORT" default:"8080"`
	AllowedOrigins string  `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	CanvasWidth    int     `envconfig:"CANVAS_WIDTH" default:"1280"`
	CanvasHeight   int     `envconfig:"CANVAS_HEIGHT" default:"720"`
	HistoryDepth   int     `envconfig:"HISTORY_DEPTH" default:"50"`
	GridSpacing    float64 `envconfig:"GRID_SPACING" default:"20"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
