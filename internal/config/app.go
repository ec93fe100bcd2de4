package config

import "os"

type App struct {
	Addr string
	Mode string
}

func NewApp() *App {
	addr, ok := os.LookupEnv("SWEEPD_ADDR")
	if !ok {
		addr = ":8080"
	}
	mode, ok := os.LookupEnv("SWEEPD_MODE")
	if !ok {
		mode = "production"
	}
	return &App{Addr: addr, Mode: mode}
}

func (c App) Development() bool {
	return c.Mode == "development"
}
