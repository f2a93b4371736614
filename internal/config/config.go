package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Addr     string   `koanf:"addr"`
	Database Database `koanf:"db"`
	Feeds    []Feed   `koanf:"feeds"`
	Google   Google   `koanf:"google"`
	Search   Search   `koanf:"search"`
	Refresh  Refresh  `koanf:"refresh"`
}

// Feed is a single ICS subscription the event catalog pulls from.
type Feed struct {
	Id       string `koanf:"id"`
	Url      string `koanf:"url"`
	Category string `koanf:"category"`
}

type Google struct {
	Enabled      bool   `koanf:"enabled"`
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
	TokenFile    string `koanf:"tokenfile"`
	CalendarId   string `koanf:"calendarid"`
	Category     string `koanf:"category"`
}

type Search struct {
	// ScorerUrl is the semantic ranking endpoint. Empty disables semantic mode.
	ScorerUrl string `koanf:"scorerurl"`
}

type Refresh struct {
	// Cron is a robfig/cron expression for the periodic feed refresh.
	Cron string `koanf:"cron"`
	// WindowDays bounds how far ahead recurring feed events are expanded.
	WindowDays int `koanf:"windowdays"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Addr: ":8282",
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "eventdeck",
			Pass:   "",
			Name:   "eventdeck",
			Schema: "eventdeck",
		},
		Google: Google{
			CalendarId: "primary",
			Category:   "Social",
		},
		Refresh: Refresh{
			Cron:       "@every 30m",
			WindowDays: 90,
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "EVENTDECK_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "EVENTDECK_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
