package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/dnldd/tickplot/dataset"
	"github.com/joho/godotenv"
)

const (
	// defaultOutput is the interactive chart output filepath.
	defaultOutput = "chart.html"
	// defaultTitle is the chart title.
	defaultTitle = "Stock Closing Prices"
)

// Config is the configuration struct for the service.
type Config struct {
	// Symbols represents the charted stock symbols.
	Symbols []string
	// DataDir is the directory holding local symbol tables.
	DataDir string
	// DataBaseURL is the sample dataset endpoint.
	DataBaseURL string
	// CacheDir is the directory fetched tables are cached in.
	CacheDir string
	// Output is the interactive chart output filepath.
	Output string
	// Snapshot is the optional static png output filepath.
	Snapshot string
	// Open is the open chart in browser flag.
	Open bool
	// Title is the chart title.
	Title string
	// Theme is the chart theme.
	Theme string
	// ClickPolicy is the legend click policy.
	ClickPolicy string
	// LegendLocation is the legend placement corner.
	LegendLocation string
	// HoverMode is the hover probe mode.
	HoverMode string
	// Tools is the comma separated interaction tool set.
	Tools string
	// SMAWindow is the moving average overlay window.
	SMAWindow int
	// VWAP is the volume weighted average price overlay flag.
	VWAP bool

	registeredFlags map[string]bool
}

// Validate asserts the config sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if len(cfg.Symbols) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no symbols provided for plot service"))
	}
	if cfg.SMAWindow < 0 {
		errs = errors.Join(errs, fmt.Errorf("sma window cannot be negative"))
	}

	return errs
}

// registerFlag registers command line arguments of any type and tracks them to avoid reregistration.
func (cfg *Config) registerFlag(name string, value interface{}, usage string) error {
	if cfg.registeredFlags == nil {
		cfg.registeredFlags = make(map[string]bool)
	}

	if cfg.registeredFlags[name] {
		return nil
	}

	cfg.registeredFlags[name] = true

	defValue := os.Getenv(name)
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("%s: value must be a non-nil pointer", name)
	}

	switch val.Elem().Kind() {
	case reflect.String:
		flag.StringVar(value.(*string), name, defValue, usage)
	case reflect.Bool:
		var def bool
		if defValue != "" {
			def, _ = strconv.ParseBool(defValue)
		}
		flag.BoolVar(value.(*bool), name, def, usage)
	case reflect.Int:
		var def int
		if defValue != "" {
			def, _ = strconv.Atoi(defValue)
		}
		flag.IntVar(value.(*int), name, def, usage)
	case reflect.Slice:
		// Only handle []string
		if val.Elem().Type().Elem().Kind() == reflect.String {
			var def []string
			if defValue != "" {
				def = strings.Split(defValue, ",")
			}
			flag.Func(name, usage, func(s string) error {
				*value.(*[]string) = strings.Split(s, ",")
				return nil
			})
			// Set default if not provided via flag
			if len(def) > 0 {
				*value.(*[]string) = def
			}
		} else {
			return fmt.Errorf("%s: unsupported slice type", name)
		}
	default:
		return fmt.Errorf("%s: unsupported type", name)
	}

	return nil
}

// loadConfig loads the configuration from environment variables and command line flags.
func loadConfig(cfg *Config, path string) error {
	if path == "" {
		path = ".env"
	}

	// Check if the expected .env file exists before loading it.
	_, err := os.Stat(path)
	if err == nil {
		err := godotenv.Load(path)
		if err != nil {
			return fmt.Errorf("loading .env file: %w", err)
		}
	}

	// Register command line arguments using loaded environment variables as defaults.
	err = cfg.registerFlag("symbols", &cfg.Symbols, "the charted stock symbols")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("datadir", &cfg.DataDir, "the local symbol table directory")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("databaseurl", &cfg.DataBaseURL, "the sample dataset endpoint")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("cachedir", &cfg.CacheDir, "the fetched table cache directory")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("output", &cfg.Output, "the interactive chart output filepath")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("snapshot", &cfg.Snapshot, "the static png output filepath")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("open", &cfg.Open, "open the rendered chart in a browser")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("title", &cfg.Title, "the chart title")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("theme", &cfg.Theme, "the chart theme")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("clickpolicy", &cfg.ClickPolicy, "the legend click policy")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("legendlocation", &cfg.LegendLocation, "the legend placement corner")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("hovermode", &cfg.HoverMode, "the hover probe mode")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("tools", &cfg.Tools, "the comma separated interaction tool set")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("smawindow", &cfg.SMAWindow, "the moving average overlay window")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("vwap", &cfg.VWAP, "overlay the volume weighted average price")
	if err != nil {
		return err
	}

	// Parse command-line flags.
	flag.Parse()

	// Fill output defaults and fall back to the sample dataset endpoint
	// when no data source is configured.
	if cfg.Output == "" {
		cfg.Output = defaultOutput
	}
	if cfg.Title == "" {
		cfg.Title = defaultTitle
	}
	if cfg.DataDir == "" && cfg.DataBaseURL == "" {
		cfg.DataBaseURL = dataset.DefaultBaseURL
	}

	return cfg.Validate()
}
