package config

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// ConsoleSettings is the subset of options remembered between sessions.
type ConsoleSettings struct {
	BaseURL  string `json:"base_url"`
	LastPath string `json:"last_path,omitempty"`
	Method   string `json:"method,omitempty"`
	Debug    bool   `json:"debug"`
}

func SettingsPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "organizer-console", "settings.json"), nil
}

func LoadSettings() (ConsoleSettings, error) {
	path, err := SettingsPath()
	if err != nil {
		return ConsoleSettings{}, err
	}
	return loadSettingsFile(path)
}

func loadSettingsFile(path string) (ConsoleSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ConsoleSettings{}, err
	}
	var settings ConsoleSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return ConsoleSettings{}, err
	}
	return settings, nil
}

func SaveSettings(settings ConsoleSettings) error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func MergeOptionsWithSettings(cli Options, saved ConsoleSettings) Options {
	if strings.TrimSpace(cli.BaseURL) == "" {
		cli.BaseURL = saved.BaseURL
	}
	if strings.TrimSpace(cli.Path) == "" {
		cli.Path = saved.LastPath
	}
	if strings.TrimSpace(cli.Method) == "" {
		cli.Method = saved.Method
	}
	if !cli.Debug {
		cli.Debug = saved.Debug
	}
	return cli
}

func SettingsFromOptions(opts Options) ConsoleSettings {
	return ConsoleSettings{
		BaseURL:  strings.TrimSpace(opts.BaseURL),
		LastPath: strings.TrimSpace(opts.Path),
		Method:   strings.TrimSpace(opts.Method),
		Debug:    opts.Debug,
	}
}

// WatchSettings reloads the settings file whenever it changes on disk and
// hands the result to onChange. It blocks until ctx is done. Editors usually
// replace the file, so the parent directory is watched instead of the file.
func WatchSettings(ctx context.Context, onChange func(ConsoleSettings), onError func(error)) error {
	if onChange == nil {
		panic("config.WatchSettings: onChange must not be nil")
	}
	path, err := SettingsPath()
	if err != nil {
		return err
	}
	return watchSettingsFile(ctx, path, onChange, onError)
}

func watchSettingsFile(ctx context.Context, path string, onChange func(ConsoleSettings), onError func(error)) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	report := func(err error) {
		if onError != nil && err != nil {
			onError(err)
		}
	}
	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			settings, err := loadSettingsFile(path)
			if err != nil {
				// Partial writes fail to parse; the next write event retries.
				if !errors.Is(err, os.ErrNotExist) {
					report(err)
				}
				continue
			}
			onChange(settings)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			report(err)
		}
	}
}
