package config

import (
	"errors"
	"net/url"
	"strings"

	flags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

const DefaultBaseURL = "http://127.0.0.1:5001"

const (
	DetectLength = "length"
	DetectDigest = "digest"
)

type Options struct {
	BaseURL         string `long:"base-url" env:"ORGANIZER_BASE_URL" description:"Organizer backend base URL (default http://127.0.0.1:5001)"`
	Path            string `long:"path" env:"ORGANIZER_PATH" description:"Target directory preset in the path field"`
	Method          string `long:"method" env:"ORGANIZER_METHOD" choice:"type" choice:"date" description:"Organize method preset"`
	Plain           bool   `long:"plain" env:"ORGANIZER_PLAIN" description:"Run without the full-screen UI"`
	Action          string `long:"action" choice:"organize" choice:"undo" choice:"duplicates" choice:"empty_folders" description:"Plain mode: dispatch one action and exit"`
	Query           string `long:"query" description:"Plain mode: run one search and exit"`
	Tuning          string `long:"tuning" env:"ORGANIZER_TUNING" description:"YAML file overriding poll, toast and timeout settings"`
	LogChangeDetect string `long:"log-change-detect" env:"ORGANIZER_LOG_CHANGE_DETECT" choice:"length" choice:"digest" default:"length" description:"How the log poller decides to re-render"`
	SearchCap       int    `long:"search-cap" env:"ORGANIZER_SEARCH_CAP" description:"Result count at which search status shows a '+' suffix"`
	WaitReady       bool   `long:"wait-ready" env:"ORGANIZER_WAIT_READY" description:"Wait for the backend to answer before starting"`
	Debug           bool   `long:"debug" env:"ORGANIZER_DEBUG" description:"Enable verbose debug output"`
}

// APIEndpoints holds absolute URLs for every backend route the client uses.
type APIEndpoints struct {
	BaseURL       string
	Organize      string
	Undo          string
	Duplicates    string
	EmptyFolders  string
	Search        string
	Logs          string
	SystemStorage string
	FolderStorage string
	Browse        string
}

func ParseOptions(args []string) (Options, error) {
	_ = godotenv.Load()
	opts := Options{}
	parser := flags.NewParser(&opts, flags.Default)
	if args == nil {
		if _, err := parser.Parse(); err != nil {
			return Options{}, err
		}
	} else if _, err := parser.ParseArgs(args); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func ValidateRequired(opts Options) error {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return errors.New("base URL is required")
	}
	if opts.SearchCap < 0 {
		return errors.New("search cap must not be negative")
	}
	if opts.Action != "" && opts.Query != "" {
		return errors.New("set either --action or --query, not both")
	}
	return nil
}

// WithDefaults fills values that neither the command line nor saved settings
// provided.
func WithDefaults(opts Options) Options {
	if strings.TrimSpace(opts.BaseURL) == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(opts.Method) == "" {
		opts.Method = "type"
	}
	if opts.LogChangeDetect == "" {
		opts.LogChangeDetect = DetectLength
	}
	return opts
}

func BuildEndpoints(rawBaseURL string) (APIEndpoints, error) {
	base, err := buildAPIBaseURL(rawBaseURL)
	if err != nil {
		return APIEndpoints{}, err
	}
	return APIEndpoints{
		BaseURL:       base,
		Organize:      base + "/organize",
		Undo:          base + "/undo",
		Duplicates:    base + "/clean/duplicates",
		EmptyFolders:  base + "/clean/empty_folders",
		Search:        base + "/search",
		Logs:          base + "/logs",
		SystemStorage: base + "/system_storage",
		FolderStorage: base + "/storage",
		Browse:        base + "/browse",
	}, nil
}

func buildAPIBaseURL(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", errors.New("expected absolute URL like http://127.0.0.1:5001")
	}
	if !strings.EqualFold(parsed.Scheme, "http") && !strings.EqualFold(parsed.Scheme, "https") {
		return "", errors.New("base URL scheme must be http or https")
	}

	// A pasted endpoint URL collapses to the API root.
	parsed.Path = "/api"
	parsed.RawPath = ""
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return strings.TrimRight(parsed.String(), "/"), nil
}
