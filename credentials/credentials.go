/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

// Package credentials locates the credentials used to talk to the Bandwidth
// telephony (Catapult) API and the Bandwidth Dashboard API.
//
// Both families are resolved with the same precedence chain: explicit
// arguments, environment variables, the config file named by
// BANDWIDTH_CONFIG_FILE, the .bndsdkrc file in the working directory and
// finally values registered at runtime through a Fallback. The first source
// that is present wins; a source that is present but incomplete is an error,
// never a reason to try the next one.
package credentials

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-hclog"
)

// Environment variables consulted during resolution.
const (
	EnvUserID     = "BANDWIDTH_USER_ID"
	EnvAPIToken   = "BANDWIDTH_API_TOKEN"
	EnvAPISecret  = "BANDWIDTH_API_SECRET"
	EnvAccountID  = "BANDWIDTH_ACCOUNT_ID"
	EnvUsername   = "BANDWIDTH_USERNAME"
	EnvPassword   = "BANDWIDTH_PASSWORD"
	EnvConfigFile = "BANDWIDTH_CONFIG_FILE"
)

const (
	// DefaultConfigFile is looked up relative to the working directory.
	DefaultConfigFile = ".bndsdkrc"

	// DefaultDashboardEndpoint is the Bandwidth Dashboard API base URL.
	DefaultDashboardEndpoint = "https://dashboard.bandwidth.com:443/v1.0/"

	// ConfigSection is the INI section holding credentials in a config file.
	ConfigSection = "catapult"
)

// Source identifies where a set of credentials came from.
type Source string

const (
	SourceArguments         Source = "arguments"
	SourceEnvironment       Source = "environment"
	SourceConfigFile        Source = "config-file"
	SourceDefaultConfigFile Source = "default-config-file"
	SourceFallback          Source = "fallback"
)

// Telephony holds credentials for the Catapult voice/messaging API.
type Telephony struct {
	UserID string
	Token  string
	Secret string

	// Source is set by the Resolver; it is ignored on input.
	Source Source
}

// String renders the credentials with the token and secret masked.
func (t Telephony) String() string {
	return fmt.Sprintf("Telephony{UserID: %s, Token: %s, Secret: %s, Source: %s}",
		t.UserID, Mask(t.Token), Mask(t.Secret), t.Source)
}

// Dashboard holds credentials for the Bandwidth Dashboard API.
type Dashboard struct {
	AccountID string
	Username  string
	Password  string

	// Endpoint overrides the dashboard base URL when set on input. On output
	// it always holds the endpoint to use.
	Endpoint string

	// Source is set by the Resolver; it is ignored on input.
	Source Source
}

// String renders the credentials with the password masked.
func (d Dashboard) String() string {
	return fmt.Sprintf("Dashboard{AccountID: %s, Username: %s, Password: %s, Endpoint: %s, Source: %s}",
		d.AccountID, d.Username, Mask(d.Password), d.Endpoint, d.Source)
}

// Mask hides all but the first two characters of a secret.
func Mask(secret string) string {
	if len(secret) <= 2 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:2] + strings.Repeat("*", len(secret)-2)
}

// Config holds the configuration for a Resolver
type Config struct {
	// Environment replaces the process environment when non-nil.
	Environment map[string]string

	// DefaultConfigFile is the config file tried when BANDWIDTH_CONFIG_FILE
	// is not set. Empty disables the lookup.
	DefaultConfigFile string

	// Fallback holds runtime-registered credentials. If nil, the
	// process-wide fallback is used.
	Fallback *Fallback

	// Logger receives debug output about which source matched. Secrets are
	// never logged.
	Logger hclog.Logger
}

// DefaultConfig returns the default configuration for a Resolver
func DefaultConfig() *Config {
	return &Config{
		DefaultConfigFile: DefaultConfigFile,
		Fallback:          processFallback,
		Logger:            hclog.NewNullLogger(),
	}
}

// Resolver resolves credentials from arguments and the ambient environment.
type Resolver struct {
	config *Config
}

// New creates a new Resolver
func New(config *Config) *Resolver {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Fallback == nil {
		config.Fallback = processFallback
	}
	if config.Logger == nil {
		config.Logger = hclog.NewNullLogger()
	}

	return &Resolver{config: config}
}

var defaultResolver = New(nil)

// Default returns the Resolver backed by the process environment, the
// working directory and the process-wide fallback.
func Default() *Resolver {
	return defaultResolver
}

// ResolveTelephony resolves telephony credentials with the default Resolver.
func ResolveTelephony(args Telephony) (Telephony, error) {
	return defaultResolver.Telephony(args)
}

// ResolveDashboard resolves dashboard credentials with the default Resolver.
func ResolveDashboard(args Dashboard) (Dashboard, error) {
	return defaultResolver.Dashboard(args)
}

// Telephony resolves Catapult credentials.
func (r *Resolver) Telephony(args Telephony) (Telephony, error) {
	fallback := func() (triple, bool, error) {
		t := r.config.Fallback.Telephony()
		if t.UserID == "" {
			return triple{}, false, nil
		}
		// Telephony fallback values are used as registered, even if incomplete.
		return triple{t.UserID, t.Token, t.Secret}, true, nil
	}

	values, source, err := r.resolve(telephonyFamily, triple{args.UserID, args.Token, args.Secret}, fallback)
	if err != nil {
		return Telephony{}, err
	}

	return Telephony{UserID: values[0], Token: values[1], Secret: values[2], Source: source}, nil
}

// Dashboard resolves Bandwidth Dashboard credentials and endpoint. Credentials
// found in arguments, the environment or a config file are recorded in the
// Resolver's fallback for later use.
func (r *Resolver) Dashboard(args Dashboard) (Dashboard, error) {
	fb := r.config.Fallback
	fallback := func() (triple, bool, error) {
		d := fb.Dashboard()
		if d.AccountID == "" {
			return triple{}, false, nil
		}
		values := triple{d.AccountID, d.Username, d.Password}
		if !values.all() {
			return triple{}, true, &EnvironmentConfigError{newError(dashboardFamily, helpIncompleteDashboardFallback, nil)}
		}
		return values, true, nil
	}

	values, source, err := r.resolve(dashboardFamily, triple{args.AccountID, args.Username, args.Password}, fallback)
	if err != nil {
		return Dashboard{}, err
	}
	if source != SourceFallback {
		fb.SetDashboard(values[0], values[1], values[2])
	}

	endpoint := args.Endpoint
	if endpoint == "" {
		endpoint = fb.Endpoint()
	}
	if endpoint == "" {
		endpoint = DefaultDashboardEndpoint
	}

	return Dashboard{
		AccountID: values[0],
		Username:  values[1],
		Password:  values[2],
		Endpoint:  endpoint,
		Source:    source,
	}, nil
}

// triple is a positional credential set: principal, secondary, tertiary.
type triple [3]string

func (t triple) any() bool {
	return t[0] != "" || t[1] != "" || t[2] != ""
}

func (t triple) all() bool {
	return t[0] != "" && t[1] != "" && t[2] != ""
}

// family describes one instantiation of the resolution algorithm.
type family struct {
	name        string
	usage       string
	primaryEnv  string
	fileKeys    triple
	helpParams  string
	helpEnv     string
	fromEnviron func(opts env.Options) (triple, error)
}

type telephonyEnv struct {
	UserID string `env:"BANDWIDTH_USER_ID"`
	Token  string `env:"BANDWIDTH_API_TOKEN"`
	Secret string `env:"BANDWIDTH_API_SECRET"`
}

type dashboardEnv struct {
	AccountID string `env:"BANDWIDTH_ACCOUNT_ID"`
	Username  string `env:"BANDWIDTH_USERNAME"`
	Password  string `env:"BANDWIDTH_PASSWORD"`
}

var telephonyFamily = &family{
	name:       "telephony",
	usage:      TelephonyUsage,
	primaryEnv: EnvUserID,
	fileKeys:   triple{"user_id", "token", "secret"},
	helpParams: helpMissingTelephonyParams,
	helpEnv:    helpMissingTelephonyEnv,
	fromEnviron: func(opts env.Options) (triple, error) {
		v, err := env.ParseAsWithOptions[telephonyEnv](opts)
		if err != nil {
			return triple{}, err
		}
		return triple{v.UserID, v.Token, v.Secret}, nil
	},
}

var dashboardFamily = &family{
	name:       "dashboard",
	usage:      DashboardUsage,
	primaryEnv: EnvAccountID,
	fileKeys:   triple{"account_id", "username", "password"},
	helpParams: helpMissingDashboardParams,
	helpEnv:    helpMissingDashboardEnv,
	fromEnviron: func(opts env.Options) (triple, error) {
		v, err := env.ParseAsWithOptions[dashboardEnv](opts)
		if err != nil {
			return triple{}, err
		}
		return triple{v.AccountID, v.Username, v.Password}, nil
	},
}

func newError(f *family, message string, err error) *ResolutionError {
	return &ResolutionError{Message: message, Usage: f.usage, Err: err}
}

func (r *Resolver) environ() map[string]string {
	if r.config.Environment != nil {
		return r.config.Environment
	}
	return env.ToMap(os.Environ())
}

// resolve walks the precedence chain for f. The first present source wins.
func (r *Resolver) resolve(f *family, args triple, fallback func() (triple, bool, error)) (triple, Source, error) {
	log := r.config.Logger.With("family", f.name)

	if args.any() {
		if !args.all() {
			return triple{}, "", &ValidationError{newError(f, f.helpParams, nil)}
		}
		log.Debug("resolved credentials", "source", SourceArguments, "principal", args[0])
		return args, SourceArguments, nil
	}

	environ := r.environ()

	if _, ok := environ[f.primaryEnv]; ok {
		values, err := f.fromEnviron(env.Options{Environment: environ})
		if err != nil {
			return triple{}, "", &EnvironmentConfigError{newError(f, f.helpEnv, err)}
		}
		if !values.all() {
			return triple{}, "", &EnvironmentConfigError{newError(f, f.helpEnv, nil)}
		}
		log.Debug("resolved credentials", "source", SourceEnvironment, "principal", values[0])
		return values, SourceEnvironment, nil
	}

	if path, ok := environ[EnvConfigFile]; ok {
		if err := statConfigFile(path); err != nil {
			return triple{}, "", &FileNotFoundError{
				ResolutionError: newError(f, fmt.Sprintf(helpConfigFileMissing, path), err),
				Path:            path,
			}
		}
		values, err := loadConfigFile(f, path)
		if err != nil {
			return triple{}, "", err
		}
		log.Debug("resolved credentials", "source", SourceConfigFile, "path", path, "principal", values[0])
		return values, SourceConfigFile, nil
	}

	if path := r.config.DefaultConfigFile; path != "" && statConfigFile(path) == nil {
		values, err := loadConfigFile(f, path)
		if err != nil {
			return triple{}, "", err
		}
		log.Debug("resolved credentials", "source", SourceDefaultConfigFile, "path", path, "principal", values[0])
		return values, SourceDefaultConfigFile, nil
	}

	values, ok, err := fallback()
	if ok {
		if err != nil {
			return triple{}, "", err
		}
		log.Debug("resolved credentials", "source", SourceFallback, "principal", values[0])
		return values, SourceFallback, nil
	}

	return triple{}, "", &NoConfigurationError{newError(f, helpNoConfiguration, nil)}
}
