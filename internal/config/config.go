package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"
	"github.com/pkg/errors"

	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

type Config struct {
	AppName                          string
	Env                              string
	AppPort                          string
	AppUrl                           string
	DBUrl                            string
	LogLevel                         string
	LDSDKKey                         string
	LDFlag_ExposeInternalErrorDetail bool
	LDFlag_CORSHighSecurity          bool
	LDFlag_SeedDbWithTestData        bool
	LDFlag_OverdueLoanDays           int
}

const (
	EnvDev              = "dev"
	DefaultAppName      = "library-service"
	DefaultAppPort      = "8080"
	LDConnectionTimeout = 5 * time.Second
)

// Overridden with -ldflags "-X .../internal/config.AppName=..." at build time.
var (
	AppName             = DefaultAppName
	LDServerContextKey  = "library-service"
	LDServerContextKind = "service"
)

// FlagSource evaluates feature flags. *ld.LDClient satisfies it.
type FlagSource interface {
	BoolVariation(key string, context ldcontext.Context, defaultVal bool) (bool, error)
	IntVariation(key string, context ldcontext.Context, defaultVal int) (int, error)
	Close() error
}

// LoadConfig reads the environment and feature flags, exiting on any error.
func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	cfg, err := loadFromEnv(os.Getenv)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Invalid configuration")
	}

	if cfg.LDSDKKey == "" {
		utils.Logger.Warn("LD_SDK_KEY not set; feature flags come from the environment")
		return cfg
	}

	ldClient, err := ld.MakeClient(cfg.LDSDKKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	defer ldClient.Close()

	if err := cfg.applyFlags(ldClient); err != nil {
		utils.Logger.WithError(err).Fatal("Error retrieving feature flags")
	}
	return cfg
}

func loadFromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		AppName:  AppName,
		Env:      getenv("ENV"),
		AppPort:  getenv("APP_PORT"),
		AppUrl:   getenv("APP_URL_FROM_ANYWHERE"),
		DBUrl:    getenv("DB_URL"),
		LogLevel: getenv("LOG_LEVEL"),
		LDSDKKey: getenv("LD_SDK_KEY"),
	}

	if cfg.Env == "" {
		return nil, errors.New("ENV env var is missing")
	}
	if cfg.AppPort == "" {
		cfg.AppPort = DefaultAppPort
	}
	if cfg.AppUrl == "" {
		cfg.AppUrl = utils.CORSLowSecurityAllowedOriginLocalhost
	}
	if cfg.DBUrl == "" {
		return nil, errors.New("DB_URL env var is missing")
	}
	if _, err := strconv.Atoi(cfg.AppPort); err != nil {
		return nil, errors.Errorf("APP_PORT %q is not a port number", cfg.AppPort)
	}

	// Flag fallbacks for running without LaunchDarkly. Only an explicit
	// ENV=dev turns on internal error detail.
	var err error
	if cfg.LDFlag_ExposeInternalErrorDetail, err = boolEnv(getenv, "EXPOSE_INTERNAL_ERROR_DETAIL", cfg.Env == EnvDev); err != nil {
		return nil, err
	}
	if cfg.LDFlag_CORSHighSecurity, err = boolEnv(getenv, "CORS_HIGH_SECURITY", cfg.Env != EnvDev); err != nil {
		return nil, err
	}
	if cfg.LDFlag_SeedDbWithTestData, err = boolEnv(getenv, "SEED_DB_WITH_TEST_DATA", false); err != nil {
		return nil, err
	}
	cfg.LDFlag_OverdueLoanDays = utils.DefaultOverdueLoanDays
	if raw := getenv("OVERDUE_LOAN_DAYS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, errors.Errorf("OVERDUE_LOAN_DAYS %q must be a positive integer", raw)
		}
		cfg.LDFlag_OverdueLoanDays = n
	}
	return cfg, nil
}

// applyFlags overrides the env fallbacks with LaunchDarkly values. The env
// values are used as each flag's default.
func (c *Config) applyFlags(flags FlagSource) error {
	ctx := ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)

	var err error
	if c.LDFlag_ExposeInternalErrorDetail, err = flags.BoolVariation("expose_internal_error_detail", ctx, c.LDFlag_ExposeInternalErrorDetail); err != nil {
		return errors.Wrap(err, "expose_internal_error_detail")
	}
	utils.Logger.Debugf("expose_internal_error_detail flag: %t", c.LDFlag_ExposeInternalErrorDetail)

	if c.LDFlag_CORSHighSecurity, err = flags.BoolVariation("cors_high_security", ctx, c.LDFlag_CORSHighSecurity); err != nil {
		return errors.Wrap(err, "cors_high_security")
	}
	utils.Logger.Debugf("cors_high_security flag: %t", c.LDFlag_CORSHighSecurity)

	if c.LDFlag_SeedDbWithTestData, err = flags.BoolVariation("seed_db_with_test_data", ctx, c.LDFlag_SeedDbWithTestData); err != nil {
		return errors.Wrap(err, "seed_db_with_test_data")
	}
	utils.Logger.Debugf("seed_db_with_test_data flag: %t", c.LDFlag_SeedDbWithTestData)

	days, err := flags.IntVariation("overdue_loan_days", ctx, c.LDFlag_OverdueLoanDays)
	if err != nil {
		return errors.Wrap(err, "overdue_loan_days")
	}
	if days < 1 {
		return errors.Errorf("overdue_loan_days flag must be positive, got %d", days)
	}
	c.LDFlag_OverdueLoanDays = days
	utils.Logger.Debugf("overdue_loan_days flag: %d", days)
	return nil
}

func boolEnv(getenv func(string) string, key string, def bool) (bool, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s %q is not a boolean: %w", key, raw, err)
	}
	return v, nil
}

// IsDev reports whether the service runs in the local development environment.
func (c *Config) IsDev() bool { return c.Env == EnvDev }

func (c *Config) Close() {}
