// Package cmd implements the versionbadge command line.
package cmd

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/versionbadge/client"
	"github.com/git-pkgs/versionbadge/internal/config"
	"github.com/git-pkgs/versionbadge/internal/core"
	"github.com/git-pkgs/versionbadge/internal/log"

	_ "github.com/git-pkgs/versionbadge/all"
)

const envPrefix = "VERSIONBADGE_"

type runtimeOptions struct {
	ConfigPath           string
	Debug                bool
	JSON                 bool
	LogJSON              bool
	UserAgent            string
	Timeout              time.Duration
	MaxRetries           int
	GithubTokenEnv       string
	MaxLicenseNameLength int
	Concurrency          int
	BaseURLs             map[string]string
	LogFile              string
}

func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	flags := &runtimeOptions{}
	showVersion := false

	cmd := &cobra.Command{
		Use:           "versionbadge",
		Short:         "Resolve the version a badge should show",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprint(cmd.OutOrStdout(), formatVersion(buildVersion, buildDate))
				return nil
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "f", "", "Path to YAML config file")
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&flags.JSON, "json", false, "Print results as JSON")
	cmd.PersistentFlags().BoolVar(&flags.LogJSON, "log-json", false, "Write stderr logs as JSON")
	cmd.PersistentFlags().StringVar(&flags.UserAgent, "user-agent", "", "User-Agent sent to upstream APIs")
	cmd.PersistentFlags().DurationVar(&flags.Timeout, "timeout", 0, "HTTP timeout per request")
	cmd.Flags().BoolVar(&showVersion, "version", false, "Print CLI version")

	cmd.AddCommand(newVersionCmd(buildVersion, buildDate))
	cmd.AddCommand(newResolveCmd(flags))
	cmd.AddCommand(newTagCmd(flags))
	cmd.AddCommand(newWingetCmd(flags))
	cmd.AddCommand(newPypiCmd(flags))
	cmd.AddCommand(newGemCmd(flags))
	cmd.AddCommand(newSortCmd(flags))
	cmd.AddCommand(newURLsCmd(flags))

	return cmd
}

// mergedOptions layers defaults, the config file, VERSIONBADGE_* variables
// and explicitly set flags, in that order.
func mergedOptions(cmd *cobra.Command, flags *runtimeOptions) (runtimeOptions, error) {
	merged := runtimeOptions{
		UserAgent:      "versionbadge",
		Timeout:        30 * time.Second,
		MaxRetries:     5,
		GithubTokenEnv: "GITHUB_TOKEN",
		Concurrency:    15,
		BaseURLs:       map[string]string{},
	}

	if flags.ConfigPath != "" {
		fileCfg, err := config.Load(flags.ConfigPath)
		if err != nil {
			return runtimeOptions{}, err
		}

		if fileCfg.UserAgent != "" {
			merged.UserAgent = fileCfg.UserAgent
		}
		if fileCfg.Timeout > 0 {
			merged.Timeout = fileCfg.Timeout
		}
		if fileCfg.MaxRetries != nil {
			merged.MaxRetries = *fileCfg.MaxRetries
		}
		if fileCfg.GithubTokenEnv != "" {
			merged.GithubTokenEnv = fileCfg.GithubTokenEnv
		}
		if fileCfg.MaxLicenseNameLength > 0 {
			merged.MaxLicenseNameLength = fileCfg.MaxLicenseNameLength
		}
		if fileCfg.Concurrency > 0 {
			merged.Concurrency = fileCfg.Concurrency
		}
		if fileCfg.Debug != nil {
			merged.Debug = *fileCfg.Debug
		}
		if fileCfg.LogFile != "" {
			merged.LogFile = fileCfg.LogFile
		}
		for eco, u := range fileCfg.BaseURLs {
			merged.BaseURLs[eco] = u
		}
	}

	if err := applyEnvOverrides(&merged); err != nil {
		return runtimeOptions{}, err
	}

	if cmd.Flags().Changed("debug") {
		merged.Debug = flags.Debug
	}
	if cmd.Flags().Changed("json") {
		merged.JSON = flags.JSON
	}
	if cmd.Flags().Changed("log-json") {
		merged.LogJSON = flags.LogJSON
	}
	if cmd.Flags().Changed("user-agent") {
		merged.UserAgent = flags.UserAgent
	}
	if cmd.Flags().Changed("timeout") {
		merged.Timeout = flags.Timeout
	}

	merged.UserAgent = strings.TrimSpace(merged.UserAgent)
	if merged.UserAgent == "" {
		merged.UserAgent = "versionbadge"
	}

	return merged, nil
}

func applyEnvOverrides(opts *runtimeOptions) error {
	if value, ok := getenvTrim(envPrefix + "USER_AGENT"); ok {
		opts.UserAgent = value
	}
	if value, ok := getenvTrim(envPrefix + "GITHUB_TOKEN_ENV"); ok {
		opts.GithubTokenEnv = value
	}
	if value, ok := getenvTrim(envPrefix + "LOG_FILE"); ok {
		opts.LogFile = value
	}
	if value, ok := getenvTrim(envPrefix + "TIMEOUT"); ok {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("parse %sTIMEOUT as duration: %w", envPrefix, err)
		}
		opts.Timeout = d
	}
	for name, dst := range map[string]*int{
		"MAX_RETRIES":             &opts.MaxRetries,
		"MAX_LICENSE_NAME_LENGTH": &opts.MaxLicenseNameLength,
		"CONCURRENCY":             &opts.Concurrency,
	} {
		if value, ok := getenvTrim(envPrefix + name); ok {
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return fmt.Errorf("parse %s%s as non-negative integer: %q", envPrefix, name, value)
			}
			*dst = n
		}
	}
	for name, dst := range map[string]*bool{
		"DEBUG":    &opts.Debug,
		"LOG_JSON": &opts.LogJSON,
	} {
		if value, ok := getenvTrim(envPrefix + name); ok {
			parsed, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("parse %s%s as bool: %w", envPrefix, name, err)
			}
			*dst = parsed
		}
	}
	return nil
}

func getenvTrim(name string) (string, bool) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}

// setup merges options, initialises logging and builds the shared client.
func setup(cmd *cobra.Command, flags *runtimeOptions) (runtimeOptions, *client.Client, error) {
	opts, err := mergedOptions(cmd, flags)
	if err != nil {
		return runtimeOptions{}, nil, err
	}

	if err := log.Init(log.Options{
		Verbose:    opts.Debug,
		JSONFormat: opts.LogJSON,
		File:       opts.LogFile,
		Stderr:     cmd.ErrOrStderr(),
	}); err != nil {
		return runtimeOptions{}, nil, err
	}

	token := os.Getenv(opts.GithubTokenEnv)
	graphqlHosts := map[string]bool{}
	for _, eco := range []string{"github", "winget"} {
		base := opts.BaseURLs[eco]
		if base == "" {
			base = core.DefaultURL(eco)
		}
		if u, err := url.Parse(base); err == nil {
			graphqlHosts[u.Host] = true
		}
	}
	log.Debug("options merged", "config", flags.ConfigPath, "timeout", opts.Timeout, "retries", opts.MaxRetries, "github_token", token != "")

	c := client.NewClient(
		client.WithTimeout(opts.Timeout),
		client.WithMaxRetries(opts.MaxRetries),
		client.WithAuthFunc(func(rawURL string) (string, string) {
			if token == "" {
				return "", ""
			}
			u, err := url.Parse(rawURL)
			if err != nil || !graphqlHosts[u.Host] {
				return "", ""
			}
			return "Authorization", "bearer " + token
		}),
	).WithUserAgent(opts.UserAgent)

	return opts, c, nil
}

func (o runtimeOptions) query(q core.Query) core.Query {
	q.MaxLicenseNameLength = o.MaxLicenseNameLength
	return q
}

func (o runtimeOptions) source(ecosystem string, c *client.Client) (core.Source, error) {
	return core.New(ecosystem, o.BaseURLs[ecosystem], c)
}
