package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// memoryConfigPath is reported by the in-memory store used with --no-config.
const memoryConfigPath = ":memory:"

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in ~/.ronin/config.toml.

Environment variables (GITHUB_TOKEN, RONIN_DEFILLAMA_URL,
RONIN_SOLANA_RPC_URL, RONIN_COINGECKO_URL, RONIN_PATTERNS_FILE, PORT)
override the file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>...",
	Short: "Set a config key",
	Long: `Set a config key and save the config file.

github.queries takes one or more values, one query per argument.
Run "ronin settings keys" for the list of keys.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List config keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Store a GitHub access token",
	Long: `Prompts for a GitHub access token without echoing it and saves it as
github.token. An empty input clears the stored token.`,
	Args: cobra.NoArgs,
	RunE: runSettingsToken,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsTokenCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("Config: %s\n", settingsService.ConfigPath())
	cmd.Println()

	cmd.Println("[GitHub]")
	if settings.GitHub.Token != "" {
		cmd.Printf("  Token: %s\n", maskAPIKey(settings.GitHub.Token))
	} else {
		cmd.Println("  Token: (not set, unauthenticated search)")
	}
	cmd.Printf("  Max queries: %d\n", settings.GitHub.MaxQueries)
	cmd.Printf("  Per page: %d\n", settings.GitHub.PerPage)
	cmd.Printf("  Query interval: %s\n", settings.GitHub.QueryInterval)
	cmd.Println("  Queries:")
	for i, q := range settings.GitHub.Queries {
		marker := " "
		if i < settings.GitHub.MaxQueries {
			marker = "*"
		}
		cmd.Printf("    %s %s\n", marker, q)
	}
	cmd.Println()

	cmd.Println("[On-chain]")
	cmd.Printf("  DeFi Llama: %s\n", settings.OnChain.DefiLlamaURL)
	cmd.Printf("  Solana RPC: %s\n", settings.OnChain.RPCURL)
	cmd.Printf("  Min protocol TVL: %.0f\n", settings.OnChain.MinProtocolTVL)
	cmd.Println()

	cmd.Println("[Market]")
	cmd.Printf("  CoinGecko: %s\n", settings.Market.CoinGeckoURL)
	cmd.Printf("  Category: %s\n", settings.Market.Category)
	cmd.Printf("  Per page: %d\n", settings.Market.PerPage)
	cmd.Println()

	cmd.Println("[HTTP]")
	cmd.Printf("  Timeout: %s\n", settings.HTTP.Timeout)
	if settings.HTTP.CacheTTL > 0 {
		cmd.Printf("  Cache: %d entries for %s\n", settings.HTTP.CacheSize, settings.HTTP.CacheTTL)
	} else {
		cmd.Println("  Cache: disabled")
	}
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Printf("  Request timeout: %s\n", settings.Server.RequestTimeout)
	cmd.Println()

	cmd.Println("[History]")
	if settings.History.Enabled {
		cmd.Printf("  Recording: keeping the newest %d runs\n", settings.History.MaxRuns)
	} else {
		cmd.Println("  Recording: disabled (ronin settings set history.enabled true)")
	}
	cmd.Println()

	cmd.Println("[Catalogue]")
	if settings.PatternsFile != "" {
		cmd.Printf("  Pattern file: %s\n", settings.PatternsFile)
	} else {
		cmd.Println("  Pattern file: (built-in patterns)")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	if !slices.Contains(settingsService.Keys(), key) {
		return fmt.Errorf("unknown setting %q (see \"ronin settings keys\")", key)
	}

	value, err := parseSettingValue(key, args[1:])
	if err != nil {
		return err
	}
	return saveSetting(cmd, key, value)
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, k := range settingsService.Keys() {
		cmd.Println(k)
	}
	return nil
}

func runSettingsToken(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	cmd.Print("GitHub token: ")
	token := readPassword()
	cmd.Println()
	return saveSetting(cmd, "github.token", token)
}

func saveSetting(cmd *cobra.Command, key string, value any) error {
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	if _, err := settingsService.Get(); err != nil {
		return fmt.Errorf("saved %s, but settings are now invalid: %w", key, err)
	}

	if settingsService.ConfigPath() == memoryConfigPath {
		cmd.Printf("%s set for this run only (--no-config)\n", key)
		return nil
	}
	cmd.Printf("%s saved to %s\n", key, settingsService.ConfigPath())
	return nil
}

// parseSettingValue converts command arguments to the value type stored for key.
func parseSettingValue(key string, args []string) (any, error) {
	switch key {
	case "github.queries":
		queries := make([]string, 0, len(args))
		for _, a := range args {
			if a = strings.TrimSpace(a); a != "" {
				queries = append(queries, a)
			}
		}
		if len(queries) == 0 {
			return nil, errors.New("github.queries needs at least one query")
		}
		return queries, nil
	}

	if len(args) != 1 {
		return nil, fmt.Errorf("%s takes exactly one value", key)
	}
	raw := strings.TrimSpace(args[0])

	switch key {
	case "github.max_queries", "github.per_page", "market.per_page", "http.cache_size", "history.max_runs":
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer: %w", key, err)
		}
		return n, nil

	case "github.query_interval_ms", "http.timeout_seconds",
		"http.cache_ttl_seconds", "server.request_timeout_seconds":
		return parseDurationSetting(key, raw)

	case "history.enabled":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false: %w", key, err)
		}
		return b, nil

	case "onchain.min_protocol_tvl":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number: %w", key, err)
		}
		return f, nil
	}
	return raw, nil
}

// parseDurationSetting accepts a bare integer in the key's unit or a Go
// duration such as "90s", converted to that unit.
func parseDurationSetting(key, raw string) (int, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer or a duration: %w", key, err)
	}
	unit := time.Second
	if strings.HasSuffix(key, "_ms") {
		unit = time.Millisecond
	}
	return int(d / unit), nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
