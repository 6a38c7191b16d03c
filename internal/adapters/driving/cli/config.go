package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/reposift/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and edit the TOML configuration file.

Keys use dot notation, for example search.min_stars or classify.backend.
Credentials are read from GITHUB_TOKEN, GEMINI_API_KEY, OPENAI_API_KEY and
ANTHROPIC_API_KEY when set.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a stored value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Store a value",
	Long: `Store a value. Lists are comma separated. When the value is omitted it is
read from the terminal without echo, which suits tokens.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	_, settingsService, err := openSettings()
	if err != nil {
		return err
	}

	s, err := settingsService.Load()
	if err != nil {
		return err
	}

	cmd.Println("GitHub:")
	cmd.Printf("  Token:           %s\n", maskAPIKey(s.GitHubToken))
	cmd.Println()
	cmd.Println("Search:")
	cmd.Printf("  Queries:         %s\n", strings.Join(s.Search.Queries, ", "))
	cmd.Printf("  Languages:       %s\n", strings.Join(s.Search.Languages, ", "))
	cmd.Printf("  Min stars:       %d\n", s.Search.MinStars)
	cmd.Printf("  Max pages:       %d\n", s.Search.MaxPages)
	cmd.Printf("  Sort:            %s %s\n", s.Search.Sort, s.Search.Order)
	cmd.Println()
	cmd.Println("Filter:")
	cmd.Printf("  Required:        %d keywords\n", len(s.Filter.Required))
	cmd.Printf("  Exclude:         %s\n", strings.Join(s.Filter.Exclude, ", "))
	cmd.Println()
	cmd.Println("Classification:")
	cmd.Printf("  Analyze:         %t\n", s.Classify.Analyze)
	cmd.Printf("  Backend:         %s\n", s.Classify.Backend)
	cmd.Printf("  Hosted:          %s (key %s)\n", s.Classify.Hosted.Provider, maskAPIKey(s.Classify.Hosted.APIKey))
	cmd.Printf("  Local:           %s\n", orDefault(s.Classify.Local.Model, "default model"))
	cmd.Printf("  Override:        %t\n", s.Classify.Override.Enabled)
	cmd.Println()
	cmd.Println("Run:")
	cmd.Printf("  Max results:     %d\n", s.Run.MaxResults)
	cmd.Printf("  Batch size:      %d\n", s.Run.BatchSize)
	cmd.Printf("  Pacing:          %s\n", s.Run.Pacing)
	cmd.Println()
	cmd.Println("Output:")
	cmd.Printf("  JSON:            %s\n", s.Output.JSON)
	cmd.Printf("  CSV:             %s\n", orDefault(s.Output.CSV, "off"))
	cmd.Printf("  Database:        %s\n", orDefault(s.Output.Database, "off"))
	cmd.Printf("  Metrics:         %s\n", orDefault(s.Output.Metrics, "off"))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	store, _, err := openSettings()
	if err != nil {
		return err
	}

	val, ok := store.Get(args[0])
	if !ok {
		return fmt.Errorf("%s is not set", args[0])
	}
	if list := store.GetStringSlice(args[0]); list != nil {
		cmd.Println(strings.Join(list, ", "))
		return nil
	}
	cmd.Println(val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	_, settingsService, err := openSettings()
	if err != nil {
		return err
	}

	key := args[0]
	var raw string
	if len(args) == 2 {
		raw = args[1]
	} else {
		cmd.Printf("%s: ", key)
		raw = readPassword()
		cmd.Println()
	}
	if raw == "" {
		return errors.New("value must not be empty")
	}

	if err := settingsService.Set(key, parseValue(key, raw)); err != nil {
		return err
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	store, _, err := openSettings()
	if err != nil {
		return err
	}
	cmd.Println(store.Path())
	return nil
}

// listKeys hold comma separated lists.
var listKeys = map[string]bool{
	services.KeyQueries:           true,
	services.KeyLanguages:         true,
	services.KeyRequiredKeywords:  true,
	services.KeyExcludeKeywords:   true,
	services.KeyOverrideLanguages: true,
}

// parseValue converts a command line value to the type stored for key.
func parseValue(key, raw string) any {
	if listKeys[key] || strings.HasPrefix(key, services.KeyExtraLanguages) {
		parts := strings.Split(raw, ",")
		list := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		return list
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if key == "" {
		return "not set"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
