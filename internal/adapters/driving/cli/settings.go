package cli

import (
	"bufio"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the docs directory, the HTTP server and rate limiting.

Settings are stored in config.toml in the config directory. The PORT and
DUXT_DOCS_DIR environment variables override the stored values.`,
	Annotations: map[string]string{configOnly: "true"},
	RunE:        runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current settings",
	Annotations: map[string]string{configOnly: "true"},
	RunE:        runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and save it.

Keys:
  docs.dir            docs directory
  docs.strict         fail on duplicate document URIs (true/false)
  docs.watch          reload docs when files change (true/false)
  docs.reload_interval reload docs on a schedule, e.g. 5m; 0s disables
  server.host         interface the HTTP server binds
  server.port         HTTP port
  server.rate_limit   requests per second allowed on /mcp, 0 disables
  server.rate_burst   burst size for the rate limiter`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{configOnly: "true"},
	RunE:        runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:         "wizard",
	Short:       "Interactive setup wizard",
	Long:        `Run an interactive wizard to configure all settings step by step.`,
	Annotations: map[string]string{configOnly: "true"},
	RunE:        runSettingsWizard,
}

// settingSetters apply a string value to one settings field.
var settingSetters = map[string]func(s *domain.AppSettings, value string) error{
	"docs.dir": func(s *domain.AppSettings, v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: docs.dir must not be empty", domain.ErrInvalidInput)
		}
		s.Docs.Dir = v
		return nil
	},
	"docs.strict": func(s *domain.AppSettings, v string) error {
		return parseBoolInto(&s.Docs.Strict, v)
	},
	"docs.watch": func(s *domain.AppSettings, v string) error {
		return parseBoolInto(&s.Docs.Watch, v)
	},
	"docs.reload_interval": func(s *domain.AppSettings, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %q is not a duration such as 30s or 5m", domain.ErrInvalidInput, v)
		}
		s.Docs.ReloadInterval = d
		return nil
	},
	"server.host": func(s *domain.AppSettings, v string) error {
		s.Server.Host = v
		return nil
	},
	"server.port": func(s *domain.AppSettings, v string) error {
		return parseIntInto(&s.Server.Port, v)
	},
	"server.rate_limit": func(s *domain.AppSettings, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, v)
		}
		s.Server.RateLimit = f
		return nil
	},
	"server.rate_burst": func(s *domain.AppSettings, v string) error {
		return parseIntInto(&s.Server.RateBurst, v)
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
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

	out := cmd.OutOrStdout()
	st := newOutputStyles(out)
	row := func(label string, value any) {
		fmt.Fprintf(out, "  %s %v\n", st.Label.Render(label), value)
	}

	fmt.Fprintln(out, st.Title.Render("Current Settings"))
	fmt.Fprintln(out)

	fmt.Fprintln(out, st.Heading.Render("[Docs]"))
	row("Directory:", settings.Docs.Dir)
	row("Strict:", settings.Docs.Strict)
	row("Watch:", settings.Docs.Watch)
	if settings.Docs.ReloadInterval > 0 {
		row("Reload:", "every "+settings.Docs.ReloadInterval.String())
	} else {
		row("Reload:", st.Muted.Render("off"))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, st.Heading.Render("[Server]"))
	row("Host:", settings.Server.Host)
	row("Port:", settings.Server.Port)
	if settings.Server.RateLimit > 0 {
		row("Rate limit:", fmt.Sprintf("%g req/s, burst %d", settings.Server.RateLimit, max(settings.Server.RateBurst, 1)))
	} else {
		row("Rate limit:", st.Muted.Render("disabled"))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, st.Heading.Render("[Files]"))
	row("Config:", configPath)
	if templateStore != nil {
		row("Templates:", templateStore.Dir())
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	set, ok := settingSetters[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q (known: %s)", domain.ErrInvalidInput, key, strings.Join(settingKeys(), ", "))
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := set(settings, value); err != nil {
		return err
	}
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Set %s to %s\n", key, value)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Duxt MCP Settings Wizard")
	cmd.Println("========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Docs
	cmd.Println("Step 1: Documentation")
	cmd.Println("---------------------")
	cmd.Printf("Docs directory [%s]: ", settings.Docs.Dir)
	if dir := readLine(reader); dir != "" {
		settings.Docs.Dir = dir
	}
	cmd.Printf("Reload docs when files change? [%s]: ", yesNo(settings.Docs.Watch))
	settings.Docs.Watch = parseYesNo(readLine(reader), settings.Docs.Watch)
	cmd.Println()

	// Step 2: HTTP server
	cmd.Println("Step 2: HTTP Server")
	cmd.Println("-------------------")
	cmd.Printf("Host [%s]: ", settings.Server.Host)
	if host := readLine(reader); host != "" {
		settings.Server.Host = host
	}
	cmd.Printf("Port [%d]: ", settings.Server.Port)
	settings.Server.Port = parseChoice(readLine(reader), 65535, settings.Server.Port)
	cmd.Println()

	// Step 3: Rate limiting
	cmd.Println("Step 3: Rate Limiting")
	cmd.Println("---------------------")
	cmd.Printf("Requests per second on /mcp, 0 disables [%g]: ", settings.Server.RateLimit)
	if input := readLine(reader); input != "" {
		if rate, err := strconv.ParseFloat(input, 64); err == nil && rate >= 0 {
			settings.Server.RateLimit = rate
		}
	}
	if settings.Server.RateLimit > 0 {
		cmd.Printf("Burst size [%d]: ", max(settings.Server.RateBurst, 1))
		settings.Server.RateBurst = parseChoice(readLine(reader), 1<<20, max(settings.Server.RateBurst, 1))
	}
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Printf("Saved to %s\n", configPath)
	return nil
}

func settingKeys() []string {
	keys := make([]string, 0, len(settingSetters))
	for k := range settingSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseBoolInto(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%w: %q is not true or false", domain.ErrInvalidInput, v)
	}
	*dst = b
	return nil
}

func parseIntInto(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %q is not a whole number", domain.ErrInvalidInput, v)
	}
	*dst = n
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func parseYesNo(input string, defaultVal bool) bool {
	switch strings.ToLower(input) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return defaultVal
	}
}

func yesNo(b bool) string {
	if b {
		return "Y/n"
	}
	return "y/N"
}
