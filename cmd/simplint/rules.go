package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"simplint/internal/config"
	"simplint/internal/diag"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List all lint rules and whether they are enabled",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	rulesCmd.Flags().String("config", "", "explicit simplint.toml path (default: discover upward)")
}

type ruleInfo struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Enabled bool   `json:"enabled"`
}

func runRules(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, _, err = config.Discover(".")
	}
	if err != nil {
		return err
	}

	rules := make([]ruleInfo, 0, len(diag.AllCodes()))
	for _, code := range diag.AllCodes() {
		rules = append(rules, ruleInfo{
			Code:    code.ID(),
			Title:   code.Title(),
			Enabled: cfg.Enabled(code),
		})
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rules)
	case "pretty":
		useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
		on := color.New(color.FgGreen)
		off := color.New(color.FgRed)
		for _, r := range rules {
			state := "enabled"
			c := on
			if !r.Enabled {
				state = "disabled"
				c = off
			}
			if useColor {
				state = c.Sprint(state)
			}
			fmt.Fprintf(os.Stdout, "%-8s %-9s %s\n", r.Code, state, r.Title)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
