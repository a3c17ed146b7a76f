package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/seu-repo/clinic-advisor/internal/domain"
	"github.com/seu-repo/clinic-advisor/internal/service/analysis"
	"github.com/seu-repo/clinic-advisor/internal/service/clinic"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clinicctl",
		Short:         "Offline clinic profile analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newAnalyzeCmd(),
		newTabCmd("simulate", "Project 36 months of revenue for three growth scenarios", domain.KindSimulator),
		newTabCmd("benchmark", "Compare the profile with industry averages", domain.KindBenchmark),
		newTabsCmd(),
	)
	return root
}

func newAnalyzeCmd() *cobra.Command {
	var tab, profilePath string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run one analysis tab against a profile file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseAnalysisKind(tab)
			if err != nil {
				return err
			}
			return runAnalysis(cmd.OutOrStdout(), cmd.InOrStdin(), kind, profilePath)
		},
	}
	cmd.Flags().StringVar(&tab, "tab", "", "analysis tab (see `clinicctl tabs`)")
	cmd.Flags().StringVar(&profilePath, "profile", "", "profile file in JSON or YAML, - for stdin")
	_ = cmd.MarkFlagRequired("tab")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func newTabCmd(use, short string, kind domain.AnalysisKind) *cobra.Command {
	var profilePath string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd.OutOrStdout(), cmd.InOrStdin(), kind, profilePath)
		},
	}
	cmd.Flags().StringVar(&profilePath, "profile", "", "profile file in JSON or YAML, - for stdin")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func newTabsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tabs",
		Short: "List analysis tabs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, k := range domain.AnalysisKinds {
				mode := "deterministic"
				if k.HasNarrative() {
					mode = "deterministic+narrative"
				}
				if _, err := fmt.Fprintf(out, "%-12s %s\n", k, mode); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func runAnalysis(out io.Writer, stdin io.Reader, kind domain.AnalysisKind, profilePath string) error {
	profile, err := loadProfile(profilePath, stdin)
	if err != nil {
		return err
	}

	result, err := analysis.DefaultEngine().Run(kind, *profile)
	if err != nil {
		return err
	}

	env := domain.AnalysisEnvelope{
		Tab:           kind,
		Deterministic: result,
		Financials:    analysis.DeriveFinancials(*profile),
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(env)
}

// loadProfile reads a profile document and validates it like the API does.
// YAML files are converted to JSON first.
func loadProfile(path string, stdin io.Reader) (*domain.ClinicProfile, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) != ".json" {
		if raw, err = yamlToJSON(raw); err != nil {
			return nil, fmt.Errorf("parse profile: %w", err)
		}
	}

	profile, err := clinic.DecodeProfile(raw)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return nil, formatValidation(ve)
		}
		return nil, err
	}
	return profile, nil
}

func yamlToJSON(raw []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func formatValidation(ve *domain.ValidationError) error {
	var b strings.Builder
	b.WriteString("invalid profile:")
	for _, f := range ve.Fields {
		fmt.Fprintf(&b, "\n  %s: %s", f.Field, f.Message)
	}
	return errors.New(b.String())
}
