package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Keats/kickstart/internal/version"
	"github.com/Keats/kickstart/pkg/errors"
	"github.com/Keats/kickstart/pkg/generate"
	"github.com/Keats/kickstart/pkg/logging"
	"github.com/Keats/kickstart/pkg/prompt"
	"github.com/Keats/kickstart/pkg/resolver"
	"github.com/Keats/kickstart/pkg/schema"
	"github.com/Keats/kickstart/pkg/source"
)

var (
	verbosity int
	outputDir string
	directory string
	noInput   bool
	setValues []string

	rootCmd = &cobra.Command{
		Use:   "kickstart <template>",
		Short: MsgShort,
		Long:  MsgLong,
		Args:  cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runGenerate(args[0]); err != nil {
				pterm.Error.Println(err.Error())
				return err
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", MsgFlagOutputDir)
	rootCmd.Flags().StringVarP(&directory, "directory", "d", "", MsgFlagDirectory)
	rootCmd.Flags().BoolVar(&noInput, "no-input", false, MsgFlagNoInput)
	rootCmd.Flags().StringArrayVar(&setValues, "set", nil, MsgFlagSet)

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

func runGenerate(template string) error {
	root, cleanup, err := source.Resolve(template, directory)
	defer cleanup()
	if err != nil {
		return err
	}

	def, err := schema.Load(root)
	if err != nil {
		return err
	}

	if problems := def.Validate(); len(problems) > 0 {
		for _, p := range problems {
			pterm.Error.Println(p)
		}
		return errors.Newf(errors.ErrSchemaInvalid,
			"the %s has %d problem(s)", schema.DefinitionFilename, len(problems))
	}

	overrides, err := parseSetFlags(setValues)
	if err != nil {
		return err
	}

	unattended := noInput || !isatty.IsTerminal(os.Stdin.Fd())
	ctx, err := resolver.Resolve(def, resolver.Options{
		NoInput:   unattended,
		Overrides: overrides,
		Prompter:  prompt.NewTerminal(),
	})
	if err != nil {
		return err
	}

	// The schema can keep the template files in a subdirectory, next
	// to the template's own docs and CI
	filesRoot := root
	if def.Directory != "" {
		filesRoot = filepath.Join(root, def.Directory)
	}

	report, err := generate.New(def, filesRoot).Generate(ctx, outputDir)
	if err != nil {
		return err
	}

	for _, cerr := range report.CleanupErrors {
		pterm.Warning.Println(cerr.Error())
	}

	pterm.Success.Printfln(MsgDone, len(report.Created), outputDir)
	return nil
}

// parseSetFlags splits repeated --set name=value flags
func parseSetFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "--set expects name=value, got `%s`", pair)
		}
		overrides[name] = value
	}
	return overrides, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print version information for kickstart`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kickstart version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}
