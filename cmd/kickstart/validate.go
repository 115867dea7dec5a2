package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Keats/kickstart/pkg/errors"
	"github.com/Keats/kickstart/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: MsgValidateShort,
	Long:  MsgValidateLong,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		problems, err := schema.ValidateFile(args[0])
		if err != nil {
			pterm.Error.Println(err.Error())
			return err
		}
		if len(problems) > 0 {
			for _, p := range problems {
				pterm.Error.Println(p)
			}
			return errors.Newf(errors.ErrSchemaInvalid,
				"found %d problem(s) in %s", len(problems), args[0])
		}
		pterm.Success.Println(MsgValidateOK)
		return nil
	},
}
