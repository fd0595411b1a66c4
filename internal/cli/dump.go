package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/introspec/apidoc"
	"github.com/vitalvas/introspec/internal/config"
)

// DumpCommand writes the documentation to stdout.
func DumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the API documentation",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			format = strings.ToLower(format)
			if format != "json" && format != "yaml" {
				return fmt.Errorf("invalid format: %s (valid: json, yaml)", format)
			}

			logger := setupLogger(cfg, cmd.ErrOrStderr(), cmd.Root().Version)

			svc, err := newService(cfg, logger)
			if err != nil {
				return err
			}

			dtoNames, _ := cmd.Flags().GetStringSlice("dto-name")
			categories, _ := cmd.Flags().GetStringSlice("category")
			tags, _ := cmd.Flags().GetStringSlice("tag")

			resp := svc.Get(apidoc.SpecRequest{
				DtoNames:   dtoNames,
				Categories: categories,
				Tags:       tags,
			})

			var data []byte
			switch format {
			case "yaml":
				data, err = yaml.Marshal(resp)
			default:
				data, err = json.MarshalIndent(resp, "", "  ")
			}
			if err != nil {
				return fmt.Errorf("serializing documentation: %w", err)
			}
			if format == "json" {
				data = append(data, '\n')
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringP("format", "f", "json", "Output format (json, yaml)")
	flags.StringSlice("dto-name", nil, "Only include the named request types")
	flags.StringSlice("category", nil, "Only include these categories")
	flags.StringSlice("tag", nil, "Only include resources with any of these tags")

	return cmd
}
