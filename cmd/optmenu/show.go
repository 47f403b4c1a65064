package main

import (
	"encoding/json"

	opts "github.com/goliatone/go-options-menu"
	"github.com/goliatone/go-options-menu/pkg/menu"
	"github.com/goliatone/go-options-menu/schema/openapi"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newShowCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the menu window once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(cmd.Context(), loadSettings(v))
			if err != nil {
				return err
			}
			r := menu.WriterRenderer{W: cmd.OutOrStdout()}
			if err := r.Render(ws.controller.Render()); err != nil {
				return oops.In("optmenu").Wrapf(err, "render")
			}
			return nil
		},
	}
}

func newSchemaCmd(v *viper.Viper) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the option catalog as JSON (descriptors or openapi)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := loadSettings(v)
			d, err := lookupDomain(s.Domain)
			if err != nil {
				return oops.In("optmenu").Wrapf(err, "select domain")
			}
			registry, err := d.build(opts.DefaultConverters())
			if err != nil {
				return oops.In("optmenu").With("domain", d.name).Wrapf(err, "build registry")
			}
			var doc opts.SchemaDocument
			switch opts.SchemaFormat(format) {
			case opts.SchemaFormatDescriptors:
				doc = registry.Schema()
			case opts.SchemaFormatOpenAPI:
				doc, err = openapi.Generate(registry, openapi.WithInfo(d.name+" options", version, ""))
				if err != nil {
					return oops.In("optmenu").Wrapf(err, "generate openapi")
				}
			default:
				return oops.In("optmenu").Errorf("unknown schema format %q", format)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(doc); err != nil {
				return oops.In("optmenu").Wrapf(err, "encode schema")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(opts.SchemaFormatDescriptors), "descriptors or openapi")
	return cmd
}
