package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("Error: "+err.Error()))
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "chameleon",
		Short: "Render wiki skin layouts",
		Long: `chameleon renders the components of a wiki skin layout, such as the
personal tools bar, from an XML layout descriptor and a YAML page context.

Examples:
  chameleon serve --config chameleon.yaml
  chameleon render --layout layouts/standard.xml --context layouts/context.yaml
  chameleon render --layout layouts/standard.xml --context layouts/context.yaml --show-echo-as links`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to the YAML configuration file")

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newRenderCommand(opts))
	root.AddCommand(newVersionCommand())
	return root
}
