package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"chameleon/internal/components"
	"chameleon/internal/config"
	"chameleon/internal/layout"
	"chameleon/internal/logging"
	"chameleon/internal/skin"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

type renderOptions struct {
	layoutFile     string
	contextFile    string
	showEchoAs     string
	hideNewtalk    bool
	hideNewtalkSet bool
	only           string
}

func newRenderCommand(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a layout to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.hideNewtalkSet = cmd.Flags().Changed("hide-newtalk")
			if err := opts.fillFromConfig(root.configPath, cmd); err != nil {
				return err
			}
			return runRender(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.layoutFile, "layout", "", "layout descriptor (defaults to skin.layout_file)")
	cmd.Flags().StringVar(&opts.contextFile, "context", "", "page context YAML (defaults to skin.context_file)")
	cmd.Flags().StringVar(&opts.showEchoAs, "show-echo-as", "", "override showEchoAs: icons, links or hidden")
	cmd.Flags().BoolVar(&opts.hideNewtalk, "hide-newtalk", false, "override hideNewtalkNotifier; --hide-newtalk=false shows the notice")
	cmd.Flags().StringVar(&opts.only, "only", "", "render only components of this type")
	return cmd
}

// fillFromConfig takes unset file paths from the configuration.
func (o *renderOptions) fillFromConfig(configPath string, cmd *cobra.Command) error {
	if o.layoutFile != "" && o.contextFile != "" {
		return nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("layout") {
		o.layoutFile = cfg.Skin.LayoutFile
	}
	if !cmd.Flags().Changed("context") {
		o.contextFile = cfg.Skin.ContextFile
	}
	return nil
}

func (o *renderOptions) attributes() map[string]string {
	attrs := map[string]string{}
	if o.showEchoAs != "" {
		attrs[components.AttrShowEchoAs] = o.showEchoAs
	}
	if o.hideNewtalkSet {
		attrs[components.AttrHideNewtalkNotifier] = strconv.FormatBool(o.hideNewtalk)
	}
	return attrs
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	if opts.showEchoAs != "" {
		if _, ok := components.ParseEchoMode(opts.showEchoAs); !ok {
			return fmt.Errorf("invalid --show-echo-as %q: want icons, links or hidden", opts.showEchoAs)
		}
	}

	pc, err := skin.LoadPageContext(opts.contextFile)
	if err != nil {
		return err
	}
	cache, err := layout.NewCache(1)
	if err != nil {
		return err
	}
	renderer := skin.NewRenderer(cache, skin.WithLogger(logging.NewComponentLogger("Render")))

	page, err := renderer.Render(cmd.Context(), opts.layoutFile, pc, skin.RenderOptions{
		ComponentType: opts.only,
		Attributes:    opts.attributes(),
	})
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(cmd.OutOrStdout(), page.Body); err != nil {
		return err
	}

	if isTerminal(cmd.ErrOrStderr()) {
		notices, err := skin.CountClass(page.Body, "usermessage")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), summary(page, notices))
	}
	return nil
}

func summary(page skin.Page, notices int) string {
	line := green(fmt.Sprintf("rendered %d component(s), %d list item(s), %d notice(s)", page.Components, page.ListItems, notices))
	if len(page.Skipped) > 0 {
		line += yellow(fmt.Sprintf(" (skipped %v)", page.Skipped))
	}
	return line
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
