package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/spf13/cobra"
)

var (
	versionOnce   sync.Once
	cachedVersion string
)

// appVersion returns the best-effort version of the binary: CHAMELEON_VERSION,
// then Go build information, then "dev".
func appVersion() string {
	versionOnce.Do(func() {
		cachedVersion = detectVersion()
	})
	return cachedVersion
}

func detectVersion() string {
	if v := strings.TrimSpace(os.Getenv("CHAMELEON_VERSION")); v != "" {
		return v
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "dev"
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "chameleon %s\n", appVersion())
			return err
		},
	}
}
