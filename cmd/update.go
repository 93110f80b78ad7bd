package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// releaseRepo is the GitHub repository releases are published to
const releaseRepo = "s0up4200/shipctl"

var checkOnly bool

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	PersistentPreRunE: skipInit,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "shipctl %s (built %s, %s %s/%s)\n",
			version, buildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

// selfUpdateCmd replaces the running binary with the latest release
var selfUpdateCmd = &cobra.Command{
	Use:               "self-update",
	Short:             "Update shipctl to the latest release",
	PersistentPreRunE: skipInit,
	RunE:              runSelfUpdate,
}

func init() {
	rootCmd.AddCommand(versionCmd, selfUpdateCmd)

	selfUpdateCmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether an update is available")
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	current, err := parseVersion(version)
	if err != nil {
		return fmt.Errorf("cannot self-update a development build (%s): %w", version, err)
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(releaseRepo))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	available, err := parseVersion(latest.Version())
	if err != nil {
		return fmt.Errorf("latest release has an invalid version %q: %w", latest.Version(), err)
	}

	if !newerRelease(current, available) {
		fmt.Fprintf(out, "✓ shipctl %s is up to date\n", current)
		return nil
	}

	if checkOnly {
		fmt.Fprintf(out, "Update available: %s → %s\n", current, available)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Fprintf(out, "✓ Updated shipctl %s → %s\n", current, available)
	return nil
}

// parseVersion accepts versions with or without a leading "v".
func parseVersion(v string) (semver.Version, error) {
	return semver.ParseTolerant(strings.TrimSpace(v))
}

func newerRelease(current, latest semver.Version) bool {
	return latest.GT(current)
}
