package profiling

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/samoyed/env"
)

// EnvTiming enables timing for invocations whose flags are not parsed,
// such as `samoyed hook`.
const EnvTiming = "SAMOYED_TIMING"

// AddFlags adds --timing to cmd and its subcommands.
func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool("timing", false, "Print a timing summary to stderr on exit")
}

// EnableFromCommand turns on the process-wide profiler when --timing was
// given or SAMOYED_TIMING is "1" or "true".
func EnableFromCommand(cmd *cobra.Command, lookup env.LookupFunc) {
	timing, _ := cmd.Flags().GetBool("timing")
	if !timing && lookup != nil {
		v, _ := lookup(EnvTiming)
		timing = v == "1" || v == "true"
	}
	if timing {
		Enable()
	}
}
