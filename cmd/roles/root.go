package roles

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/smartcontractkit/timelock-roles/internal/config"
	"github.com/smartcontractkit/timelock-roles/sdk"
	"github.com/smartcontractkit/timelock-roles/sdk/explorer"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var errMissingAction = errors.New("missing action, expected view or revoke")

// options is shared by every subcommand and filled in before any of them runs.
type options struct {
	output  string
	envFile string

	cfg     *config.Config
	limiter *rate.Limiter
	dial    dialFunc
}

func BuildRolesCmd() *cobra.Command {
	return buildRootCmd(&options{
		limiter: explorer.NewLimiter(explorer.DefaultRequestsPerSecond),
		dial:    dialBackend,
	})
}

func buildRootCmd(opts *options) *cobra.Command {
	cmd := cobra.Command{
		Use:   "timelock-roles",
		Short: "Inspect TimelockController roles and draft executor revocations",
		Long: `Rebuilds the executor, proposer and admin sets of a TimelockController from its RoleGranted and
RoleRevoked history, and drafts the scheduleBatch/executeBatch call data that revokes stale executors.

Explorer api keys are read from ETHERSCAN_API_KEY, BSCSCAN_API_KEY and POLYGONSCAN_API_KEY, either in the
environment or in a .env file.`,
		SilenceErrors: true,
		// the root command only dispatches, so any positional argument reaching it is not a known action
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errMissingAction
			}

			return fmt.Errorf("unknown action %q, expected view or revoke", args[0])
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return errMissingAction
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "Output format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "Optional file with environment variables")

	cmd.AddCommand(buildViewCmd(opts))
	cmd.AddCommand(buildRevokeCmd(opts))

	return &cmd
}

// load validates the flags, reads the configuration and installs the logger in the command context.
func (o *options) load(cmd *cobra.Command) error {
	if o.output != outputText && o.output != outputJSON {
		return fmt.Errorf("unsupported output %q, expected %s or %s", o.output, outputText, outputJSON)
	}

	// arguments are valid from here on, so failures should not print the usage
	cmd.SilenceUsage = true

	cfg, err := config.Load(o.envFile)
	if err != nil {
		return err
	}

	lggr, err := sdk.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	o.cfg = cfg
	cmd.SetContext(sdk.WithLogger(cmd.Context(), lggr))

	return nil
}
