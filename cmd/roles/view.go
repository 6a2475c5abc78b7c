package roles

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	roles "github.com/smartcontractkit/timelock-roles"
	"github.com/smartcontractkit/timelock-roles/types"
)

func buildViewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "view <network> <timelock-address>",
		Short: "List the current executors, proposers and admins of a timelock",
		Example: `  timelock-roles view mainnet 0x1111111111111111111111111111111111111111
  timelock-roles view matic 0x1111111111111111111111111111111111111111 --output json`,
		Args: targetArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTarget(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			b, err := opts.dial(ctx, opts.cfg, opts.limiter, t.network)
			if err != nil {
				return err
			}
			defer b.close()

			memberships, err := inspect(ctx, b, t)
			if err != nil {
				return err
			}

			if opts.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), rolesView{Timelock: t.timelock, Roles: memberships})
			}

			return printRoles(cmd.OutOrStdout(), t.timelock, memberships)
		},
	}
}

type rolesView struct {
	Timelock common.Address        `json:"timelock"`
	Roles    roles.RoleMemberships `json:"roles"`
}

func printRoles(w io.Writer, timelock common.Address, memberships roles.RoleMemberships) error {
	if _, err := fmt.Fprintf(w, "Roles on %s:\n", timelock.Hex()); err != nil {
		return err
	}

	for _, role := range types.Roles {
		if _, err := fmt.Fprintf(w, "%ss:\n", role); err != nil {
			return err
		}

		members := memberships.Get(role).Members()
		if len(members) == 0 {
			if _, err := fmt.Fprintln(w, " none found"); err != nil {
				return err
			}

			continue
		}

		for _, m := range members {
			if _, err := fmt.Fprintf(w, "- %s\n", m.Hex()); err != nil {
				return err
			}
		}
	}

	return nil
}
