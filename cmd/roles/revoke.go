package roles

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	roles "github.com/smartcontractkit/timelock-roles"
	"github.com/smartcontractkit/timelock-roles/sdk/evm"
)

func buildRevokeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <network> <timelock-address> [comma-separated-executors]",
		Short: "Draft the batch that revokes executors from a timelock",
		Long: `Drafts scheduleBatch and executeBatch call data revoking EXECUTOR_ROLE from the given executors, or from
every executor that is not also a proposer when none are given. Nothing is sent: submit the scheduleBatch
call through a proposer and the executeBatch call through an executor once the minimum delay has passed.`,
		Args: targetArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTarget(args)
			if err != nil {
				return err
			}

			var rawToRemove string
			if len(args) > 2 {
				rawToRemove = args[2]
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

			plan, err := roles.NewRevocationPlanner(t.timelock, b.contract).Plan(ctx, memberships, rawToRemove)
			if err != nil {
				return err
			}

			if opts.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), plan)
			}

			return printPlan(cmd.OutOrStdout(), plan)
		},
	}
}

func printPlan(w io.Writer, plan *roles.RevocationPlan) error {
	if plan == nil {
		_, err := fmt.Fprintln(w, "No executors found to remove.")
		return err
	}

	join := func(n int, item func(i int) string) string {
		items := make([]string, n)
		for i := range items {
			items[i] = item(i)
		}

		return strings.Join(items, ",")
	}

	calls := make([]string, len(plan.Payloads))
	for i, data := range plan.Payloads {
		op, err := evm.ParseFunctionCall(data)
		if err != nil {
			return fmt.Errorf("failed to decode payload %d: %w", i, err)
		}
		calls[i] = "  " + op.String()
	}

	lines := []string{"To remove executors:"}
	for _, e := range plan.ToRemove {
		lines = append(lines, " "+e.Hex())
	}
	lines = append(lines,
		"",
		"Schedule the following batch proposal by calling scheduleBatch on your timelock with the parameters:",
		"",
		" targets="+join(len(plan.Targets), func(i int) string { return plan.Targets[i].Hex() }),
		" values="+join(len(plan.Values), func(i int) string { return plan.Values[i].String() }),
		" datas="+join(len(plan.Payloads), func(i int) string { return plan.Payloads[i].String() }),
	)
	lines = append(lines, calls...)
	lines = append(lines,
		" predecessor="+plan.Predecessor.Hex(),
		" salt="+plan.Salt.Hex(),
		" delay="+plan.Delay.String(),
		"",
		"which is the same as sending a transaction with the following data:",
		"",
		" "+plan.ScheduleBatchData.String(),
		"",
		"The scheduled operation id is "+plan.OperationID.Hex()+".",
		"After the delay of "+plan.Delay.String()+" seconds ("+plan.DelayDuration.String()+"), you can then call executeBatch with the same parameters as above, or using the following tx data:",
		"",
		" "+plan.ExecuteBatchData.String(),
	)

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))

	return err
}
