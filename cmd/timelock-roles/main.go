package main

import (
	"fmt"
	"os"

	"github.com/smartcontractkit/timelock-roles/cmd/roles"
)

func main() {
	rootCmd := roles.BuildRolesCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
