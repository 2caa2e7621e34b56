/*
Copyright © 2025 Honoka Toda, Shinya Ishitobi

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goatx/pdr/solver"
)

// replayCmd represents the replay command
var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Solve a DIMACS CNF file",
	Long: `Solve a DIMACS CNF file, such as a query written by check --dump-dir, and print SAT or UNSAT.
Use --solver to compare backends on the same query.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		solverName, err := cmd.Flags().GetString("solver")
		if err != nil {
			return err
		}
		backend, err := solver.New(solverName)
		if err != nil {
			return err
		}

		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()

		sat, err := backend.SolveDimacs(cmd.Context(), file)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if sat {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "SAT")
		} else {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "UNSAT")
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().String("solver", solver.DefaultName, fmt.Sprintf("SAT backend to use %v", solver.Names()))
}
