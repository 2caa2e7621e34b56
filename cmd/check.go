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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goatx/pdr"
	"github.com/goatx/pdr/aiger"
	"github.com/goatx/pdr/solver"
)

var errCounterexample = errors.New("counterexample found")

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Model check an AIGER circuit",
	Long: `Load an ASCII (.aag) or binary (.aig) AIGER circuit and check that none of its bad states,
or outputs when the circuit declares no bad states, is reachable.
The verdict is written to stdout or to a file via -o/--output as text, json or dot.
A counterexample makes the command fail with exit status 2.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		solverName, err := flags.GetString("solver")
		if err != nil {
			return err
		}
		format, err := flags.GetString("format")
		if err != nil {
			return err
		}
		outputPath, err := flags.GetString("output")
		if err != nil {
			return err
		}
		maxFrames, err := flags.GetInt("max-frames")
		if err != nil {
			return err
		}
		timeout, err := flags.GetDuration("timeout")
		if err != nil {
			return err
		}
		queryTimeout, err := flags.GetDuration("query-timeout")
		if err != nil {
			return err
		}
		dumpDir, err := flags.GetString("dump-dir")
		if err != nil {
			return err
		}
		certify, err := flags.GetBool("certify")
		if err != nil {
			return err
		}
		verbose, err := flags.GetBool("verbose")
		if err != nil {
			return err
		}

		write, err := formatter(format)
		if err != nil {
			return err
		}
		backend, err := solver.New(solverName)
		if err != nil {
			return err
		}
		if dumpDir != "" {
			backend, err = solver.NewDump(backend, dumpDir)
			if err != nil {
				return err
			}
		}
		circuit, err := aiger.LoadFile(args[0])
		if err != nil {
			return err
		}

		opts := []pdr.Option{
			pdr.WithEngine(backend),
			pdr.WithRules(circuit.Rules()...),
			pdr.WithMaxFrames(maxFrames),
			pdr.WithQueryTimeout(queryTimeout),
		}
		if verbose {
			opts = append(opts, pdr.WithLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))))
		}

		ctx := cmd.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		res, err := pdr.Check(ctx, circuit.System, opts...)
		if err != nil {
			return err
		}
		if certify {
			if err := pdr.Certify(ctx, circuit.System, res, opts...); err != nil {
				return err
			}
		}

		writer := cmd.OutOrStdout()

		if outputPath != "" {
			file, err := os.Create(outputPath)
			if err != nil {
				return err
			}
			defer file.Close()
			writer = file
		}

		if err := write(writer, res); err != nil {
			return err
		}
		if res.Verdict() == pdr.VerdictUnsafe {
			return errCounterexample
		}
		return nil
	},
}

func formatter(format string) (func(io.Writer, pdr.Result) error, error) {
	switch format {
	case "text":
		return func(w io.Writer, res pdr.Result) error {
			pdr.WriteLog(w, res)
			return nil
		}, nil
	case "json":
		return pdr.WriteJSON, nil
	case "dot":
		return func(w io.Writer, res pdr.Result) error {
			pdr.WriteDot(w, res)
			return nil
		}, nil
	}
	return nil, fmt.Errorf("unknown format %q: want text, json or dot", format)
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().String("solver", solver.DefaultName, fmt.Sprintf("SAT backend to use %v", solver.Names()))
	checkCmd.Flags().String("format", "text", "output format: text, json or dot")
	checkCmd.Flags().StringP("output", "o", "", "write the verdict to a file")
	checkCmd.Flags().Int("max-frames", 0, "give up once this many frames exist (0 means no limit)")
	checkCmd.Flags().Duration("timeout", 0, "give up after this long (0 means no limit)")
	checkCmd.Flags().Duration("query-timeout", 0, "limit for a single SAT query (0 means no limit)")
	checkCmd.Flags().String("dump-dir", "", "write every SAT query in DIMACS format to this directory")
	checkCmd.Flags().Bool("certify", false, "validate the invariant or counterexample before reporting it")
	checkCmd.Flags().BoolP("verbose", "v", false, "log the progress of the checker to stderr")
}
