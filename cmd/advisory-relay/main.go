// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/advisory-relay/internal/log"
	"github.com/sirseerhq/advisory-relay/pkg/version"
)

func newRootCommand() *cobra.Command {
	var (
		quiet   bool
		verbose bool
	)

	rootCmd := &cobra.Command{
		Use:   "advisory-relay",
		Short: "Retrieve GitHub global security advisories",
		Long: `Advisory Relay retrieves global security advisory records from the
GitHub REST API, applying optional ecosystem, severity, and type filters,
and serializes the combined results as JSON to a file or stdout.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Setup(quiet, verbose)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")

	rootCmd.AddCommand(newFetchAdvisoriesCommand())

	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}
