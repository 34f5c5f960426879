// Command retriever builds and queries the disk-resident inverted index
// `retriever index` is the offline indexer over a flat document corpus,
// `retriever search` is the online searcher (boolean or ranked).
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "retriever",
		Short:         "A small information-retrieval engine over a flat document corpus",
		SilenceUsage:  false,
		SilenceErrors: true,
	}
	root.AddCommand(newIndexCmd())
	root.AddCommand(newSearchCmd())
	return root
}

// usageError marks an error that should exit 2 (missing/invalid flags),
// Any other error exits non-zero (1).
type usageError struct{ err error }

func (u *usageError) Error() string { return u.err.Error() }
func (u *usageError) Unwrap() error { return u.err }

func exitCodeFor(err error) int {
	var u *usageError
	if errors.As(err, &u) {
		return 2
	}
	return 1
}
