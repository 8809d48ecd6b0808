package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"ansify/config"
	"ansify/internal/adapter/store"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or reset the batch conversion state",
}

var stateListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List files recorded by previous batch runs",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStateList,
}

var stateClearCmd = &cobra.Command{
	Use:   "clear [path]",
	Short: "Forget every recorded file so the next batch run converts all",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStateClear,
}

func init() {
	stateCmd.AddCommand(stateListCmd, stateClearCmd)
	rootCmd.AddCommand(stateCmd)
}

func openState(args []string) (*store.BoltStore, string, error) {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return nil, "", fmt.Errorf("invalid path: %w", err)
		}
	}

	dbPath := config.StateDBPath(path)
	if _, err := os.Stat(dbPath); err != nil {
		return nil, dbPath, fmt.Errorf("no conversion state at %s (run 'ansify batch' first)", dbPath)
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return nil, dbPath, fmt.Errorf("failed to open state store: %w", err)
	}
	return st, dbPath, nil
}

func runStateList(cmd *cobra.Command, args []string) error {
	st, _, err := openState(args)
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := st.List()
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No files recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tMODE\tDEFS\tREWRITTEN\tWARNINGS\tCONVERTED")
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			r.Path, r.Mode, r.Definitions, r.Converted, r.Warnings,
			r.ConvertedAt.Local().Format(time.DateTime))
	}
	return w.Flush()
}

func runStateClear(cmd *cobra.Command, args []string) error {
	st, dbPath, err := openState(args)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Clear(); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	fmt.Printf("Cleared conversion state at %s\n", dbPath)
	return nil
}
