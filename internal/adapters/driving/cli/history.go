package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage search history",
	Long:  `Lists or clears the bounded local search history.`,
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all search history",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyStore == nil {
		return errors.New("history store not configured")
	}

	entries, err := historyStore.Recent(cmd.Context(), domain.HistoryLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		cmd.Println("History is empty.")
		return nil
	}
	for i, e := range entries {
		cmd.Printf("  [%d] %s  (%s)\n", i+1, e.DisplayText, e.SelectedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyStore == nil {
		return errors.New("history store not configured")
	}

	if err := historyStore.Clear(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("History cleared.")
	return nil
}
