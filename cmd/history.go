package cmd

import (
	"fmt"
	"time"

	"dario.lol/ddns/internal/config"
	"dario.lol/ddns/internal/db"
	"dario.lol/ddns/internal/executor"
	"dario.lol/ddns/internal/flags"
	"dario.lol/ddns/internal/journal"
	"dario.lol/ddns/internal/ui"
	"dario.lol/ddns/internal/ui/response"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List records provisioned from this machine",
	Args:  cobra.NoArgs,
	RunE: executor.NewBuilder[*journal.Journal, []journal.Entry]().
		Setup("Opening journal", openJournal).
		Fetch("Reading journal", fetchHistory).
		Display(printHistory).
		Build().
		RunE(),
}

func init() {
	historyCmd.Flags().IntP(flags.LimitFlag, "n", 20, "Number of entries to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func openJournal(*cobra.Command) (*journal.Journal, error) {
	if err := config.LoadConfig(); err != nil {
		return nil, err
	}
	store, err := db.Open()
	if err != nil {
		return nil, err
	}
	return journal.New(store), nil
}

func fetchHistory(j *journal.Journal, cmd *cobra.Command, _ []string, _ chan<- string) ([]journal.Entry, error) {
	limit, _ := cmd.Flags().GetInt(flags.LimitFlag)
	return j.Recent(limit)
}

func printHistory(entries []journal.Entry, _ time.Duration, err error) {
	rb := response.New().Title("Provisioning history")
	if err != nil {
		rb.Error("Error reading history", err).Display()
		return
	}

	for _, e := range entries {
		content := response.NewItemContent().
			Add("When:", e.Time.Local().Format(time.DateTime)).
			Add("Stack:", e.Stack)
		if e.Table != "" {
			content.Add("Table:", e.Table)
		}
		zone := e.ZoneName
		if e.ZoneID != "" {
			zone = fmt.Sprintf("%s (%s)", e.ZoneName, e.ZoneID)
		}
		content.Add("Hosted zone:", zone).
			Add("TTL:", fmt.Sprintf("%d", e.TTL))
		if e.Outcome == journal.Succeeded {
			content.Add("Outcome:", ui.Success(string(e.Outcome)))
		} else {
			content.Add("Outcome:", ui.Error(fmt.Sprintf("%s at %s", e.Outcome, e.FailedStep)))
			if e.Error != "" {
				content.AddRaw(ui.Muted(e.Error))
			}
		}
		rb.AddItem(fmt.Sprintf("#%d %s", e.Seq, e.Hostname), content.String())
	}
	rb.NoItemsMessage("No records provisioned from this machine yet").Display()
	if !config.Cfg.Journal {
		fmt.Println(ui.Info("Journaling is off. Enable it with: ddns config set journal true"))
	}
}
