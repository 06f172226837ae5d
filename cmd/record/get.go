package record

import (
	"dario.lol/ddns/internal/executor"
	"dario.lol/ddns/internal/provision"
	"dario.lol/ddns/internal/ui"
	"dario.lol/ddns/internal/ui/response"
	"github.com/spf13/cobra"
)

type storedRecord struct {
	Table provision.ResourceDescriptor
	View  provision.ConfirmationView
}

var storedRecordKey = executor.NewKey[storedRecord]("storedRecord")

var getCmd = &cobra.Command{
	Use:     "get <stack-name> <hostname>",
	Aliases: []string{"show"},
	Short:   "Show the record stored for a hostname, with its secret masked",
	Args:    cobra.ExactArgs(2),
	RunE: executor.New().
		WithClients().
		Step(executor.NewStep(storedRecordKey, "Reading record").Func(fetchRecord)).
		Display(printRecord).
		RunE(),
}

func init() {
	registerTableFlag(getCmd)
	RecordCmd.AddCommand(getCmd)
}

func fetchRecord(ctx *executor.Context, progress chan<- string) (storedRecord, error) {
	executor.Progress(progress, "Locating hostname table")
	table, view, err := newWorkflow(ctx).Inspect(ctx.Context(), ctx.Args[0], tableLogicalID(ctx.Cmd), ctx.Args[1])
	if err != nil {
		return storedRecord{}, err
	}
	return storedRecord{Table: table, View: view}, nil
}

func printRecord(ctx *executor.Context) {
	rb := response.New()
	if ctx.Error != nil {
		rb.Error("Error reading DDNS record", ctx.Error).Display()
		return
	}
	rec := executor.Get(ctx, storedRecordKey)
	rb.Summary("Stack:", ctx.Args[0]).
		Summary("Table:", rec.Table.PhysicalID).
		AddItem(rec.View.Hostname, recordContent(rec.View)).
		FooterSuccessf("Record found %s", ui.Took(ctx.Duration)).
		Display()
}
