package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"dario.lol/ddns/internal/config"
	"dario.lol/ddns/internal/db"
	"dario.lol/ddns/internal/executor"
	"dario.lol/ddns/internal/flags"
	"dario.lol/ddns/internal/journal"
	"dario.lol/ddns/internal/prompt"
	"dario.lol/ddns/internal/provision"
	"dario.lol/ddns/internal/ui"
	"dario.lol/ddns/internal/ui/response"
	"github.com/spf13/cobra"
)

var (
	inputKey        = executor.NewKey[provision.Input]("input")
	confirmationKey = executor.NewKey[*provision.Confirmation]("confirmation")
)

var createCmd = &cobra.Command{
	Use:     "create <stack-name>",
	Aliases: []string{"new", "add"},
	Short:   "Add or replace a DDNS client record in a stack's hostname table",
	Long: `Adds an allowed DDNS record to the stack's hostname table, replacing any
record already stored for the hostname.

Any of --hostname, --hostedzone, --ttl and --secret that are not given are
asked for interactively.`,
	Args: cobra.ExactArgs(1),
	RunE: executor.New().
		WithClients().
		Step(executor.NewStep(inputKey, "Reading record values").Silent().Func(resolveInput)).
		Step(executor.NewStep(confirmationKey, "Provisioning record").Func(provisionRecord)).
		Display(printCreateResult).
		RunE(),
}

func init() {
	createCmd.Flags().String(flags.HostnameFlag, "", "Hostname the DDNS client updates")
	createCmd.Flags().String(flags.HostedZoneFlag, "", "Name of the Route 53 hosted zone holding the hostname")
	createCmd.Flags().String(flags.ZoneFlag, "", "Alias for --hostedzone")
	createCmd.Flags().String(flags.TTLFlag, "", "TTL in seconds for the DNS record")
	createCmd.Flags().String(flags.SecretFlag, "", "Secret (a password) shared between the DDNS client and AWS")
	createCmd.Flags().Bool("json", false, "Print the stored record as JSON")
	createCmd.MarkFlagsMutuallyExclusive(flags.HostedZoneFlag, flags.ZoneFlag)
	registerTableFlag(createCmd)
	RecordCmd.AddCommand(createCmd)
}

func resolveInput(ctx *executor.Context, _ chan<- string) (provision.Input, error) {
	f := ctx.Cmd.Flags()
	values := prompt.RecordValues{}
	values.Hostname, _ = f.GetString(flags.HostnameFlag)
	values.ZoneName, _ = f.GetString(flags.HostedZoneFlag)
	if values.ZoneName == "" {
		values.ZoneName, _ = f.GetString(flags.ZoneFlag)
	}
	values.TTL, _ = f.GetString(flags.TTLFlag)
	values.Secret, _ = f.GetString(flags.SecretFlag)

	if err := prompt.CompleteRecord(&values); err != nil {
		return provision.Input{}, err
	}

	ttl, err := provision.ParseTTL(values.TTL)
	if err != nil {
		return provision.Input{}, err
	}
	return provision.Input{
		StackName:      ctx.Args[0],
		TableLogicalID: tableLogicalID(ctx.Cmd),
		Hostname:       values.Hostname,
		ZoneName:       values.ZoneName,
		TTL:            ttl,
		Secret:         values.Secret,
	}, nil
}

var stageProgress = map[provision.Stage]string{
	provision.Start:           "Verifying stack",
	provision.StackVerified:   "Locating hostname table",
	provision.TableLocated:    "Resolving hosted zone",
	provision.RecordAssembled: "Writing record",
	provision.Written:         "Verifying record",
}

func provisionRecord(ctx *executor.Context, progress chan<- string) (*provision.Confirmation, error) {
	in := executor.Get(ctx, inputKey)
	wf := newWorkflow(ctx, provision.WithObserver(func(s provision.Stage) {
		if msg, ok := stageProgress[s]; ok {
			executor.Progress(progress, msg)
		}
	}))

	start := time.Now()
	conf, err := wf.Run(ctx.Context(), in)
	journalRun(ctx, journal.FromRun(in, conf, err, time.Since(start)))
	return conf, err
}

// journalRun appends to the local journal. Journal problems never fail a run.
func journalRun(ctx *executor.Context, entry journal.Entry) {
	if !config.Cfg.Journal {
		return
	}
	store, err := db.Open()
	if err == nil {
		_, err = journal.New(store).Append(entry)
	}
	if err != nil {
		ctx.Log.V(1).Info("journal not updated", "error", err.Error())
	}
}

func printCreateResult(ctx *executor.Context) {
	rb := response.New()
	if ctx.Error != nil {
		if errors.Is(ctx.Error, prompt.ErrUserCancelled) {
			rb.Error("Cancelled", ctx.Error).Display()
			return
		}
		title := "Error provisioning DDNS record"
		if executor.Has(ctx, inputKey) {
			title = fmt.Sprintf("Error provisioning DDNS record for %s", executor.Get(ctx, inputKey).Hostname)
		}
		rb.Error(title, ctx.Error).Display()
		return
	}

	conf := executor.Get(ctx, confirmationKey)
	if asJSON, _ := ctx.Cmd.Flags().GetBool("json"); asJSON {
		if err := writeJSON(os.Stdout, conf.Record); err != nil {
			ctx.Error = err
			rb.Error("Error writing JSON output", err).Display()
		}
		return
	}

	rb.Title("DDNS record stored").
		Summary("Stack:", conf.Stack).
		Summary("Table:", conf.Table.PhysicalID).
		Summary("Hosted zone:", fmt.Sprintf("%s (%s)", conf.Zone.RequestedName, conf.Zone.ResolvedID)).
		AddItem(conf.Record.Hostname, recordContent(conf.Record)).
		FooterSuccessf("Record for %s written and verified %s", conf.Record.Hostname, ui.Took(ctx.Duration)).
		Display()
}

func writeJSON(w io.Writer, v provision.ConfirmationView) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func recordContent(v provision.ConfirmationView) string {
	return response.NewItemContent().
		Add(ui.Label("route_53_zone_id")+":", v.ZoneID).
		Add(ui.Label("route_53_record_ttl")+":", fmt.Sprintf("%d", v.TTL)).
		Add(ui.Label("shared_secret")+":", ui.Muted(v.SharedSecret)).
		String()
}
