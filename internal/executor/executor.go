package executor

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"dario.lol/ddns/internal/awsclient"
	"dario.lol/ddns/internal/config"
	"dario.lol/ddns/internal/flags"
	"dario.lol/ddns/internal/logging"
	"github.com/spf13/cobra"
)

// ReportedError is returned from a command after its error has already been
// displayed. The root command exits non-zero without printing it again.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

type step struct {
	message string
	silent  bool
	run     func(ctx *Context, progress chan<- string) error
}

// ContextBuilder constructs an executor pipeline with context
type ContextBuilder struct {
	steps     []step
	displayFn func(ctx *Context)
	out       io.Writer
	logOut    io.Writer
}

func New() *ContextBuilder {
	return &ContextBuilder{out: os.Stdout, logOut: os.Stderr}
}

// Output redirects spinner output. Spinners are only drawn on terminals.
func (b *ContextBuilder) Output(w io.Writer) *ContextBuilder {
	b.out = w
	return b
}

// WithClients adds a step that loads the configuration and creates the AWS
// clients.
func (b *ContextBuilder) WithClients() *ContextBuilder {
	b.steps = append(b.steps, step{
		message: "Loading AWS configuration",
		run: func(ctx *Context, _ chan<- string) error {
			clients, err := LoadClients(ctx.Cmd)
			if err != nil {
				return err
			}
			ctx.Clients = clients
			return nil
		},
		silent: true,
	})
	return b
}

// LoadClients reads the saved configuration and builds the AWS clients for
// cmd, honouring the global AWS flags.
func LoadClients(cmd *cobra.Command) (*awsclient.Clients, error) {
	if err := config.LoadConfig(); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return awsclient.New(ctx, flags.AWSOptions(cmd, config.Cfg))
}

// Step adds a typed step to the pipeline
func (b *ContextBuilder) Step(s StepRunner) *ContextBuilder {
	b.steps = append(b.steps, step{
		message: s.getMessage(),
		silent:  s.isSilent(),
		run:     s.run,
	})
	return b
}

// Display sets the function that renders the outcome, success or failure.
func (b *ContextBuilder) Display(fn func(ctx *Context)) *ContextBuilder {
	b.displayFn = fn
	return b
}

// RunE returns a cobra RunE function. A failed pipeline is displayed and
// then returned as a *ReportedError.
func (b *ContextBuilder) RunE() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := newContext(cmd, args)
		ctx.Log = logging.New(flags.Verbose(cmd), b.logOut)
		b.execute(ctx)
		if ctx.Error != nil {
			return &ReportedError{Err: ctx.Error}
		}
		return nil
	}
}

func (b *ContextBuilder) execute(ctx *Context) {
	sp := newSpinnerWriter(b.out)
	sp.begin()
	start := time.Now()

	for _, s := range b.steps {
		var err error
		if s.message != "" && !s.silent {
			err = sp.run(s.message, func(progress chan<- string) error {
				return s.run(ctx, progress)
			})
		} else {
			err = s.run(ctx, nil)
		}
		if err != nil {
			ctx.Error = err
			break
		}
	}

	ctx.Duration = time.Since(start)
	sp.clear()
	if b.displayFn != nil {
		b.displayFn(ctx)
	}
}
