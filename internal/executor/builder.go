package executor

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Executor runs a setup stage and a fetch stage, then hands the result to a
// display function.
type Executor[S any, T any] struct {
	setupMessage    string
	setup           func(cmd *cobra.Command) (S, error)
	fetchingMessage string
	fetch           func(setupResult S, cmd *cobra.Command, args []string, progress chan<- string) (T, error)
	display         func(data T, fetchDuration time.Duration, err error)
	out             io.Writer
}

type Builder[S any, T any] struct {
	executor *Executor[S, T]
}

func NewBuilder[S any, T any]() *Builder[S, T] {
	return &Builder[S, T]{executor: &Executor[S, T]{out: os.Stdout}}
}

func (b *Builder[S, T]) Setup(message string, task func(*cobra.Command) (S, error)) *Builder[S, T] {
	b.executor.setupMessage = message
	b.executor.setup = task
	return b
}

func (b *Builder[S, T]) Fetch(message string, task func(S, *cobra.Command, []string, chan<- string) (T, error)) *Builder[S, T] {
	b.executor.fetchingMessage = message
	b.executor.fetch = task
	return b
}

func (b *Builder[S, T]) Display(displayFunc func(T, time.Duration, error)) *Builder[S, T] {
	b.executor.display = displayFunc
	return b
}

func (b *Builder[S, T]) Output(w io.Writer) *Builder[S, T] {
	b.executor.out = w
	return b
}

func (b *Builder[S, T]) Build() *Executor[S, T] {
	if b.executor.fetch == nil || b.executor.display == nil {
		panic("Executor is not fully configured: Fetch and Display are required.")
	}
	return b.executor
}

// RunE returns a cobra RunE function; failures are displayed and returned
// as a *ReportedError.
func (e *Executor[S, T]) RunE() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := e.Execute(cmd, args); err != nil {
			return &ReportedError{Err: err}
		}
		return nil
	}
}

func (e *Executor[S, T]) Execute(cmd *cobra.Command, args []string) error {
	var zeroT T
	sp := newSpinnerWriter(e.out)
	sp.begin()

	var setupResult S
	if e.setup != nil {
		err := sp.run(e.setupMessage, func(chan<- string) error {
			var err error
			setupResult, err = e.setup(cmd)
			return err
		})
		if err != nil {
			e.display(zeroT, 0, err)
			return err
		}
	}

	var fetchResult T
	start := time.Now()
	err := sp.run(e.fetchingMessage, func(progress chan<- string) error {
		var err error
		fetchResult, err = e.fetch(setupResult, cmd, args, progress)
		return err
	})
	fetchDuration := time.Since(start)
	sp.clear()

	e.display(fetchResult, fetchDuration, err)
	return err
}
