package executor

import (
	"context"
	"time"

	"dario.lol/ddns/internal/awsclient"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

// Context holds all execution state passed through steps
type Context struct {
	Cmd  *cobra.Command
	Args []string

	// Populated by With* methods
	Clients *awsclient.Clients
	Log     logr.Logger

	Duration time.Duration
	Error    error

	ctx  context.Context
	data map[string]any
}

func newContext(cmd *cobra.Command, args []string) *Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		Cmd:  cmd,
		Args: args,
		Log:  logr.Discard(),
		ctx:  ctx,
		data: make(map[string]any),
	}
}

// Context returns the command's context for AWS calls.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Set stores a typed value in the context
func Set[T any](ctx *Context, key Key[T], value T) {
	ctx.data[key.name] = value
}

// Get retrieves a typed value, or the zero value if the key was never set.
func Get[T any](ctx *Context, key Key[T]) T {
	v, ok := ctx.data[key.name].(T)
	if !ok {
		var zero T
		return zero
	}
	return v
}

// Has checks if a key exists in the context
func Has[T any](ctx *Context, key Key[T]) bool {
	_, ok := ctx.data[key.name]
	return ok
}
