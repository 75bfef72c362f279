package executor

import (
	"context"
	"encoding/json"
	"time"

	"dario.lol/hover/pkg/hover"
	"github.com/spf13/cobra"
)

// Context holds all execution state passed through steps
type Context struct {
	Cmd  *cobra.Command
	Args []string

	// Populated by With* methods
	Client     *hover.Client
	DomainID   string
	DomainName string

	Duration time.Duration
	Error    error

	data map[string]any
}

func newContext(cmd *cobra.Command, args []string) *Context {
	return &Context{
		Cmd:  cmd,
		Args: args,
		data: make(map[string]any),
	}
}

// Ctx returns the context the command was executed with.
func (c *Context) Ctx() context.Context {
	return CommandContext(c.Cmd)
}

func CommandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

// Set stores a typed value in the context
func Set[T any](ctx *Context, key Key[T], value T) {
	ctx.data[key.name] = value
}

// Get retrieves a typed value from the context. Values stored as raw JSON
// are unmarshalled to T on first access.
func Get[T any](ctx *Context, key Key[T]) T {
	var zero T
	v, ok := ctx.data[key.name]
	if !ok {
		return zero
	}

	if typed, ok := v.(T); ok {
		return typed
	}

	if raw, ok := v.(json.RawMessage); ok {
		var result T
		if err := json.Unmarshal(raw, &result); err == nil {
			ctx.data[key.name] = result
			return result
		}
	}

	return zero
}

func Has[T any](ctx *Context, key Key[T]) bool {
	_, ok := ctx.data[key.name]
	return ok
}
