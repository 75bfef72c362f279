package executor

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"dario.lol/hover/internal/hoverapi"
	"github.com/spf13/cobra"
)

type step struct {
	message string
	silent  bool
	run     func(ctx *Context, progress chan<- string) error
}

// ContextBuilder constructs a step pipeline for commands that change state.
type ContextBuilder struct {
	steps           []step
	displayFn       func(ctx *Context)
	invalidatesFunc func(ctx *Context) []string
}

func New() *ContextBuilder {
	return &ContextBuilder{}
}

// WithClient adds a step that creates and stores the Hover client
func (b *ContextBuilder) WithClient() *ContextBuilder {
	b.steps = append(b.steps, step{
		message: "Loading configuration",
		run: func(ctx *Context, _ chan<- string) error {
			client, err := hoverapi.NewClient()
			if err != nil {
				return err
			}
			ctx.Client = client
			return nil
		},
		silent: true,
	})
	return b
}

// WithDomain adds a step that resolves the first argument into a domain ID
// and name.
func (b *ContextBuilder) WithDomain() *ContextBuilder {
	b.steps = append(b.steps, step{
		message: "Resolving domain",
		run: func(ctx *Context, _ chan<- string) error {
			if len(ctx.Args) == 0 {
				return fmt.Errorf("a domain is required")
			}
			id, name, err := hoverapi.LookupDomain(ctx.Ctx(), ctx.Client, ctx.Args[0])
			if err != nil {
				return fmt.Errorf("error finding domain: %w", err)
			}
			ctx.DomainID = id
			ctx.DomainName = name
			return nil
		},
	})
	return b
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

func (b *ContextBuilder) Display(fn func(ctx *Context)) *ContextBuilder {
	b.displayFn = fn
	return b
}

// Invalidates sets the cache tags dropped after a successful run
func (b *ContextBuilder) Invalidates(fn func(ctx *Context) []string) *ContextBuilder {
	b.invalidatesFunc = fn
	return b
}

// Run returns a cobra run function
func (b *ContextBuilder) Run() func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		b.execute(cmd, args)
	}
}

func (b *ContextBuilder) execute(cmd *cobra.Command, args []string) {
	ctx := newContext(cmd, args)
	writer := bufio.NewWriter(os.Stdout)
	fmt.Fprintln(writer)

	start := time.Now()
	ctx.Error = b.runSteps(ctx, writer)
	ctx.Duration = time.Since(start)
	_ = writer.Flush()

	if ctx.Error == nil && b.invalidatesFunc != nil {
		invalidate(b.invalidatesFunc(ctx))
	}

	if b.displayFn != nil {
		b.displayFn(ctx)
	}
}

func (b *ContextBuilder) runSteps(ctx *Context, writer *bufio.Writer) error {
	for _, s := range b.steps {
		task := func(progress chan<- string) (struct{}, error) {
			return struct{}{}, s.run(ctx, progress)
		}

		var err error
		if s.message == "" || s.silent {
			_, _, err = runSilently(task)
		} else {
			_, _, err = runStageWithProgress(writer, s.message, task)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
