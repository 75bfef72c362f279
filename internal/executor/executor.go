package executor

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Executor runs a read-only command: it sets up a client, fetches a result
// and hands it to a display function. Results may be served from the cache.
type Executor[S any, T any] struct {
	cmd             *cobra.Command
	args            []string
	setup           func() (S, error)
	fetchingMessage string
	fetch           func(setupResult S, cmd *cobra.Command, args []string, progress chan<- string) (T, error)
	display         func(data T, fetchDuration time.Duration, err error)
	cachesFunc      func(cmd *cobra.Command, args []string, result T) []string
	invalidatesFunc func(cmd *cobra.Command, args []string, result T) []string
	skipCache       bool
}

type Builder[S any, T any] struct {
	executor *Executor[S, T]
}

func NewBuilder[S any, T any]() *Builder[S, T] {
	return &Builder[S, T]{executor: &Executor[S, T]{}}
}

// Setup runs before the fetch without a spinner, so task may prompt.
func (b *Builder[S, T]) Setup(task func() (S, error)) *Builder[S, T] {
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

// Caches enables caching of the fetch result. task returns the tags the
// entry is filed under; an empty list stores nothing.
func (b *Builder[S, T]) Caches(task func(cmd *cobra.Command, args []string, result T) []string) *Builder[S, T] {
	b.executor.cachesFunc = task
	return b
}

func (b *Builder[S, T]) Invalidates(task func(cmd *cobra.Command, args []string, result T) []string) *Builder[S, T] {
	b.executor.invalidatesFunc = task
	return b
}

func (b *Builder[S, T]) SkipCache(skip bool) *Builder[S, T] {
	b.executor.skipCache = skip
	return b
}

func (b *Builder[S, T]) Build() *Executor[S, T] {
	if b.executor.fetch == nil || b.executor.display == nil {
		panic("Executor is not fully configured: Fetch and Display are required.")
	}
	return b.executor
}

func (e *Executor[S, T]) CobraRun() func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		e.Execute(cmd, args)
	}
}

func (e *Executor[S, T]) cacheable() bool {
	return e.cachesFunc != nil && e.invalidatesFunc == nil && cachingEnabled()
}

func (e *Executor[S, T]) Execute(cmd *cobra.Command, args []string) {
	e.cmd = cmd
	e.args = args

	var zeroT T
	writer := bufio.NewWriter(os.Stdout)

	var cacheKey string
	if e.cacheable() {
		cacheKey = generateCacheKey(cmd, args)
		if !e.skipCache && !noCacheRequested(cmd) {
			var cached T
			if loadCached(cacheKey, &cached) {
				e.display(cached, 0, nil)
				return
			}
		}
	}

	var setupResult S
	if e.setup != nil {
		var err error
		if setupResult, err = e.setup(); err != nil {
			e.display(zeroT, 0, err)
			return
		}
	}

	fmt.Fprintln(writer)
	_ = writer.Flush()

	fetchResult, fetchDuration, fetchErr := runStageWithProgress(writer, e.fetchingMessage, func(p chan<- string) (T, error) {
		return e.fetch(setupResult, cmd, args, p)
	})

	if fetchErr == nil {
		if e.invalidatesFunc != nil {
			invalidate(e.invalidatesFunc(cmd, args, fetchResult))
		} else if cacheKey != "" {
			if tags := e.cachesFunc(cmd, args, fetchResult); len(tags) > 0 {
				_ = storeCached(cacheKey, fetchResult, tags)
			}
		}
	}

	e.display(fetchResult, fetchDuration, fetchErr)
}
