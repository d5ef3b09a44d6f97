package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/compact"
	"github.com/aretw0/compact/internal/presentation/graph"
	"github.com/aretw0/compact/internal/presentation/tui"
	httpAdapter "github.com/aretw0/compact/pkg/adapters/http"
	"github.com/aretw0/compact/pkg/adapters/memory"
	"github.com/aretw0/compact/pkg/dsl"
	"github.com/aretw0/compact/pkg/manifest"
	"github.com/aretw0/compact/pkg/observability"
	"github.com/aretw0/compact/pkg/session"
	"github.com/aretw0/compact/pkg/value"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"
)

// ReplayOptions configures Replay.
type ReplayOptions struct {
	Options
	Script   string // Action script file
	Headless bool   // Print only the final state
	JSON     bool   // Print the final state as JSON instead of YAML
}

// Replay applies an action script to the default state of a manifest and
// prints the final state to out. Unless headless, each step is traced first.
func Replay(opts ReplayOptions, out, errOut io.Writer) error {
	logger, err := createLogger(errOut, opts.Options)
	if err != nil {
		return err
	}
	engine, err := createEngine(opts.Options, logger)
	if err != nil {
		return err
	}
	steps, err := manifest.LoadScriptFile(opts.Script)
	if err != nil {
		return err
	}

	runner := compact.NewRunner(out)
	runner.Headless = opts.Headless
	state, err := runner.Run(engine, nil, steps)
	if err != nil {
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	}
	if !opts.Headless {
		fmt.Fprintln(out, "---")
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	return enc.Close()
}

// Types prints every dispatch key of a manifest, one per line.
func Types(opts Options, out, errOut io.Writer) error {
	logger, err := createLogger(errOut, opts)
	if err != nil {
		return err
	}
	engine, err := createEngine(opts, logger)
	if err != nil {
		return err
	}
	for _, t := range engine.Types() {
		fmt.Fprintln(out, t)
	}
	return nil
}

// DescribeOptions configures Describe.
type DescribeOptions struct {
	Options
	Raw bool // Print the Markdown source even on a terminal
}

// Describe prints a Markdown summary of a manifest: its slices and the
// action types they compile to. On a terminal the document is rendered.
func Describe(opts DescribeOptions, out, errOut io.Writer) error {
	logger, err := createLogger(errOut, opts.Options)
	if err != nil {
		return err
	}
	engine, err := createEngine(opts.Options, logger)
	if err != nil {
		return err
	}

	md := graph.GenerateMarkdown(engine.Name, engine.Definition())
	if opts.Raw || !tui.IsTerminal(out) {
		_, err = io.WriteString(out, md)
		return err
	}
	render, err := tui.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	rendered, err := render(md)
	if err != nil {
		return fmt.Errorf("failed to render description: %w", err)
	}
	_, err = io.WriteString(out, rendered)
	return err
}

// Graph prints the Mermaid diagram of a manifest. When script is set, the
// slices it changes are highlighted.
func Graph(opts Options, script string, out, errOut io.Writer) error {
	logger, err := createLogger(errOut, opts)
	if err != nil {
		return err
	}
	engine, err := createEngine(opts, logger)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if script != "" {
		steps, err := manifest.LoadScriptFile(script)
		if err != nil {
			return err
		}
		runner := &compact.Runner{Headless: true}
		state, err := runner.Run(engine, nil, steps)
		if err != nil {
			return err
		}
		overlay = &graph.GraphOverlay{Changed: value.Changes(engine.Default(), state)}
	}

	fmt.Fprint(out, graph.GenerateMermaid(engine.Definition(), overlay))
	return nil
}

// Validate checks a manifest for construction mistakes.
func Validate(opts Options, out, errOut io.Writer) error {
	logger, err := createLogger(errOut, opts)
	if err != nil {
		return err
	}
	engine, err := createEngine(opts, logger)
	if err != nil {
		return err
	}
	if err := dsl.Validate(engine.Definition()); err != nil {
		return err
	}
	fmt.Fprintf(out, "Manifest is valid! %d action types.\n", len(engine.Types()))
	return nil
}

// ServeOptions configures Serve.
type ServeOptions struct {
	Options
	Addr string
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, opts ServeOptions, out, errOut io.Writer) error {
	logger, err := createLogger(errOut, opts.Options)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return err
	}
	engine, err := createEngine(opts.Options, logger, metrics.Hooks())
	if err != nil {
		return err
	}

	manager := session.NewManager(engine, memory.NewStore(), session.WithLogger(logger))
	srv := &http.Server{
		Addr:    opts.Addr,
		Handler: httpAdapter.NewHandler(manager, httpAdapter.WithLogger(logger), httpAdapter.WithMetrics(reg)),
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	if tui.IsTerminal(out) {
		tui.PrintBanner(out)
	}
	fmt.Fprintf(out, "Starting compact server on %s (%s)\n", srv.Addr, engine.Name)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		fmt.Fprintln(out, "\nStart shutdown...")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(errOut, "Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
			if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		fmt.Fprintln(out, "compact server stopped gracefully")
		return nil
	}
}
