// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package metasetup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/z5labs/metasetup/internal/try"
	"github.com/z5labs/metasetup/override"
	"github.com/z5labs/metasetup/settings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Runtime represents the entry point for user specific code.
// By the time a Runtime is run, every setting override has been
// merged into the global settings, so it only needs to configure
// itself from the Registry it was built with.
type Runtime interface {
	Run(context.Context) error
}

// RuntimeFunc is a functional implementation of the Runtime interface.
type RuntimeFunc func(context.Context) error

// Run implements the Runtime interface.
func (f RuntimeFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Lifecycle provides the ability to hook into certain points of
// the App.Run process.
type Lifecycle struct {
	preRunHooks  []func(context.Context) error
	postRunHooks []func(context.Context) error
}

// PreRun registers hooks to be called after the overrides are merged and before Runtime.Run is called.
func (l *Lifecycle) PreRun(hooks ...func(context.Context) error) {
	l.preRunHooks = append(l.preRunHooks, hooks...)
}

// PostRun registers hooks to be called after Runtime.Run has completed successfully.
func (l *Lifecycle) PostRun(hooks ...func(context.Context) error) {
	l.postRunHooks = append(l.postRunHooks, hooks...)
}

type contextKey string

var (
	registryContextKey  = contextKey("registryContextKey")
	lifecycleContextKey = contextKey("lifecycleContextKey")
)

// RegistryFromContext extracts the *settings.Registry from the given context.Context.
// It falls back to [settings.Default] if none is present.
func RegistryFromContext(ctx context.Context) *settings.Registry {
	r, ok := ctx.Value(registryContextKey).(*settings.Registry)
	if !ok {
		return settings.Default()
	}
	return r
}

// LifecycleFromContext extracts a *Lifecycle from the given context.Context if it's present.
func LifecycleFromContext(ctx context.Context) *Lifecycle {
	l, _ := ctx.Value(lifecycleContextKey).(*Lifecycle)
	return l
}

// RuntimeBuilder represents anything which can initialize a Runtime.
type RuntimeBuilder interface {
	Build(context.Context) (Runtime, error)
}

// RuntimeBuilderFunc is a functional implementation of
// the RuntimeBuilder interface.
type RuntimeBuilderFunc func(context.Context) (Runtime, error)

// Build implements the RuntimeBuilder interface.
func (f RuntimeBuilderFunc) Build(ctx context.Context) (Runtime, error) {
	return f(ctx)
}

// Option are used to configure an App.
type Option func(*App)

// Name configures the name of the application.
func Name(name string) Option {
	return func(a *App) {
		a.name = name
	}
}

// WithRegistry configures the Registry overrides are merged into.
// By default, [settings.Default] is used.
func WithRegistry(r *settings.Registry) Option {
	return func(a *App) {
		a.registry = r
	}
}

// WithLogger configures the logger used by the App.
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		a.log = logger
	}
}

// Settings registers a repeatable --name key=value command line flag
// for each of the given settings namespaces.
func Settings(names ...string) Option {
	return func(a *App) {
		a.settingNames = append(a.settingNames, names...)
	}
}

// Overrides registers override sources with the application. Sources are
// applied in the order given and command line flags are always applied last.
func Overrides(srcs ...override.Source) Option {
	return func(a *App) {
		a.srcs = append(a.srcs, srcs...)
	}
}

// WithRuntimeBuilder registers the given RuntimeBuilder with the App.
func WithRuntimeBuilder(rb RuntimeBuilder) Option {
	return func(a *App) {
		a.rbs = append(a.rbs, rb)
	}
}

// WithRuntimeBuilderFunc registers the given function as a RuntimeBuilder.
func WithRuntimeBuilderFunc(f func(context.Context) (Runtime, error)) Option {
	return func(a *App) {
		a.rbs = append(a.rbs, RuntimeBuilderFunc(f))
	}
}

// Hooks allows you to register multiple lifecycle hooks.
func Hooks(fs ...func(*Lifecycle)) Option {
	return func(a *App) {
		for _, f := range fs {
			f(&a.life)
		}
	}
}

// App handles the startup of a configurable application.
// App is responsible for the following:
//   - Parsing setting overrides from its sources and the command line
//   - Merging the overrides into the global settings before anything runs
//   - Calling your lifecycle hooks at the appropriate times
//   - Running your Runtime(s) and propogating any OS interrupts
//     via context.Context cancellation
type App struct {
	name         string
	registry     *settings.Registry
	log          *zap.Logger
	settingNames []string
	srcs         []override.Source
	rbs          []RuntimeBuilder
	life         Lifecycle
}

// New returns a fully initialized App.
func New(opts ...Option) *App {
	var name string
	if len(os.Args) > 0 {
		name = filepath.Base(os.Args[0])
	}
	app := &App{
		name:     name,
		registry: settings.Default(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Run executes the application with the given command line arguments.
// It also handles listening for interrupts from the underlying OS and
// terminates the application when one is received.
func (app *App) Run(args ...string) error {
	cmd, err := buildCmd(app)
	if err != nil {
		return err
	}
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return cmd.ExecuteContext(ctx)
}

// OverridesError occurs when the setting overrides fail to be read or merged.
type OverridesError struct {
	Cause error
}

// Error implements the error interface.
func (e OverridesError) Error() string {
	return fmt.Sprintf("failed to apply setting overrides: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e OverridesError) Unwrap() error {
	return e.Cause
}

var errNilRuntime = errors.New("nil runtime")

func buildCmd(app *App) (*cobra.Command, error) {
	var rt Runtime

	cmd := &cobra.Command{
		Use:           app.name,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := override.NewFlags(cmd.Flags())
	for _, name := range app.settingNames {
		err := flags.Add(name, "")
		if err != nil {
			return nil, err
		}
	}

	cmd.PreRunE = func(cmd *cobra.Command, args []string) (err error) {
		defer try.Recover(&err)

		srcs := make([]override.Source, 0, len(app.srcs)+1)
		srcs = append(srcs, app.srcs...)
		srcs = append(srcs, flags)

		overrides, err := override.Read(srcs...)
		if err != nil {
			return OverridesError{Cause: err}
		}
		app.registry.Root().Merge(overrides)
		app.log.Info("merged setting overrides", zap.Strings("keys", overrides.Keys()))

		ctx := context.WithValue(cmd.Context(), registryContextKey, app.registry)
		ctx = context.WithValue(ctx, lifecycleContextKey, &app.life)
		cmd.SetContext(ctx)

		rs := make([]Runtime, len(app.rbs))
		for i, rb := range app.rbs {
			r, err := rb.Build(ctx)
			if err != nil {
				return err
			}
			if r == nil {
				return errNilRuntime
			}
			rs[i] = r
		}
		switch len(rs) {
		case 0:
		case 1:
			rt = rs[0]
		default:
			rt = &MultiRuntime{rs: rs}
		}

		return runHooks(ctx, app.life.preRunHooks)
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
		defer try.Recover(&err)

		if rt == nil {
			return nil
		}
		return rt.Run(cmd.Context())
	}

	cmd.PostRunE = func(cmd *cobra.Command, args []string) (err error) {
		defer try.Recover(&err)

		return runHooks(cmd.Context(), app.life.postRunHooks)
	}

	return cmd, nil
}

func runHooks(ctx context.Context, hooks []func(context.Context) error) error {
	var errs []error
	for _, f := range hooks {
		err := f(ctx)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
