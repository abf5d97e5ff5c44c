// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package metasetup runs applications whose components configure themselves
// from a hierarchical, dotted-path settings registry.
//
// Components declare defaults into their namespace of the global settings
// tree, see [settings.Global]. An [App] merges overrides from its sources and
// the command line into that tree before anything is built, and runtimes then
// project the final values onto themselves with [settings.ConfigureLayered].
//
// # Basic Usage
//
// Declare defaults for a component:
//
//	ns, _ := settings.Global("greeter.Greeter")
//	ns.Set("greeting", "hello")
//
// Expose the namespace on the command line and configure the component
// when it is built:
//
//	app := metasetup.New(
//	    metasetup.Settings("greeter.Greeter"),
//	    metasetup.WithRuntimeBuilderFunc(func(ctx context.Context) (metasetup.Runtime, error) {
//	        var g Greeter
//	        _, err := metasetup.RegistryFromContext(ctx).ConfigureLayered(&g, []string{"greeter.Greeter"})
//	        return g, err
//	    }),
//	)
//	err := app.Run(os.Args[1:]...)
//
// Running it with --greeter.Greeter greeting=hi overrides the default.
package metasetup
