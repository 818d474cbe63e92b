// Package command defines the shopctl command tree on urfave/cli/v2.
//
//   - root.go: App, global flags, runtime setup and teardown
//   - env.go: the per-process runtime (config, logger, session store, API client)
//   - catalog.go: categories, products, nav
//   - auth.go: login, signup, logout, whoami, session, password
//   - shop.go: cart, wishlist, orders, search, suggest
//   - model.go: recommendation model reload and health
//   - config.go: config show, init, path
//   - shell.go: interactive shell, config watch, metrics endpoint
//   - version.go: build information
//
// Commands parse flags, call a client service through the shared API
// client and print through the output formatter selected by --output.
package command
