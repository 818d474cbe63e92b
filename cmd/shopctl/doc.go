// Package main provides the entry point for shopctl.
//
// shopctl is the command-line storefront client. It runs one command per
// invocation or, with `shopctl shell`, an interactive session whose prompt
// follows the current page path.
package main
