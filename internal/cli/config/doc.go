// Package config defines the shopctl configuration (~/.shopfront/cli.yaml).
//
// Values are layered defaults < file < SHOP_* environment < flags; the
// first three are merged by Load, flags are applied by the command layer
// before Validate.
package config
