// Package output renders command results for shopctl.
//
// Formats are table (default, with a wide variant for extra columns), json
// and yaml. Table rendering reflects over structs: the json tag names the
// column, `table:"wide"` hides a column unless wide output is requested and
// `table:"-"` hides it always. YAML keeps the field order of the json
// encoding.
package output
