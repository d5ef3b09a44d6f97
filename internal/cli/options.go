// Package cli implements the commands of the compact binary.
package cli

// Options holds the flags shared by every command.
type Options struct {
	File     string // Manifest file, or a directory holding one
	LogLevel string // debug, info, warn or error
	Debug    bool   // Log every dispatch
}
