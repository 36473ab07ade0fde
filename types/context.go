package types

import (
	"io"
	"os"
)

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// AppContext holds application-wide context information passed to commands.
// Out and Err default to the process streams when left nil.
type AppContext struct {
	Version string
	Out     io.Writer
	Err     io.Writer
}

// VersionOrDefault returns the context version, tolerating a nil context.
func (c *AppContext) VersionOrDefault() string {
	if c == nil || c.Version == "" {
		return DefaultVersion
	}
	return c.Version
}

// Stdout returns the configured output stream.
func (c *AppContext) Stdout() io.Writer {
	if c == nil || c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Stderr returns the configured error stream.
func (c *AppContext) Stderr() io.Writer {
	if c == nil || c.Err == nil {
		return os.Stderr
	}
	return c.Err
}
