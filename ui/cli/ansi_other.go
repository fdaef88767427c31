//go:build !windows

package cli

// EnableANSI is a no-op: non-Windows terminals understand escape codes.
func EnableANSI() {}
