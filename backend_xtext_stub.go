//go:build l10n_noxtext

package l10n

// NativeNumberBackend returns nil when golang.org/x/text integration is disabled.
func NativeNumberBackend() NumberBackend { return nil }
