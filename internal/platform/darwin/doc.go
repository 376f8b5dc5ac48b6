// Package darwin provides macOS platform support using the Accessibility,
// CoreGraphics, and AppKit APIs. All functionality requires CGo; on other
// platforms, or when CGo is disabled, the package is empty and nothing is
// registered.
package darwin
