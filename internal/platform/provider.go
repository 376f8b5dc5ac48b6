package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Accessibility Accessibility
	Apps          Apps
	Inputter      Inputter
	Screen        Screen
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("desktop-agent is not supported on %s/%s; supported: darwin/amd64, darwin/arm64", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go for the macOS registration.
var NewProviderFunc func() (*Provider, error)

// CheckPermissionsFunc is set by platform-specific packages via init().
// It reports whether the process may use the accessibility service.
var CheckPermissionsFunc func() error

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}

// CheckPermissions runs the registered permission check, if any.
func CheckPermissions() error {
	if CheckPermissionsFunc == nil {
		return nil
	}
	return CheckPermissionsFunc()
}
