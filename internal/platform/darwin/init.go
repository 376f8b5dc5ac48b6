//go:build darwin && cgo

package darwin

import "github.com/mj1618/desktop-agent/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Accessibility: NewAccessibility(),
			Apps:          NewWorkspace(),
			Inputter:      NewInputter(),
			Screen:        MainDisplay{},
		}, nil
	}
	platform.CheckPermissionsFunc = CheckAccessibilityPermission
}
