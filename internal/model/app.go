package model

// App identifies a running application.
type App struct {
	PID      int    `yaml:"pid"       json:"pid"`
	Name     string `yaml:"name"      json:"name"`
	BundleID string `yaml:"bundle_id" json:"bundle_id"`
}
