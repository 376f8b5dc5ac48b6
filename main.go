package main

import (
	"github.com/mj1618/desktop-agent/cmd"
	_ "github.com/mj1618/desktop-agent/internal/platform/darwin"
)

func main() {
	cmd.Execute()
}
