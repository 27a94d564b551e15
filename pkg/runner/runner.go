package runner

import (
	"bytes"
	"context"
	"os"

	"github.com/dimiro1/banner"
)

type State int

const (
	StateNew State = iota
	StateStarting
	StateRunning
	StateDraining
	StateStopped
)

// Runner is a long-lived serving component with a blocking Run loop.
type Runner interface {
	Run(ctx context.Context) error
	Stop() error
	State() State
}

const EngineVersion = "dev"

func PrintBanner() {
	tpl := "{{ .Title \"KIRANA\" \"\" 0 }}\nVersion: " + EngineVersion + "\n"
	banner.Init(os.Stdout, true, true, bytes.NewBufferString(tpl))
}
