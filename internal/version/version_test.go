package version_test

import (
	"runtime"
	"strings"
	"testing"

	"github.com/tcimlab/estudios/internal/version"
)

func TestShort(t *testing.T) {
	if version.Short() == "" {
		t.Error("Short() should return non-empty string")
	}
}

func TestInfo(t *testing.T) {
	info := version.Info()

	if !strings.Contains(info, "estudios") {
		t.Error("Info() should contain 'estudios'")
	}

	if !strings.Contains(info, runtime.Version()) {
		t.Errorf("Info() should contain Go version %s", runtime.Version())
	}

	expectedArch := runtime.GOOS + "/" + runtime.GOARCH
	if !strings.Contains(info, expectedArch) {
		t.Errorf("Info() should contain OS/Arch %s", expectedArch)
	}

	for _, field := range []string{"Commit:", "Built:", "Go:", "OS/Arch:"} {
		if !strings.Contains(info, field) {
			t.Errorf("Info() should contain %s field", field)
		}
	}
}
