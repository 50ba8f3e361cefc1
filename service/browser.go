package service

import (
	"fmt"
	"os/exec"
	"runtime"
)

// linuxOpeners are tried in order on systems without a single canonical
// open command.
var linuxOpeners = []string{"xdg-open", "gnome-open", "kde-open"}

// OpenReportFile shows a generated report in the default browser. absPath
// must be absolute so the file:// URL resolves regardless of the working
// directory.
func OpenReportFile(absPath string) error {
	return openURL("file://" + absPath)
}

func openURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return launch("open", url)
	case "windows":
		return launch("cmd", "/c", "start", url)
	case "linux":
		for _, opener := range linuxOpeners {
			if _, err := exec.LookPath(opener); err == nil {
				return launch(opener, url)
			}
		}
		return fmt.Errorf("no browser opener available")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// launch starts the command without waiting for the browser to exit.
func launch(name string, args ...string) error {
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", name, err)
	}
	return nil
}
