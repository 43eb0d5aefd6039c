package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/iridum-cli/iridum/color"
	"github.com/iridum-cli/iridum/constant"
	"github.com/iridum-cli/iridum/icon"
	"github.com/iridum-cli/iridum/style"
)

// CheckDependency exits when the executable dep is not in PATH.
func CheckDependency(dep string) {
	if _, err := exec.LookPath(dep); err != nil {
		printMissingDependencyError(dep)
		os.Exit(1)
	}
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install " + dep
	case constant.Linux:
		installCmd = "sudo apt install " + dep
	case constant.Windows:
		installCmd = "scoop install " + dep
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.ErrorTitle(fmt.Sprintf("%s Missing dependency", icon.Get(icon.Fail)))
	body := style.Fg(color.White)(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(color.Purple).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
