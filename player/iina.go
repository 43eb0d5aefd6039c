package player

import (
	"fmt"
	"os/exec"
	"runtime"
)

// IINA launches the macOS player through LaunchServices. It has no IPC, so
// position queries fail and progress is not tracked.
type IINA struct {
	cmd    *exec.Cmd
	exited chan struct{}
}

func NewIINA() *IINA {
	return &IINA{
		exited: make(chan struct{}),
	}
}

func iinaArgs(req Request) ([]string, error) {
	target, err := sanitizeMediaTarget(req.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid media target: %w", err)
	}

	args := []string{"-a", "IINA", target, "--args", "--mpv-force-media-title=" + sanitizeTitle(req.Title)}

	if len(req.Headers) > 0 {
		args = append(args, "--mpv-http-header-fields="+headerFields(req.Headers))
	}

	if req.Start > 0 {
		args = append(args, fmt.Sprintf("--mpv-start=%.0f", req.Start))
	}

	if req.Fullscreen {
		args = append(args, "--mpv-fullscreen")
	}

	return args, nil
}

func (i *IINA) Play(req Request) error {
	if runtime.GOOS != "darwin" {
		return fmt.Errorf("IINA is only supported on macOS")
	}

	args, err := iinaArgs(req)
	if err != nil {
		return err
	}

	i.cmd = exec.Command("open", args...)
	if err := i.cmd.Start(); err != nil {
		return fmt.Errorf("launch IINA: %w", err)
	}

	go func() {
		_ = i.cmd.Wait()
		close(i.exited)
	}()

	return nil
}

func (i *IINA) Wait() <-chan struct{} {
	return i.exited
}

var errNoIPC = fmt.Errorf("not supported by IINA")

func (i *IINA) Position() (float64, error) { return 0, errNoIPC }
func (i *IINA) Duration() (float64, error) { return 0, errNoIPC }
func (i *IINA) SetSpeed(float64) error      { return errNoIPC }
func (i *IINA) TogglePause() error          { return errNoIPC }

func (i *IINA) Close() error {
	if i.cmd != nil && i.cmd.Process != nil {
		return i.cmd.Process.Kill()
	}
	return nil
}
