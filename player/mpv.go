package player

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iridum-cli/iridum/constant"
	"github.com/iridum-cli/iridum/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV talks to mpv over its JSON IPC socket.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	mu         sync.Mutex
	requestID  int
}

func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
	}
}

func mpvArgs(req Request, socketPath string) ([]string, error) {
	target, err := sanitizeMediaTarget(req.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid media target: %w", err)
	}

	title := sanitizeTitle(req.Title)
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--force-window=yes",
		"--input-ipc-server=" + socketPath,
		"--force-media-title=" + title,
		"--title=" + title,
	}

	if len(req.Headers) > 0 {
		args = append(args, "--http-header-fields="+headerFields(req.Headers))
	}

	if req.Start > 0 {
		args = append(args, fmt.Sprintf("--start=%.0f", req.Start))
	}

	if req.Fullscreen {
		args = append(args, "--fullscreen")
	}

	return append(args, target), nil
}

// Play starts mpv and waits until its socket accepts connections.
func (m *MPV) Play(req Request) error {
	if m.socketPath == "" {
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s.sock", constant.Iridum, uuid.NewString()[:8]))
	}

	args, err := mpvArgs(req, m.socketPath)
	if err != nil {
		return err
	}

	m.cmd = exec.Command("mpv", args...)
	m.cmd.SysProcAttr = sysProcAttr()

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warn("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return nil
}

func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			_ = conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) Position() (float64, error) {
	return m.floatProperty("time-pos")
}

func (m *MPV) Duration() (float64, error) {
	return m.floatProperty("duration")
}

func (m *MPV) SetSpeed(speed float64) error {
	return m.set("speed", speed)
}

func (m *MPV) TogglePause() error {
	_, err := m.command("cycle", "pause")
	return err
}

// Close asks mpv to quit and kills it if it does not within 3 seconds.
func (m *MPV) Close() error {
	if m.socketPath == "" || m.cmd == nil {
		return nil
	}

	_, _ = m.command("quit")

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

func (m *MPV) set(property string, value any) error {
	_, err := m.command("set_property", property, value)
	return err
}

func (m *MPV) floatProperty(name string) (float64, error) {
	data, err := m.command("get_property", name)
	if err != nil {
		return 0, err
	}

	value, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected number, got %T", name, data)
	}
	return value, nil
}

// sanitizeMediaTarget keeps anything that could be read as a flag away from mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	switch {
	case l == "":
		return "", fmt.Errorf("empty URL")
	case strings.ContainsAny(l, "\x00\n\r"):
		return "", fmt.Errorf("invalid control characters in URL")
	case strings.HasPrefix(l, "-"):
		return "", fmt.Errorf("url must not start with '-'")
	}

	u, err := url.Parse(l)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return l, nil
	default:
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
}
