//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

// set by TestMain
var binPath = "carousel_e2e"

const (
	KeyRight   = "\x1b[C"
	KeyLeft    = "\x1b[D"
	KeyQuit    = "q"
	KeyCatalog = "L"

	// captured output kept per session
	scrollback = 1 << 20
)

// CSI, OSC, charset and keypad sequences plus carriage returns
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|(?:\x1b\][^\x07]*\x07)|(?:\x1b[\(\)][A-Za-z])|(?:\x1b=|\x1b>)|\r`,
)

// TUITestFramework runs the carousel binary on a 120x40 pseudo terminal
// and records what it draws
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	cmd       *exec.Cmd
	workspace string

	mu  sync.Mutex
	out []byte
}

func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{t: t, workspace: t.TempDir()}
}

// WriteFile creates a file in the test workspace and returns its path
func (tf *TUITestFramework) WriteFile(name, content string) (string, error) {
	p := filepath.Join(tf.workspace, name)
	return p, os.WriteFile(p, []byte(content), 0644)
}

// StartApp launches the carousel with its config and state isolated in
// the workspace
func (tf *TUITestFramework) StartApp(args ...string) error {
	tf.cmd = exec.Command(binPath, args...)
	tf.cmd.Dir = tf.workspace
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LANG=C.UTF-8",
		"HOME="+tf.workspace,
		"XDG_CONFIG_HOME="+filepath.Join(tf.workspace, "config"),
		"XDG_STATE_HOME="+filepath.Join(tf.workspace, "state"),
	)

	f, err := pty.StartWithSize(tf.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		return fmt.Errorf("failed to start carousel: %w", err)
	}
	tf.pty = f

	go tf.capture()
	return nil
}

func (tf *TUITestFramework) capture() {
	buf := make([]byte, 8192)
	for {
		n, err := tf.pty.Read(buf)
		if n > 0 {
			tf.mu.Lock()
			tf.out = append(tf.out, buf[:n]...)
			if len(tf.out) > scrollback {
				tf.out = tf.out[len(tf.out)-scrollback:]
			}
			tf.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// SendKeys writes raw input to the terminal
func (tf *TUITestFramework) SendKeys(keys string) error {
	_, err := tf.pty.Write([]byte(keys))
	return err
}

func (tf *TUITestFramework) Quit() error {
	return tf.SendKeys(KeyQuit)
}

// Mouse input uses SGR encoding, which is 1-based; x and y are 0-based
// cells as Bubble Tea reports them.

func (tf *TUITestFramework) MousePress(x, y int) error {
	return tf.SendKeys(fmt.Sprintf("\x1b[<0;%d;%dM", x+1, y+1))
}

func (tf *TUITestFramework) MouseDrag(x, y int) error {
	return tf.SendKeys(fmt.Sprintf("\x1b[<32;%d;%dM", x+1, y+1))
}

func (tf *TUITestFramework) MouseRelease(x, y int) error {
	return tf.SendKeys(fmt.Sprintf("\x1b[<0;%d;%dm", x+1, y+1))
}

// Ready waits for the logo of the first frame
func (tf *TUITestFramework) Ready() bool {
	return tf.waitPlain("atlys", 5*time.Second)
}

// SeePlain waits for text to appear once escape sequences are stripped
func (tf *TUITestFramework) SeePlain(text string) bool {
	return tf.waitPlain(text, 3*time.Second)
}

func (tf *TUITestFramework) waitPlain(text string, timeout time.Duration) bool {
	tf.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		tf.mu.Lock()
		plain := ansiRe.ReplaceAllString(string(tf.out), "")
		tf.mu.Unlock()
		if strings.Contains(plain, text) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// Reset drops captured output so later waits only see new frames
func (tf *TUITestFramework) Reset() {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	tf.out = tf.out[:0]
}

// Cleanup closes the terminal and kills the process if it still runs
func (tf *TUITestFramework) Cleanup() {
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
}
