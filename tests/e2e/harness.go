package e2e

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"syscall"
	"testing"
	"time"
)

// serverFixture is one running server instance a test talks to. restart
// is nil unless the fixture controls the server process.
type serverFixture struct {
	BaseURL string
	restart func(t *testing.T)
	stop    func()
}

func (f *serverFixture) Close() {
	if f.stop != nil {
		f.stop()
	}
}

// startServer picks the fixture from the environment. KV_SERVER_CMD
// launches a fresh process per test with its own data dir, which is what
// restart scenarios need. KV_SERVER_URL points the suite at an already
// running server instead. With neither set, a stub that answers 501
// keeps the suite compiling and visibly failing.
func startServer(t *testing.T) *serverFixture {
	t.Helper()

	if cmdline := os.Getenv("KV_SERVER_CMD"); cmdline != "" {
		return launchManagedServer(t, cmdline)
	}

	if target := os.Getenv("KV_SERVER_URL"); target != "" {
		t.Logf("running against existing server %s", target)
		return &serverFixture{BaseURL: target}
	}

	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotImplemented)
		_, _ = w.Write([]byte(`{"message":"no server under test"}`))
	}))
	t.Log("KV_SERVER_CMD not set; tests run against a 501 stub")
	return &serverFixture{BaseURL: stub.URL, stop: stub.Close}
}

// launchManagedServer starts the command under a reserved address and a
// per-test data dir, waits for /health, and wires up restart. The child
// leads its own process group so stop and restart reach the server even
// when /bin/sh forks the command instead of exec'ing it. A restart stops
// the group with SIGTERM so the server flushes its journal, and once the
// address goes quiet relaunches against the same address and data dir so
// the journal replays.
func launchManagedServer(t *testing.T, cmdline string) *serverFixture {
	t.Helper()

	dataDir := t.TempDir()
	addr := reserveAddr(t)
	baseURL := "http://" + addr

	boot := func() (*exec.Cmd, error) {
		cmd := exec.Command("/bin/sh", "-c", cmdline)
		cmd.Env = append(os.Environ(), "KV_HTTP_ADDR="+addr, "KV_DATA_DIR="+dataDir)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("start %q: %w", cmdline, err)
		}
		if err := waitForHealthy(baseURL, 10*time.Second); err != nil {
			_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
			_, _ = cmd.Process.Wait()
			return nil, err
		}
		return cmd, nil
	}

	cmd, err := boot()
	if err != nil {
		t.Fatalf("launch server: %v", err)
	}

	// terminate signals the whole group, not just the direct child, and
	// only returns once the address stops answering. A relaunch before
	// that point would lose the bind race to the old server and get its
	// health checks answered by it.
	terminate := func() error {
		if cmd == nil || cmd.Process == nil {
			return nil
		}
		pgid := cmd.Process.Pid
		_ = syscall.Kill(-pgid, syscall.SIGTERM)
		_, _ = cmd.Process.Wait()
		if err := waitForStopped(baseURL, 10*time.Second); err != nil {
			_ = syscall.Kill(-pgid, syscall.SIGKILL)
			return waitForStopped(baseURL, 2*time.Second)
		}
		return nil
	}

	return &serverFixture{
		BaseURL: baseURL,
		restart: func(t *testing.T) {
			t.Helper()
			if err := terminate(); err != nil {
				t.Fatalf("stop server: %v", err)
			}
			next, err := boot()
			if err != nil {
				t.Fatalf("relaunch server: %v", err)
			}
			cmd = next
		},
		stop: func() { _ = terminate() },
	}
}

// waitForHealthy polls /health until the server answers or the timeout
// passes. Any transport error counts as "not up yet".
func waitForHealthy(baseURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("server at %s not healthy within %s", baseURL, timeout)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// waitForStopped polls /health until connections start failing, which
// marks the old process group gone and the address free to rebind.
func waitForStopped(baseURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		resp, err := http.Get(baseURL + "/health")
		if err != nil {
			return nil
		}
		resp.Body.Close()
		if time.Now().After(deadline) {
			return fmt.Errorf("server at %s still answering after %s", baseURL, timeout)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// reserveAddr grabs a free loopback port and releases it for the server
// to bind. The window between release and rebind is unguarded but fine
// for a single-machine test run.
func reserveAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	addr := l.Addr().String()
	_ = l.Close()
	return addr
}
