package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/issue-battleships/internal/api"
	"github.com/mcoot/issue-battleships/internal/factory"
	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/auth"
	"github.com/mcoot/issue-battleships/internal/web"
)

const (
	testOwner = "captain"
	testAdmin = "admiral"
	testToken = "bsk_e2e-token"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	stateDir   string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "battleships-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/battleships")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		stateDir:   filepath.Join(t.TempDir(), "state"),
	}
}

// exec runs the binary and returns stdout; stderr is folded into the error
func (r *cliRunner) exec(args ...string) (string, error) {
	cmd := exec.Command(r.binaryPath, args...)
	cmd.Env = append(os.Environ(), "STORAGE_TYPE=", "API_TOKEN_HASH=", "AUTO_RESET=")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		return stdout.String(), &runError{err: err, stderr: stderr.String()}
	}
	return stdout.String(), nil
}

// local runs a command against file state in a temp dir
func (r *cliRunner) local(args ...string) (string, error) {
	return r.exec(append([]string{
		"--storage", "file",
		"--state-dir", r.stateDir,
		"--owner", testOwner,
		"--admins", testAdmin,
		"--output", "json",
	}, args...)...)
}

// remote runs a remote subcommand against the test server
func (r *cliRunner) remote(token string, args ...string) (string, error) {
	fullArgs := append([]string{"--output", "json", "remote", "--server", r.serverURL}, args...)
	if token != "" {
		fullArgs = append(fullArgs, "--token", token)
	}
	return r.exec(fullArgs...)
}

type runError struct {
	err    error
	stderr string
}

func (e *runError) Error() string {
	return e.err.Error() + ": " + e.stderr
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	hash, err := auth.HashToken(testToken)
	require.NoError(t, err)

	// Create application
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{
		Logger:       logger,
		StorageType:  factory.StorageTypeMemory,
		Owner:        testOwner,
		Admins:       []model.PlayerHandle{testAdmin},
		APITokenHash: hash,
	})
	require.NoError(t, err)

	// Create routers
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		AuthService:        app.AuthService,
		GameController:     app.GameController,
		LeaderboardService: app.LeaderboardService,
		RenderService:      app.RenderService,
		BotService:         app.BotService,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:             logger,
		GameController:     app.GameController,
		LeaderboardService: app.LeaderboardService,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type replyResponse struct {
	Command string `json:"command"`
	Reply   string `json:"reply"`
	Error   string `json:"error"`
	Move    *struct {
		Player     string `json:"player"`
		Coordinate string `json:"coordinate"`
		Outcome    string `json:"outcome"`
	} `json:"move"`
	Reset *struct {
		Round int `json:"round"`
	} `json:"reset"`
}

type moveResponse struct {
	Result struct {
		Player     string `json:"player"`
		Coordinate string `json:"coordinate"`
		Outcome    string `json:"outcome"`
	} `json:"result"`
	Reply string `json:"reply"`
}

type gameResponse struct {
	Game *struct {
		Round      int      `json:"round"`
		Status     string   `json:"status"`
		TotalMoves int      `json:"total_moves"`
		Board      []string `json:"board"`
	} `json:"game"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type tokenResponse struct {
	Token string `json:"token"`
	Hash  string `json:"hash"`
}

// Tests

func TestCLI_LocalMoveFlow(t *testing.T) {
	cli := newCLIRunner(t, "")

	// First move creates the game
	output, err := cli.local("move", "--player", "alice", "--title", "Move: B4")
	require.NoError(t, err, "output: %s", output)

	var reply replyResponse
	require.NoError(t, json.Unmarshal([]byte(output), &reply))
	require.NotNil(t, reply.Move)
	assert.Equal(t, "move", reply.Command)
	assert.Equal(t, "B4", reply.Move.Coordinate)
	assert.Contains(t, []string{"hit", "miss"}, reply.Move.Outcome)
	assert.NotEmpty(t, reply.Reply)

	// Cooldown rejection still exits 0 with a reply
	output, err = cli.local("move", "--player", "alice", "--body", "/move C4")
	require.NoError(t, err, "output: %s", output)
	reply = replyResponse{}
	require.NoError(t, json.Unmarshal([]byte(output), &reply))
	assert.Nil(t, reply.Move)
	assert.Contains(t, reply.Reply, "slow down")
	assert.NotEmpty(t, reply.Error)

	// Someone else may fire immediately, but not at the same cell
	output, err = cli.local("move", "--player", "bob", "--title", "Move: b4")
	require.NoError(t, err, "output: %s", output)
	reply = replyResponse{}
	require.NoError(t, json.Unmarshal([]byte(output), &reply))
	assert.Contains(t, reply.Reply, "already played")

	// State survives between invocations
	output, err = cli.local("show")
	require.NoError(t, err, "output: %s", output)
	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	require.NotNil(t, game.Game)
	assert.Equal(t, 1, game.Game.TotalMoves)
	assert.Len(t, game.Game.Board, 10)
}

func TestCLI_LocalReset(t *testing.T) {
	cli := newCLIRunner(t, "")

	output, err := cli.local("move", "--player", "alice", "--title", "Move: A1")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.local("move", "--player", testAdmin, "--title", "reset game")
	require.NoError(t, err, "output: %s", output)

	var reply replyResponse
	require.NoError(t, json.Unmarshal([]byte(output), &reply))
	assert.Equal(t, "reset", reply.Command)
	require.NotNil(t, reply.Reset)
	assert.Equal(t, 2, reply.Reset.Round)

	output, err = cli.local("round", "1")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, `"number": 1`)
}

func TestCLI_FatalErrorExitsNonZero(t *testing.T) {
	cli := newCLIRunner(t, "")

	_, err := cli.local("round", "5")
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
}

func TestCLI_HashToken(t *testing.T) {
	cli := newCLIRunner(t, "")

	output, err := cli.exec("--output", "json", "hash-token")
	require.NoError(t, err, "output: %s", output)

	var resp tokenResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(resp.Hash), []byte(resp.Token)))
}

func TestCLI_RemoteHealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.remote("", "health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_RemoteFire(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Without the token the server refuses
	output, err := cli.remote("", "fire", "E5", "--player", "alice")
	require.Error(t, err, "output: %s", output)

	output, err = cli.remote(testToken, "fire", "E5", "--player", "alice")
	require.NoError(t, err, "output: %s", output)

	var move moveResponse
	require.NoError(t, json.Unmarshal([]byte(output), &move))
	assert.Equal(t, "alice", move.Result.Player)
	assert.Equal(t, "E5", move.Result.Coordinate)
	assert.NotEmpty(t, move.Reply)

	// Cooldown comes back as a reply, not a failure
	output, err = cli.remote(testToken, "fire", "E6", "--player", "alice")
	require.NoError(t, err, "output: %s", output)
	var reply replyResponse
	require.NoError(t, json.Unmarshal([]byte(output), &reply))
	assert.Contains(t, reply.Reply, "slow down")

	output, err = cli.remote("", "game")
	require.NoError(t, err, "output: %s", output)
	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	require.NotNil(t, game.Game)
	assert.Equal(t, 1, game.Game.TotalMoves)
	assert.Equal(t, "active", game.Game.Status)
}

func TestCLI_RemoteReset(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.remote(testToken, "reset", "--actor", "alice")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "Only repository administrators")

	output, err = cli.remote(testToken, "reset", "--actor", testOwner)
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "Round 001 begins")
}
