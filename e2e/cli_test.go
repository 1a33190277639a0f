package e2e_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship-go2/internal/api"
	"github.com/mcoot/battleship-go2/internal/api/response"
	"github.com/mcoot/battleship-go2/internal/factory"
	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/testutil"
	"github.com/mcoot/battleship-go2/internal/web"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(t.TempDir(), "bsgame")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/bsgame")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token"),
	}
}

func (r *cliRunner) args(args []string) []string {
	return append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)
}

func (r *cliRunner) run(args ...string) (string, error) {
	cmd := exec.Command(r.binaryPath, r.args(args)...)
	// Keep the environment from overriding the flags above
	cmd.Env = append(os.Environ(), "BSGAME_TOKEN=")
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
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

// startTestServer runs the combined API and web routers on a free port
func startTestServer(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := testutil.NopLogger()
	app, err := factory.New(factory.Config{
		Logger:            logger,
		ComputerMoveDelay: -1,
	})
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
	}))
	mux.Handle("/", web.NewRouter(web.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		HubManager:     app.HubManager,
	}))

	server := &http.Server{Addr: addr, Handler: mux}
	server.RegisterOnShutdown(func() { _ = app.Close() })

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	})
	return serverURL
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
	t.Fatal("server did not become ready")
}

func parseJSON[T any](t *testing.T, output string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(output), &v), "output: %s", output)
	return v
}

// newSignedInGame signs in as a guest and starts a game
func newSignedInGame(t *testing.T, cli *cliRunner) response.GameState {
	t.Helper()

	out, err := cli.run("player", "guest", "--name", "Admiral")
	require.NoError(t, err, out)

	out, err = cli.run("game", "new")
	require.NoError(t, err, out)
	return parseJSON[response.GameState](t, out)
}

// waitForPlayerTurn polls until the computer has replied
func waitForPlayerTurn(t *testing.T, cli *cliRunner, gameID string) response.GameState {
	t.Helper()

	var game response.GameState
	require.Eventually(t, func() bool {
		out, err := cli.run("game", "get", gameID)
		if err != nil {
			return false
		}
		game = parseJSON[response.GameState](t, out)
		return !game.ComputerTurn || game.Phase == "game_over"
	}, 5*time.Second, 20*time.Millisecond)
	return game
}

func TestCLIHealth(t *testing.T) {
	serverURL := startTestServer(t)
	cli := newCLIRunner(t, serverURL)

	out, err := cli.run("health")
	require.NoError(t, err, out)
	assert.Equal(t, "ok", parseJSON[response.HealthResponse](t, out).Status)
}

func TestCLIPlayers(t *testing.T) {
	serverURL := startTestServer(t)
	cli := newCLIRunner(t, serverURL)

	out, err := cli.run("player", "register", "--user", "admiral", "--pass", "broadside", "--name", "Admiral")
	require.NoError(t, err, out)
	registered := parseJSON[response.AuthResponse](t, out)
	assert.False(t, registered.Player.IsGuest)

	// The token file now holds the session
	out, err = cli.run("player", "me")
	require.NoError(t, err, out)
	assert.Equal(t, "Admiral", parseJSON[response.Player](t, out).DisplayName)

	out, err = cli.run("player", "login", "--user", "admiral", "--pass", "broadside")
	require.NoError(t, err, out)
	assert.Equal(t, registered.Player.ID, parseJSON[response.AuthResponse](t, out).Player.ID)

	out, err = cli.run("player", "login", "--user", "admiral", "--pass", "wrong-password")
	assert.Error(t, err)
	assert.Contains(t, out, "INVALID_CREDENTIALS")

	out, err = cli.runWithToken("bogus", "player", "me")
	assert.Error(t, err)
	assert.Contains(t, out, "UNAUTHORIZED")

	out, err = cli.run("player", "logout")
	require.NoError(t, err, out)

	// The token file is gone, so the next request is anonymous
	out, err = cli.run("player", "me")
	assert.Error(t, err)
	assert.Contains(t, out, "UNAUTHORIZED")
}

func TestCLIPlacement(t *testing.T) {
	serverURL := startTestServer(t)
	cli := newCLIRunner(t, serverURL)
	game := newSignedInGame(t, cli)
	assert.Equal(t, "placement", game.Phase)

	out, err := cli.run("game", "select", game.ID, "carrier")
	require.NoError(t, err, out)
	assert.Equal(t, "carrier", parseJSON[response.GameState](t, out).SelectedShip)

	out, err = cli.run("game", "place", game.ID, "destroyer", "A1")
	require.NoError(t, err, out)
	assert.Equal(t, "SS........", parseJSON[response.GameState](t, out).PlayerBoard.Rows[0])

	out, err = cli.run("game", "place", game.ID, "cruiser", "0", "0", "--vertical")
	assert.Error(t, err)
	assert.Contains(t, out, "INVALID_PLACEMENT")

	out, err = cli.run("game", "place", game.ID, "cruiser", "Z9")
	assert.Error(t, err)
	assert.Contains(t, out, "invalid board position")

	out, err = cli.run("game", "auto-place", game.ID)
	require.NoError(t, err, out)
	placed := parseJSON[response.GameState](t, out)
	assert.Equal(t, "battle", placed.Phase)
	assert.Equal(t, "SS", placed.PlayerBoard.Rows[0][:2])
	assert.Equal(t, 17, strings.Count(strings.Join(placed.PlayerBoard.Rows, ""), "S"))
}

func TestCLIPlayToGameOver(t *testing.T) {
	serverURL := startTestServer(t)
	cli := newCLIRunner(t, serverURL)
	game := newSignedInGame(t, cli)

	out, err := cli.run("game", "auto-place", game.ID)
	require.NoError(t, err, out)

	var last response.FireResponse
	for y := 0; y < 10 && !last.GameOver; y++ {
		for x := 0; x < 10 && !last.GameOver; x++ {
			cell := model.Position{X: x, Y: y}.Label()
			out, err := cli.run("game", "fire", game.ID, cell)
			require.NoError(t, err, out)
			last = parseJSON[response.FireResponse](t, out)
			require.True(t, last.Accepted, "shot at %s was ignored", cell)

			if !last.GameOver {
				state := waitForPlayerTurn(t, cli, game.ID)
				if state.Phase == "game_over" {
					last.GameOver = true
					last.Winner = state.Winner
				}
			}
		}
	}

	require.True(t, last.GameOver)
	require.NotNil(t, last.Winner)
	assert.Contains(t, []string{"player", "computer"}, *last.Winner)

	out, err = cli.run("game", "get", game.ID)
	require.NoError(t, err, out)
	final := parseJSON[response.GameState](t, out)
	assert.Equal(t, "game_over", final.Phase)
	require.NotNil(t, final.OpponentBoard)

	// The enemy fleet is revealed once the game ends
	for _, ship := range final.OpponentBoard.Ships {
		assert.Len(t, ship.Positions, ship.Length)
	}

	// A finished game has nothing left to stream
	out, err = cli.run("events", game.ID)
	require.NoError(t, err, out)
	assert.Contains(t, out, "is over")
}

func TestCLIEvents(t *testing.T) {
	serverURL := startTestServer(t)
	cli := newCLIRunner(t, serverURL)
	game := newSignedInGame(t, cli)

	out, err := cli.run("game", "auto-place", game.ID)
	require.NoError(t, err, out)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, cli.binaryPath, cli.args([]string{"events", game.ID, "--json"})...)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())
	t.Cleanup(func() {
		cancel()
		_ = cmd.Wait()
	})

	lines := make(chan string, 16)
	go func() {
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	waitForEvent := func(name string) string {
		t.Helper()
		for {
			select {
			case line, ok := <-lines:
				require.True(t, ok, "stream closed before %s", name)
				if strings.Contains(line, `"event":"`+name+`"`) {
					return line
				}
			case <-ctx.Done():
				t.Fatalf("timed out waiting for %s", name)
			}
		}
	}

	waitForEvent("connected")

	out, err = cli.run("game", "fire", game.ID, "E5")
	require.NoError(t, err, out)

	line := waitForEvent("computer-fired")
	assert.Contains(t, line, "Computer fired at")
}

func TestCLIReset(t *testing.T) {
	serverURL := startTestServer(t)
	cli := newCLIRunner(t, serverURL)
	game := newSignedInGame(t, cli)

	out, err := cli.run("game", "reset", game.ID)
	require.NoError(t, err, out)
	fresh := parseJSON[response.GameState](t, out)
	assert.NotEqual(t, game.ID, fresh.ID)
	assert.Equal(t, "placement", fresh.Phase)

	out, err = cli.run("game", "get")
	require.NoError(t, err, out)
	assert.Equal(t, fresh.ID, parseJSON[response.GameState](t, out).ID)

	out, err = cli.run("game", "get", game.ID)
	assert.Error(t, err)
	assert.Contains(t, out, "GAME_NOT_FOUND")
}
