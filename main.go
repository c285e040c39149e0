// pattern: Imperative Shell
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"planeui/internal/config"
	"planeui/internal/element"
	"planeui/internal/events"
	"planeui/internal/host"
	"planeui/internal/instance"
	"planeui/internal/layout"
	"planeui/internal/logging"
	"planeui/internal/page"
	"planeui/internal/render"
	"planeui/internal/tui"
	"planeui/internal/web"
)

var version = "dev"

func main() {
	configPath := flag.StringP("config", "c", "", "config file (default: ~/.config/planeui/config.yaml)")
	dataDir := flag.StringP("data-dir", "d", "", "data directory (default: ~/.local/share/planeui)")
	headless := flag.Bool("headless", false, "run without the debug TUI")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("planeui", version)
		return
	}

	// One subcommand: "sessions" queries a running instance over its port
	// file instead of starting a new host.
	if flag.Arg(0) == "sessions" {
		if err := printSessions(resolveDataDir(*dataDir)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	run(*configPath, resolveDataDir(*dataDir), *headless)
}

// resolveDataDir picks the lock/port/log directory.
func resolveDataDir(override string) string {
	if override != "" {
		return override
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".local", "share", "planeui")
	}
	return filepath.Join(home, ".local", "share", "planeui")
}

// printSessions discovers a running instance and dumps its session list.
func printSessions(dataDir string) error {
	addr, err := instance.Discover(dataDir)
	if err != nil {
		return err
	}
	body, err := instance.NewClient(addr).Sessions()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(body, '\n'))
	return err
}

// run wires the whole engine together: config, logging, single-instance
// lock, host tick loop, input bridge, config watcher and the debug TUI.
func run(configPath, dataDir string, headless bool) {
	if configPath == "" {
		configPath = config.Path()
	}
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fl, err := instance.Lock(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer instance.Cleanup(dataDir, fl)

	logManager, err := logging.NewManager(logging.Config{
		FilePath:       filepath.Join(dataDir, "planeui.log"),
		MaxSizeMB:      10,
		MaxBackups:     3,
		MaxAgeDays:     7,
		ChannelBufSize: 1000,
		Level:          cfg.LogLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logManager.Close() }()

	appLogger := logManager.For("app")
	appLogger.Info("application starting", "version", version)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	h := host.New(cfg, render.Noop{}, logManager, openWelcomePage)

	// The program must exist before any goroutine that sends to it.
	var p *tea.Program
	if !headless {
		p = tea.NewProgram(tui.NewModel(cfg.Theme, h, logManager.Entries()), tea.WithAltScreen())
	}
	send := func(msg any) {
		if p != nil {
			p.Send(msg)
		}
	}
	h.SetEmitter(send)

	var bridgeURL string
	if cfg.Web.Enabled {
		webServer := web.New(
			web.Config{Bind: cfg.Web.Bind, Port: cfg.Web.Port},
			h.Notify,
			h.Sessions,
			logManager,
		)
		h.SetOnSessionsChanged(webServer.NotifySessionsChanged)

		ln, err := webServer.Listen()
		if err != nil {
			appLogger.Error("input bridge listen error", "error", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := instance.WritePort(dataDir, webServer.Addr()); err != nil {
			appLogger.Error("failed to write port file", "error", err)
		}
		bridgeURL = fmt.Sprintf("http://%s", webServer.Addr())

		go func() {
			if err := webServer.Serve(ln); err != nil && err != http.ErrServerClosed {
				appLogger.Error("input bridge error", "error", err)
			}
		}()
		defer func() {
			sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer scancel()
			if err := webServer.Shutdown(sctx); err != nil {
				appLogger.Error("input bridge shutdown error", "error", err)
			}
		}()
	}

	// Config hot reload feeds the tick loop through the inbox.
	watcher, err := config.NewWatcher(configPath)
	if err != nil {
		appLogger.Warn("config watcher unavailable", "error", err)
	} else {
		go func() {
			if err := watcher.Start(ctx); err != nil && err != context.Canceled {
				appLogger.Warn("config watcher stopped", "error", err)
			}
		}()
		go func() {
			for fresh := range watcher.Updates() {
				h.Notify(fresh)
				send(events.ConfigReloadedMsg{})
			}
		}()
	}

	hostDone := make(chan error, 1)
	go func() { hostDone <- h.Run(ctx) }()

	if headless {
		if bridgeURL != "" {
			appLogger.Info("input bridge listening", "url", bridgeURL)
		}
		<-ctx.Done()
		<-hostDone
		appLogger.Info("application stopped")
		return
	}

	if bridgeURL != "" {
		url := bridgeURL
		go func() { p.Send(events.WebListenURLMsg{URL: url}) }()
	}

	if _, err := p.Run(); err != nil {
		appLogger.Error("application exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		cancel()
		<-hostDone
		os.Exit(1)
	}

	cancel()
	<-hostDone
	appLogger.Info("application stopped")
}

// openWelcomePage builds the default UI every fresh session gets: a home
// page whose buttons exercise the tree and drag operations.
func openWelcomePage(viewer string, pages *page.Manager) error {
	c := &welcomeContent{pages: pages}
	p, err := pages.CreatePage("home", c, nil)
	if err != nil {
		return err
	}
	c.page = p
	return nil
}

// welcomeContent is the demo home page: a title and a row of buttons that
// drive split, merge, move and resize from inside the world.
type welcomeContent struct {
	pages *page.Manager
	page  *page.Page
}

func (c *welcomeContent) BuildLayout(w, h float64) *layout.Node {
	return layout.Column("root",
		layout.Leaf("title").WithHeight(h*0.3),
		layout.Row("actions",
			layout.Leaf("split").Flex(1),
			layout.Leaf("tabs").Flex(1),
			layout.Leaf("move").Flex(1),
			layout.Leaf("resize").Flex(1),
		).Flex(1).WithGap(0.05),
	).WithGap(0.05)
}

func (c *welcomeContent) Render(rc *page.RenderContext) error {
	title, err := rc.Result("title")
	if err != nil {
		return err
	}
	if _, err := rc.Spawn("title", 0.01, element.Rect(title.W, title.H), render.Style{
		Kind:  "label",
		Label: "planeui",
	}); err != nil {
		return err
	}

	buttons := []struct {
		id      string
		label   string
		onClick func()
	}{
		{"split", "split", func() {
			side := &welcomeContent{pages: c.pages}
			p, err := c.pages.SplitPage(c.page, page.Horizontal, "side", side, page.Second, 0.5)
			if err == nil {
				side.page = p
			}
		}},
		{"tabs", "tab", func() {
			other := &welcomeContent{pages: c.pages}
			p, err := c.pages.CreatePage("tab", other, nil)
			if err != nil {
				return
			}
			other.page = p
			_, _ = c.pages.MergeToTabs(c.page, p)
		}},
		{"move", "move", func() { _ = c.pages.BeginMove(c.page) }},
		{"resize", "resize", func() { _ = c.pages.BeginResize(c.page) }},
	}

	for _, b := range buttons {
		r, err := rc.Result(b.id)
		if err != nil {
			return err
		}
		e, err := rc.Spawn(b.id, 0.01, element.Rect(r.W, r.H), render.Style{
			Kind:  "button",
			Label: b.label,
		})
		if err != nil {
			return err
		}
		e.Interactive = true
		click := b.onClick
		e.OnClick = func(bool) { click() }
	}
	return nil
}
