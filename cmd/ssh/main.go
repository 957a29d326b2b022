package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tomz197/invasion/internal/config"
	"github.com/tomz197/invasion/internal/draw"
	"github.com/tomz197/invasion/internal/loop"
	loopconfig "github.com/tomz197/invasion/internal/loop/config"
	"github.com/tomz197/invasion/internal/loop/server"
	"github.com/tomz197/invasion/internal/metrics"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultMetricsAddr = ":9090"

	shutdownWait = 15 * time.Second
)

// host bundles what every session handler needs.
type host struct {
	logger      *log.Logger
	registry    *server.Registry
	collector   *metrics.Collector
	idleTimeout time.Duration
}

func main() {
	logger := config.NewLogger("ssh")

	hostAddr := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	metricsAddr := config.GetEnv("METRICS_ADDR", defaultMetricsAddr)
	idleTimeout := config.GetEnvDuration("IDLE_TIMEOUT", loopconfig.InactivityDisconnectUser*time.Second)
	logger.Info("ssh config", "host", hostAddr, "port", port, "hostKeyPath", hostKeyPath,
		"metricsAddr", metricsAddr, "idleTimeout", idleTimeout)

	collector, err := metrics.NewCollector(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("failed to register metrics", "err", err)
	}

	h := &host{
		logger:      logger,
		registry:    server.NewRegistry(collector),
		collector:   collector,
		idleTimeout: idleTimeout,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(hostAddr, port)),
		wish.WithMiddleware(
			h.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	var metricsServer *http.Server
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		metricsServer = &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("serving metrics", "addr", metricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "err", err)
			}
		}()
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(hostAddr, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "sessions", h.registry.Len())

	// Notify players and wait for them to disconnect
	if !h.registry.Shutdown(shutdownWait) {
		logger.Warn("sessions still connected after shutdown wait", "sessions", h.registry.Len())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			logger.Error("metrics shutdown error", "err", err)
		}
	}
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware runs one independent game for each SSH session.
func (h *host) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		handle := h.registry.Register(sess.User())
		defer h.registry.Unregister(handle.ID)

		logger := h.logger.With("user", sess.User(), "session", handle.ID)
		logger.Info("new game session", "terminal", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		opts := loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			Hooks:        h.collector.Hooks(sessionHooks(logger)),
			Shutdown:     handle.Shutdown,
			OnTick:       h.collector.ObserveTick,
		}
		if h.idleTimeout > 0 {
			opts.IdleTimeout = h.idleTimeout
			opts.IdleWarn = h.idleTimeout * 3 / 4
		} else {
			opts.IdleTimeout = -1
		}

		if err := loop.Run(bufio.NewReader(sess), sess, opts); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended", "duration", time.Since(handle.Started).Round(time.Second))
		next(sess)
	}
}

// sessionHooks logs the lifecycle of the games played in one session.
func sessionHooks(logger *log.Logger) loop.Hooks {
	return loop.Hooks{
		GameStarted: func() {
			logger.Debug("game started")
		},
		FormationCleared: func(level int) {
			logger.Debug("formation cleared", "level", level)
		},
		ShipHit: func(livesLeft int) {
			logger.Debug("ship hit", "livesLeft", livesLeft)
		},
		GameOver: func(score int) {
			logger.Info("game over", "score", score)
		},
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
