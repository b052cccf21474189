// Package web provides the greeter dev server: a page that greets through
// alert() in every connected browser, plus static hosting for the js/wasm
// build.
package web

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/greeter/internal/web/notifier"
	"golang.org/x/sync/errgroup"
)

// Server is the dev server.
type Server struct {
	port         int
	watch        bool
	wasmDir      string
	title        string
	logger       *slog.Logger
	onReady      func(url string)
	notifier     *notifier.Notifier
	broadcaster  *Broadcaster
	sessionStore *sessions.CookieStore
	client       *clientScript
}

// Config holds configuration for the dev server.
type Config struct {
	// Title is shown as the page title and heading.
	Title   string
	Port    int
	Watch   bool
	WasmDir string
	// SessionSecret signs the session cookie. A random key is generated
	// when empty, so remembered names do not survive a restart.
	SessionSecret string
	Logger        *slog.Logger
	// OnReady is called with the server URL once the port is bound.
	// With Port 0 this is the only way to learn the port.
	OnReady func(url string)
}

// NewServer creates a new dev server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
	}
	sessionStore := sessions.NewCookieStore(secret)
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	// The dev server speaks plain HTTP; a Secure cookie would never come back.
	sessionStore.Options.Secure = false

	title := cfg.Title
	if title == "" {
		title = "greeter"
	}

	n := notifier.New()
	return &Server{
		title:        title,
		port:         cfg.Port,
		watch:        cfg.Watch,
		wasmDir:      cfg.WasmDir,
		logger:       logger,
		onReady:      cfg.OnReady,
		notifier:     n,
		broadcaster:  NewBroadcaster(n, logger),
		sessionStore: sessionStore,
		client:       &clientScript{},
	}
}

// Notifier returns the server's notifier.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// Broadcaster returns the greet.Display that alerts every connected browser.
func (s *Server) Broadcaster() *Broadcaster {
	return s.broadcaster
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		s.requestLogger,
		middleware.Recoverer,
	)

	h := &handlers{
		title:        s.title,
		logger:       s.logger,
		notifier:     s.notifier,
		broadcaster:  s.broadcaster,
		sessionStore: s.sessionStore,
		client:       s.client,
	}
	r.Get("/", h.index)
	r.Post("/greet", h.greet)
	r.Get("/updates", h.updates)
	r.Get("/app.js", h.appJS)
	r.Handle("/wasm/*", http.StripPrefix("/wasm/", wasmFileServer(s.wasmDir)))

	return r
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	url := listenURL(ln.Addr())
	s.logger.Info("starting dev server", "addr", url, "wasm_dir", s.wasmDir)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down dev server...")
		return srv.Shutdown(shutdownCtx)
	})

	if s.onReady != nil {
		s.onReady(url)
	}

	return eg.Wait()
}

// listenURL is the browser URL for a bound address.
func listenURL(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return fmt.Sprintf("http://localhost:%d", tcp.Port)
	}
	return "http://" + addr.String()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// wasmFileServer serves dir, labelling .wasm files so browsers can use
// WebAssembly.instantiateStreaming.
func wasmFileServer(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if filepath.Ext(r.URL.Path) == ".wasm" {
			w.Header().Set("Content-Type", "application/wasm")
		}
		w.Header().Set("Cache-Control", "no-cache")
		files.ServeHTTP(w, r)
	})
}

// watchFiles reloads connected browsers when the wasm build changes.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.wasmDir); err != nil {
		s.logger.Warn("failed to watch wasm directory", "dir", s.wasmDir, "error", err)
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			ext := filepath.Ext(event.Name)
			if ext != ".wasm" && ext != ".js" {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Info("wasm build changed, reloading browsers", "file", name)
				s.notifier.Publish(notifier.KindReload, name)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return err
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
