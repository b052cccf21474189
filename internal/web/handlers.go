package web

import (
	_ "embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/greeter/internal/web/notifier"
	"github.com/leapstack-labs/greeter/pkg/greet"
	"github.com/starfederation/datastar-go/datastar"
)

const (
	sessionName    = "greeter"
	sessionNameKey = "name"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type handlers struct {
	title        string
	logger       *slog.Logger
	notifier     *notifier.Notifier
	broadcaster  *Broadcaster
	sessionStore sessions.Store
	client       *clientScript
}

// pageSignals is the initial datastar signal state of the index page.
type pageSignals struct {
	Name    string `json:"name"`
	Greeted string `json:"greeted"`
}

type indexData struct {
	Title   string
	Signals string
}

// greetSignals is what the page posts to /greet.
type greetSignals struct {
	Name string `json:"name"`
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	signals := pageSignals{Name: h.rememberedName(r)}
	raw, err := json.Marshal(signals)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, indexData{Title: h.title, Signals: string(raw)}); err != nil {
		h.logger.Error("render index", "error", err)
	}
}

func (h *handlers) greet(w http.ResponseWriter, r *http.Request) {
	var signals greetSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	greet.Greet(signals.Name, h.broadcaster)

	// The cookie has to be written before the SSE response starts.
	if sess, err := h.sessionStore.Get(r, sessionName); err == nil {
		sess.Values[sessionNameKey] = signals.Name
		if err := sess.Save(r, w); err != nil {
			h.logger.Warn("save session", "error", err)
		}
	} else {
		h.logger.Debug("discarding unreadable session", "error", err)
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.MarshalAndPatchSignals(map[string]string{"greeted": greet.Message(signals.Name)}); err != nil {
		h.logger.Debug("patch signals", "error", err)
	}
}

// updates is the long-lived SSE stream that turns published events into
// scripts run by the browser.
func (h *handlers) updates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	events := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(events)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			script, err := eventScript(ev)
			if err != nil {
				_ = sse.ConsoleError(err)
				continue
			}
			if err := sse.ExecuteScript(script); err != nil {
				h.logger.Debug("updates stream closed", "error", err)
				return
			}
		}
	}
}

// eventScript returns the JavaScript a browser runs for ev.
func eventScript(ev notifier.Event) (string, error) {
	switch ev.Kind {
	case notifier.KindReload:
		return "window.location.reload()", nil
	default:
		quoted, err := json.Marshal(ev.Text)
		if err != nil {
			return "", err
		}
		return "alert(" + string(quoted) + ")", nil
	}
}

func (h *handlers) appJS(w http.ResponseWriter, _ *http.Request) {
	js, err := h.client.get()
	if err != nil {
		h.logger.Error("compile client script", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	_, _ = w.Write(js)
}

func (h *handlers) rememberedName(r *http.Request) string {
	sess, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		return ""
	}
	name, _ := sess.Values[sessionNameKey].(string)
	return name
}
