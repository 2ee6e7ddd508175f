package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	ansiReset  = "\033[0m"
	ansiDim    = "\033[2m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// terminalHandler writes one line per record:
//
//	15:04:05.000 INF commands generated dialect=chimera chunks=1
//
// ANSI styling is applied only when the writer is a terminal.
type terminalHandler struct {
	w      io.Writer
	level  slog.Leveler
	colour bool
	prefix string
	groups []string
	mu     *sync.Mutex
}

func newTerminalHandler(w io.Writer, opts *slog.HandlerOptions) *terminalHandler {
	return newStyledTerminalHandler(w, opts, isTerminal(w))
}

func newStyledTerminalHandler(w io.Writer, opts *slog.HandlerOptions, colour bool) *terminalHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &terminalHandler{w: w, level: level, colour: colour, mu: &sync.Mutex{}}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func (h *terminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *terminalHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	h.styled(&buf, ansiDim, ts.Format("15:04:05.000"))
	buf.WriteByte(' ')
	style, label := levelStyle(r.Level)
	h.styled(&buf, style, label)
	buf.WriteByte(' ')
	h.styled(&buf, ansiBold, r.Message)

	buf.WriteString(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, a, h.groups)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// WithAttrs renders attrs once and reuses the text for every record.
func (h *terminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf bytes.Buffer
	buf.WriteString(h.prefix)
	for _, a := range attrs {
		h.appendAttr(&buf, a, h.groups)
	}
	clone := *h
	clone.prefix = buf.String()
	return &clone
}

func (h *terminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func (h *terminalHandler) styled(buf *bytes.Buffer, style, text string) {
	if !h.colour {
		buf.WriteString(text)
		return
	}
	buf.WriteString(style)
	buf.WriteString(text)
	buf.WriteString(ansiReset)
}

func (h *terminalHandler) appendAttr(buf *bytes.Buffer, a slog.Attr, groups []string) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			groups = append(append([]string(nil), groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(buf, ga, groups)
		}
		return
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	buf.WriteByte(' ')
	h.styled(buf, ansiDim, key+"=")
	buf.WriteString(formatValue(a.Value))
}

func levelStyle(level slog.Level) (string, string) {
	switch {
	case level < slog.LevelInfo:
		return ansiCyan, "DBG"
	case level < slog.LevelWarn:
		return ansiGreen, "INF"
	case level < slog.LevelError:
		return ansiYellow, "WRN"
	default:
		return ansiRed, "ERR"
	}
}

func formatValue(v slog.Value) string {
	s := v.String()
	if v.Kind() == slog.KindString && (s == "" || strings.ContainsAny(s, " \t\n\"\\=")) {
		return strconv.Quote(s)
	}
	return s
}
