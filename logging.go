package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/natefinch/lumberjack"
	"golang.org/x/exp/slog"
)

type LogHandler struct {
	h   slog.Handler
	mu  *sync.Mutex
	out io.Writer
}

func NewLogHandler(o io.Writer, opts *slog.HandlerOptions) *LogHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &LogHandler{
		out: o,
		h: slog.NewTextHandler(o, &slog.HandlerOptions{
			Level:       opts.Level,
			AddSource:   opts.AddSource,
			ReplaceAttr: nil,
		}),
		mu: &sync.Mutex{},
	}
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{h: h.h.WithAttrs(attrs), out: h.out, mu: h.mu}
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{h: h.h.WithGroup(name), out: h.out, mu: h.mu}
}

func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {

	formattedTime := r.Time.Format("2006/01/02 15:04:05")

	//add time and message to values
	strs := []string{formattedTime, r.Level.String(), r.Message}

	if r.NumAttrs() != 0 {
		r.Attrs(func(a slog.Attr) bool {
			strs = append(strs, a.Key+"="+a.Value.String())
			return true
		})
	}

	result := strings.Join(strs, " ") + "\n"
	b := []byte(result)

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.out.Write(b)

	return err

}

// Installs the LogHandler as default logger. Output goes to stdout and, if
// a file is configured, to a size rotated log file.
func SetupLogging(options LoggingOptions) io.Closer {
	var out io.Writer = os.Stdout
	var closer io.Closer = _NopCloser{}
	if options.File != "" {
		fmt.Printf("Sending log messages to: %s\n", options.File)
		l := &lumberjack.Logger{
			Filename: options.File,
			MaxSize:  options.MaxSize, // megabytes
			MaxAge:   options.MaxAge,  // days
		}
		out = io.MultiWriter(os.Stdout, l)
		closer = l
	}
	handler := NewLogHandler(out, &slog.HandlerOptions{Level: slog.Level(options.Level)})
	slog.SetDefault(slog.New(handler))
	return closer
}

type _NopCloser struct{}

func (_NopCloser) Close() error {
	return nil
}
