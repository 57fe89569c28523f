package program

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/unscroll/unscroll/internal/cli"
	"github.com/unscroll/unscroll/internal/scroll"
)

type ScrollCmd struct {
	Classify ScrollClassifyCmd `cmd:"" help:"Replay recorded scroll events through the classifier."`
}

// ScrollClassifyCmd reads one JSON event per line, e.g.
// {"at":"2026-01-05T09:00:00.250Z","position":480,"source":"wheel"}
type ScrollClassifyCmd struct {
	File string `arg:"" optional:"" default:"-" help:"JSON-lines event file, or - for stdin."`
}

func (c *ScrollClassifyCmd) Run(ctx *cli.Context) error {
	var in io.Reader = os.Stdin
	if ctx.In != nil {
		in = ctx.In
	}
	if c.File != "" && c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return fmt.Errorf("failed to open events: %w", err)
		}
		defer f.Close()
		in = f
	}

	events, err := readEvents(in)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		ctx.Println("No events.")
		return nil
	}

	cfg := ctx.Config.Scroll
	classifier := scroll.NewClassifier(cfg.Window)
	interceptor := scroll.NewInterceptor(cfg.Sensitivity, cfg.Debounce, cfg.Cooldown)

	interventions := 0
	for _, e := range events {
		out, iv := interceptor.Observe(e.At)
		speed := 0.0
		if !out.Suppressed {
			speed = classifier.Add(e)
		}
		r := classifier.Snapshot(e.At)

		note := ""
		switch {
		case out.Fired:
			interventions++
			note = fmt.Sprintf("  INTERVENE until %s", iv.CooldownUntil.Format("15:04:05.000"))
		case out.Suppressed:
			note = "  suppressed"
		}
		ctx.Printf("%s  %-6s pos=%-8.0f speed=%-7.1f freq=%.1f/s  %-10s%s\n",
			e.At.Format("15:04:05.000"), e.Source, e.Position, speed, r.Frequency, r.Label, note)
	}

	final := classifier.Snapshot(events[len(events)-1].At)
	ctx.Printf("\n%d events, %d interventions, final label %s\n", len(events), interventions, final.Label)
	return nil
}

func readEvents(r io.Reader) ([]scroll.Event, error) {
	var events []scroll.Event
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var e scroll.Event
		if err := json.Unmarshal([]byte(text), &e); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if e.At.IsZero() {
			return nil, fmt.Errorf("line %d: missing \"at\" timestamp", line)
		}
		src, err := scroll.ParseSource(string(e.Source))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		e.Source = src
		events = append(events, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return events, nil
}
