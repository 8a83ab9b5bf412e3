// Command intake-chart renders the water intake chart, lets two GPIO buttons
// scrub its highlight and publishes what the markers show to MQTT.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sweeney/intake-chart/internal/chart"
	"github.com/sweeney/intake-chart/internal/feed"
	"github.com/sweeney/intake-chart/internal/gpio"
	"github.com/sweeney/intake-chart/internal/input"
	"github.com/sweeney/intake-chart/internal/metrics"
	"github.com/sweeney/intake-chart/internal/mqtt"
	"github.com/sweeney/intake-chart/internal/render"
	"github.com/sweeney/intake-chart/internal/status"
	"github.com/sweeney/intake-chart/internal/viewport"
	"github.com/sweeney/intake-chart/internal/web"
)

type options struct {
	tick       time.Duration
	debounce   time.Duration
	heartbeat  time.Duration
	broker     string
	clientID   string
	httpAddr   string
	pinPrev    int
	pinNext    int
	noGPIO     bool
	width      int
	height     int
	window     time.Duration
	axisMax    float64
	seed       int64
	drinkEvery time.Duration
	renderTo   string
}

func main() {
	var o options
	flag.DurationVar(&o.tick, "tick", 100*time.Millisecond, "Button polling and feed interval")
	flag.DurationVar(&o.debounce, "debounce", 50*time.Millisecond, "Button debounce duration")
	flag.DurationVar(&o.heartbeat, "heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	flag.StringVar(&o.broker, "broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	flag.StringVar(&o.clientID, "client-id", "intake-chart", "MQTT client ID")
	flag.StringVar(&o.httpAddr, "http", ":80", "HTTP status address (empty to disable)")
	flag.IntVar(&o.pinPrev, "pin-prev", gpio.PinPrev, "BCM pin number for the PREV button")
	flag.IntVar(&o.pinNext, "pin-next", gpio.PinNext, "BCM pin number for the NEXT button")
	flag.BoolVar(&o.noGPIO, "no-gpio", false, "Run without scrub buttons")
	flag.IntVar(&o.width, "width", 800, "Chart width in pixels")
	flag.IntVar(&o.height, "height", 400, "Chart height in pixels")
	flag.DurationVar(&o.window, "window", 6*time.Hour, "Visible time span")
	flag.Float64Var(&o.axisMax, "axis-max", 700, "Intake axis maximum in ml")
	flag.Int64Var(&o.seed, "seed", 1, "Demo feed seed")
	flag.DurationVar(&o.drinkEvery, "drink-every", 45*time.Minute, "Average time between demo drinks")
	flag.StringVar(&o.renderTo, "render", "", "Render one frame to this .svg or .png file and exit")

	flag.Parse()

	if err := run(o); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func viewportConfig(o options) viewport.Config {
	cfg := viewport.DefaultConfig()
	cfg.Width = float64(o.width)
	cfg.Height = float64(o.height)
	cfg.Window = o.window
	cfg.LeftMax = o.axisMax
	return cfg
}

func newView(vp *viewport.Viewport) *chart.View {
	return chart.NewView(vp, chart.Options{
		TotalMarker:     chart.NewTotalIntakeMarker("ml"),
		ConditionMarker: chart.NewConditionMarker(feed.ConditionGradient()),
	})
}

// prime fills the history with the window that ends at now.
func prime(src feed.Source, hist *feed.History, now time.Time, window time.Duration) {
	hist.Add(src.Next(now.Add(-window)))
	hist.Add(src.Next(now))
}

func run(o options) error {
	if o.renderTo != "" {
		return renderOnce(o)
	}

	var reader gpio.Reader
	if !o.noGPIO {
		r, err := gpio.NewRealReader(o.pinPrev, o.pinNext)
		if err != nil {
			return fmt.Errorf("init gpio: %w", err)
		}
		defer r.Close()
		reader = r
	}

	publisher, err := mqtt.NewRealPublisher(o.broker, o.clientID)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	start := time.Now()
	tracker := status.NewTracker(start, status.Config{
		TickMs:      o.tick.Milliseconds(),
		DebounceMs:  o.debounce.Milliseconds(),
		HeartbeatMs: o.heartbeat.Milliseconds(),
		WindowMin:   int64(o.window.Minutes()),
		Width:       o.width,
		Height:      o.height,
		Broker:      o.broker,
		HTTPAddr:    o.httpAddr,
	})

	collector := metrics.New()
	reg := prometheus.NewRegistry()
	reg.MustRegister(collector)

	startup := mqtt.SystemEvent{
		Timestamp: start,
		Event:     "STARTUP",
		Retained:  true,
		Config: &mqtt.SystemConfig{
			TickMs:      o.tick.Milliseconds(),
			DebounceMs:  o.debounce.Milliseconds(),
			HeartbeatMs: o.heartbeat.Milliseconds(),
			WindowMin:   int64(o.window.Minutes()),
			Broker:      o.broker,
		},
	}
	if err := publisher.PublishSystem(startup); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	vp := viewport.New(viewportConfig(o))
	src := feed.NewGenerator(o.seed, o.drinkEvery)
	hist := feed.NewHistory(o.window)
	prime(src, hist, start, o.window)

	renders := make(chan renderJob)
	if o.httpAddr != "" {
		srv := web.New(o.httpAddr, tracker, chartQueue(renders), reg)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", o.httpAddr)
	}

	log.Printf("started: tick=%v debounce=%v broker=%s heartbeat=%v window=%v gpio=%t",
		o.tick, o.debounce, o.broker, o.heartbeat, o.window, reader != nil)

	ticker := time.NewTicker(o.tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	l := &loop{
		view:      newView(vp),
		history:   hist,
		source:    src,
		detector:  input.NewDetector(o.debounce, start),
		reader:    reader,
		publisher: publisher,
		mqttState: publisher,
		tracker:   tracker,
		metrics:   collector,
		width:     o.width,
		height:    o.height,
		heartbeat: o.heartbeat,
		now:       time.Now,
	}
	return runLoop(l, ticker.C, renders, sigCh)
}

// renderOnce draws one frame of demo data with the newest entry highlighted
// and writes it to o.renderTo.
func renderOnce(o options) error {
	f, err := render.ParseFormat(strings.TrimPrefix(filepath.Ext(o.renderTo), "."))
	if err != nil {
		return err
	}

	now := time.Now()
	vp := viewport.New(viewportConfig(o))
	hist := feed.NewHistory(o.window)
	prime(feed.NewGenerator(o.seed, o.drinkEvery), hist, now, o.window)

	l := &loop{
		view:    newView(vp),
		history: hist,
		width:   o.width,
		height:  o.height,
		now:     time.Now,
	}
	l.refreshDatasets()
	l.view.Step(1)

	var buf bytes.Buffer
	if _, err := l.draw(f, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(o.renderTo, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", o.renderTo, err)
	}
	sum := l.view.Summary()
	log.Printf("rendered %s (%s, total=%.0fml)", o.renderTo, sum.Header, sum.Total)
	return nil
}
