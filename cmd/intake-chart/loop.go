package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/sweeney/intake-chart/internal/chart"
	"github.com/sweeney/intake-chart/internal/feed"
	"github.com/sweeney/intake-chart/internal/gpio"
	"github.com/sweeney/intake-chart/internal/input"
	"github.com/sweeney/intake-chart/internal/metrics"
	"github.com/sweeney/intake-chart/internal/mqtt"
	"github.com/sweeney/intake-chart/internal/render"
	"github.com/sweeney/intake-chart/internal/status"
	"github.com/sweeney/intake-chart/internal/web"
)

// renderJob is a chart frame request handed to the run loop, which owns the
// view.
type renderJob struct {
	req   web.ChartRequest
	reply chan renderResult
}

type renderResult struct {
	body []byte
	err  error
}

// chartQueue implements web.ChartRenderer by sending jobs to the run loop.
type chartQueue chan renderJob

func (q chartQueue) RenderChart(ctx context.Context, req web.ChartRequest) ([]byte, error) {
	reply := make(chan renderResult, 1)
	select {
	case q <- renderJob{req: req, reply: reply}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case r := <-reply:
		return r.body, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// bufferStatus is implemented by publishers that queue while offline.
type bufferStatus interface {
	Buffered() (pending, dropped int)
}

// loop holds everything the run loop goroutine owns. Optional parts may be
// nil: reader (no buttons), source, publisher, mqttState, tracker, metrics.
type loop struct {
	view     *chart.View
	history  *feed.History
	source   feed.Source
	detector *input.Detector
	reader   gpio.Reader

	publisher mqtt.Publisher
	mqttState mqtt.ConnectionStatus
	tracker   *status.Tracker
	metrics   *metrics.Collector

	width, height int
	heartbeat     time.Duration
	now           func() time.Time

	frames int64
}

func runLoop(l *loop, tick <-chan time.Time, renders <-chan renderJob, sig <-chan os.Signal) error {
	l.refreshDatasets()
	l.updateStatus()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: l.now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if l.publishSystem(event) {
				log.Printf("published shutdown event")
			}
			return nil

		case job := <-renders:
			var buf bytes.Buffer
			moved, err := l.handleRender(job.req, &buf)
			if err != nil {
				log.Printf("render error: %v", err)
				job.reply <- renderResult{err: err}
				continue
			}
			job.reply <- renderResult{body: buf.Bytes()}
			if moved {
				l.publishHighlight(l.now())
			}
			l.updateStatus()

		case <-tick:
			l.onTick(l.now())
		}
	}
}

func (l *loop) onTick(t time.Time) {
	if l.source != nil {
		if samples := l.source.Next(t); len(samples) > 0 {
			intake, condition := l.history.Add(samples)
			if l.metrics != nil {
				l.metrics.ObserveSamples(feed.KindIntake.String(), intake)
				l.metrics.ObserveSamples(feed.KindCondition.String(), condition)
			}
			l.refreshDatasets()
		}
	}

	l.pollButtons(t)

	if hb := l.detector.CheckHeartbeat(t, l.heartbeat); hb != nil {
		intake, condition := l.history.Len()
		log.Printf("heartbeat: uptime=%v back=%d forward=%d frames=%d",
			hb.Uptime, hb.Counts.Back, hb.Counts.Forward, l.frames)
		event := mqtt.SystemEvent{
			Timestamp: hb.Timestamp,
			Event:     "HEARTBEAT",
			Heartbeat: &mqtt.HeartbeatInfo{
				UptimeSec:   int64(hb.Uptime.Seconds()),
				StepBack:    hb.Counts.Back,
				StepForward: hb.Counts.Forward,
				Frames:      l.frames,
				Intake:      intake,
				Condition:   condition,
			},
		}
		l.publishSystem(event)
	}

	l.updateStatus()
}

// pollButtons reads the scrub buttons and steps the highlight once per
// debounced press. Without a reader the detector sees idle buttons so it
// still baselines and drives heartbeats.
func (l *loop) pollButtons(t time.Time) {
	var prev, next bool
	if l.reader != nil {
		var err error
		prev, next, err = l.reader.Read()
		if err != nil {
			log.Printf("gpio read error: %v", err)
			return
		}
	}

	for _, step := range l.detector.Process(input.Sample{Prev: prev, Next: next, Time: t}) {
		if _, ok := l.view.Step(step.Action.Dir()); !ok {
			continue
		}
		log.Printf("step: %s via %s -> %s", step.Action, step.Action.Button(), l.view.Header().Text)
		l.publishHighlight(step.Timestamp)
	}
}

// refreshDatasets hands the current history to the view and re-resolves the
// highlight against the new entries.
func (l *loop) refreshDatasets() {
	l.view.SetEventDataset(l.history.EventDataset())
	l.view.SetLineDataset(l.history.LineDataset(feed.ConditionGradient()))
	if h, ok := l.view.Highlighted(); ok {
		l.view.HighlightValue(&h)
	}
}

// handleRender applies an optional pointer and draws one frame into w. It
// reports whether the pointer changed the highlight.
func (l *loop) handleRender(req web.ChartRequest, w io.Writer) (bool, error) {
	moved := false
	if req.Pointer != nil {
		before, had := l.view.Highlighted()
		after, has := l.view.HighlightAtPixel(*req.Pointer)
		moved = had != has || before.X != after.X || before.Source != after.Source
	}
	_, err := l.draw(req.Format, w)
	return moved, err
}

func (l *loop) draw(f render.Format, w io.Writer) (chart.DrawReport, error) {
	canvas, err := render.NewCanvas(f, l.width, l.height)
	if err != nil {
		return chart.DrawReport{}, fmt.Errorf("new canvas: %w", err)
	}
	report := l.view.Draw(canvas)
	for _, s := range report.Skips {
		if s.Reason == chart.SkipNoHighlight {
			continue
		}
		log.Printf("marker %s skipped: %s", s.Marker, s.Reason)
	}
	if err := canvas.Save(w); err != nil {
		return report, fmt.Errorf("encode %s: %w", f, err)
	}
	l.frames++
	if l.metrics != nil {
		l.metrics.ObserveDraw(report)
	}
	if l.tracker != nil {
		l.tracker.AddFrame()
	}
	return report, nil
}

func (l *loop) publishHighlight(at time.Time) {
	if l.publisher == nil {
		return
	}
	if err := l.publisher.PublishHighlight(l.view.Summary(), at); err != nil {
		log.Printf("publish error: %v", err)
	}
}

// publishSystem reports whether the event reached the publisher.
func (l *loop) publishSystem(event mqtt.SystemEvent) bool {
	if l.publisher == nil {
		return false
	}
	if err := l.publisher.PublishSystem(event); err != nil {
		log.Printf("failed to publish %s event: %v", strings.ToLower(event.Event), err)
		return false
	}
	return true
}

func (l *loop) updateStatus() {
	connected := l.mqttState != nil && l.mqttState.IsConnected()
	if l.metrics != nil {
		l.metrics.SetMQTTConnected(connected)
	}
	if l.tracker == nil {
		return
	}
	intake, condition := l.history.Len()
	l.tracker.UpdateChart(l.view.Summary(), intake, condition)
	if l.detector != nil {
		l.tracker.UpdateInput(l.detector.IsBaselined(), l.detector.Counts())
	}
	var pending, dropped int
	if b, ok := l.publisher.(bufferStatus); ok {
		pending, dropped = b.Buffered()
	}
	l.tracker.SetMQTT(connected, pending, dropped)
}
