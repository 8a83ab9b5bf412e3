package web

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/sweeney/intake-chart/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"since": formatSince,
	"ml": func(v float64) string {
		return fmt.Sprintf("%.0f ml", v)
	},
	"onoff": func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	},
}).Parse(indexHTML))

// formatSince renders a duration at minute resolution, largest unit first:
// "3d 4h 12m", "45m", "<1m".
func formatSince(d time.Duration) string {
	d = d.Truncate(time.Minute)
	if d <= 0 {
		return "<1m"
	}
	units := []struct {
		size time.Duration
		name string
	}{{24 * time.Hour, "d"}, {time.Hour, "h"}, {time.Minute, "m"}}

	var parts []string
	for _, u := range units {
		if n := d / u.size; n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, u.name))
			d -= n * u.size
		}
	}
	return strings.Join(parts, " ")
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Intake Chart</title>
<style>
body { font: 14px/1.4 system-ui, sans-serif; max-width: 880px; margin: 1.5em auto; padding: 0 1em; color: #222; }
header { display: flex; justify-content: space-between; align-items: baseline; }
header h1 { font-size: 1.3em; margin: 0; }
header span { color: #666; }
section { border: 1px solid #e3e3e3; border-radius: 6px; padding: .5em 1em; margin: 1em 0; }
section h2 { font-size: 1em; margin: .3em 0 .6em; text-transform: uppercase; letter-spacing: .05em; color: #555; }
dl { display: grid; grid-template-columns: 12em 1fr; gap: .25em 1em; margin: 0; }
dt { color: #666; }
dd { margin: 0; font-family: monospace; }
.on { color: #1a7f37; font-weight: bold; }
.off { color: #b42318; }
.none { color: #999; }
#chart { cursor: crosshair; width: 100%; height: auto; border: 1px solid #e3e3e3; }
footer a { margin-right: 1em; }
</style>
</head>
<body>
<header><h1>Intake Chart</h1><span>up {{since .Uptime}}</span></header>

{{if .Charts}}<img id="chart" src="/chart.svg" width="{{.Config.Width}}" height="{{.Config.Height}}" alt="intake chart">{{end}}

<section>
<h2>Highlight</h2>
<dl>
{{if .Summary.Highlighted}}<dt>At</dt><dd class="on">{{.Summary.Header}}</dd>
<dt>Total intake</dt><dd>{{ml .Summary.Total}}</dd>
<dt>Running total</dt><dd>{{ml .Summary.RunningTotal}}</dd>
<dt>Condition</dt><dd>{{if .Summary.HasCondition}}{{printf "%.1f" .Summary.Condition}}{{else}}<span class="none">no sample</span>{{end}}</dd>
{{else}}<dt>At</dt><dd class="none">none</dd>
{{end}}</dl>
</section>

<section>
<h2>Data</h2>
<dl>
<dt>Window</dt><dd>{{.Config.WindowMin}}m</dd>
<dt>Intake samples</dt><dd>{{.IntakeSamples}}</dd>
<dt>Condition samples</dt><dd>{{.ConditionSamples}}</dd>
<dt>Frames rendered</dt><dd>{{.Frames}}</dd>
</dl>
</section>

<section>
<h2>Scrub buttons</h2>
<dl>
<dt>Ready</dt><dd class="{{onoff .ButtonsReady}}">{{if .ButtonsReady}}yes{{else}}waiting for idle{{end}}</dd>
<dt>Back / forward</dt><dd>{{.Steps.Back}} / {{.Steps.Forward}}</dd>
<dt>Debounce</dt><dd>{{.Config.DebounceMs}}ms</dd>
</dl>
</section>

<section>
<h2>Publishing</h2>
<dl>
<dt>MQTT</dt><dd class="{{onoff .MQTTConnected}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</dd>
<dt>Broker</dt><dd>{{.Config.Broker}}</dd>
<dt>Outbox</dt><dd>{{.MQTTPending}} pending, {{.MQTTDropped}} dropped</dd>
<dt>Heartbeat</dt><dd>{{if eq .Config.HeartbeatMs 0}}<span class="none">disabled</span>{{else}}every {{.Config.HeartbeatMs}}ms{{end}}</dd>
</dl>
</section>

<section>
<h2>Process</h2>
<dl>
<dt>Started</dt><dd>{{.StartTime.UTC.Format "2006-01-02 15:04:05Z"}}</dd>
<dt>Tick</dt><dd>{{.Config.TickMs}}ms</dd>
<dt>HTTP</dt><dd>{{.Config.HTTPAddr}}</dd>
</dl>
</section>

<footer><a href="/index.json">index.json</a>{{if .Charts}}<a href="/chart.png">chart.png</a>{{end}}</footer>
{{if .Charts}}
<script>
document.getElementById("chart").addEventListener("click", function (e) {
  var img = e.currentTarget, r = img.getBoundingClientRect();
  var px = Math.round((e.clientX - r.left) * img.naturalWidth / r.width);
  var py = Math.round((e.clientY - r.top) * img.naturalHeight / r.height);
  img.src = "/chart.svg?px=" + px + "&py=" + py + "&t=" + Date.now();
});
</script>
{{end}}
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot, charts bool) {
	data := struct {
		status.Snapshot
		Uptime time.Duration
		Charts bool
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
		Charts:   charts,
	}
	indexTmpl.Execute(w, data)
}
