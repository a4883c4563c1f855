package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sweeney/panel-button/internal/logic"
	"github.com/sweeney/panel-button/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"flashInterval": func(f logic.FlashTimer) string {
		if !f.Enabled {
			return "-"
		}
		return f.Interval.String()
	},
	"onOff": func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="2">
<title>Panel Button</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.pressed { color: green; font-weight: bold; }
.released { color: #666; }
.unknown { color: orange; }
.flash { color: #06c; font-weight: bold; }
footer { color: #999; font-size: 0.85em; }
</style>
</head>
<body>
<h1>Panel Button</h1>

<table>
<tr><th>Button</th><td class="{{if .Known}}{{if .Pressed}}pressed{{else}}released{{end}}{{else}}unknown{{end}}">{{.ButtonState}}</td></tr>
<tr><th>Indicator</th><td {{if .Flash.Enabled}}class="flash"{{end}}>{{.Indicator}}</td></tr>
<tr><th>Flash interval</th><td>{{flashInterval .Flash}}</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>MQTT connected</th><td>{{onOff .MQTTConnected}}</td></tr>
</table>

<table>
<tr><th>Presses</th><td>{{.Counts.Presses}}</td></tr>
<tr><th>Releases</th><td>{{.Counts.Releases}}</td></tr>
<tr><th>Bounce edges</th><td>{{.Counts.BounceEdges}}</td></tr>
</table>

<table>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}} ms</td></tr>
<tr><th>Slow flash</th><td>{{.Config.SlowMs}} ms</td></tr>
<tr><th>Fast flash</th><td>{{.Config.FastMs}} ms</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}} ms</td></tr>
<tr><th>Pins (button / pressed / indicator)</th><td>{{.Config.ButtonPin}} / {{.Config.PressedPin}} / {{.Config.IndicatorPin}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<footer><a href="/index.json">JSON</a></footer>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	if err := indexTmpl.Execute(w, snap); err != nil {
		log.Error().Err(err).Msg("render status page")
	}
}
