package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the built-in HTML dashboard page.
type DashboardHandler struct{}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Page serves the dashboard HTML. The page is self-contained and polls
// /api/status; richer front-end assets can be dropped into the install
// directory and are served by the static fallback instead.
func (h *DashboardHandler) Page(c *gin.Context) {
	html := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Media Mirror</title>
    <style>
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: #10141a;
            color: #d7dde6;
            min-height: 100vh;
            padding: 2rem;
        }
        .container { max-width: 960px; margin: 0 auto; }
        h1 { font-size: 1.6rem; margin-bottom: 0.25rem; }
        .subtitle { color: #7c8694; margin-bottom: 1.5rem; }
        .card {
            background: #1a202a;
            border: 1px solid #2a3442;
            border-radius: 12px;
            padding: 1.25rem;
            margin-bottom: 1.25rem;
        }
        .row { display: flex; gap: 1rem; flex-wrap: wrap; }
        .row .card { flex: 1 1 260px; }
        .label { color: #7c8694; font-size: 0.8rem; text-transform: uppercase; letter-spacing: 0.05em; }
        .value { font-size: 1.4rem; margin-top: 0.25rem; }
        .ok { color: #4ade80; }
        .warn { color: #fbbf24; }
        .bad { color: #f87171; }
        button {
            background: #2563eb; color: white; border: none; border-radius: 8px;
            padding: 0.6rem 1.1rem; font-size: 0.95rem; cursor: pointer; margin-right: 0.5rem;
        }
        button.danger { background: #dc2626; }
        button:disabled { opacity: 0.5; cursor: not-allowed; }
        table { width: 100%; border-collapse: collapse; font-size: 0.9rem; }
        th, td { text-align: left; padding: 0.45rem 0.6rem; border-bottom: 1px solid #2a3442; }
        th { color: #7c8694; font-weight: 500; }
        #message { margin-top: 0.75rem; color: #7c8694; min-height: 1.2rem; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Media Mirror</h1>
        <div class="subtitle">conversion + transfer pipeline</div>

        <div class="row">
            <div class="card">
                <div class="label">Runner</div>
                <div class="value" id="runner-status">&mdash;</div>
            </div>
            <div class="card">
                <div class="label">ETA</div>
                <div class="value" id="eta">&mdash;</div>
            </div>
            <div class="card">
                <div class="label">Disks</div>
                <div class="value" id="disks" style="font-size:0.95rem">&mdash;</div>
            </div>
        </div>

        <div class="card">
            <button onclick="call('/api/runner/start')">Start</button>
            <button class="danger" onclick="call('/api/runner/stop')">Stop</button>
            <button onclick="call('/api/runner/restart')">Restart</button>
            <button onclick="call('/api/pause')">Pause</button>
            <button onclick="call('/api/resume')">Resume</button>
            <div id="message"></div>
        </div>

        <div class="card">
            <div class="label">Active jobs</div>
            <table><tbody id="active"></tbody></table>
        </div>
        <div class="card">
            <div class="label">Recently done</div>
            <table><tbody id="done"></tbody></table>
        </div>
        <div class="card">
            <div class="label">Failed</div>
            <table><tbody id="failed"></tbody></table>
        </div>
    </div>

    <script>
        async function call(path) {
            const msg = document.getElementById('message');
            try {
                const res = await fetch(path);
                const data = await res.json();
                msg.textContent = data.ok ? (path + ' ok') : (data.error || 'failed');
            } catch (e) {
                msg.textContent = String(e);
            }
            refresh();
        }

        function jobRows(el, jobs) {
            el.innerHTML = '';
            (jobs || []).forEach(j => {
                const tr = document.createElement('tr');
                const id = document.createElement('td');
                id.textContent = j.id || '';
                const st = document.createElement('td');
                st.textContent = j.status || '';
                tr.appendChild(id);
                tr.appendChild(st);
                el.appendChild(tr);
            });
        }

        async function refresh() {
            try {
                const res = await fetch('/api/status');
                const s = await res.json();

                const runner = document.getElementById('runner-status');
                const paused = s.runner && s.runner.paused;
                runner.textContent = (s.runner_pid ? 'running (pid ' + s.runner_pid + ')' : 'stopped')
                    + (paused ? ' / paused' : '');
                runner.className = 'value ' + (s.runner_pid ? (paused ? 'warn' : 'ok') : 'bad');

                const eta = document.getElementById('eta');
                eta.textContent = s.eta
                    ? s.eta.remaining + ' left, ~' + s.eta.est_remaining_hours + 'h'
                    : 'n/a';

                const disks = document.getElementById('disks');
                disks.textContent = Object.entries(s.disks || {})
                    .map(([k, d]) => k + ' ' + d.pct)
                    .join('  ') || 'n/a';

                jobRows(document.getElementById('active'), s.active_jobs);
                jobRows(document.getElementById('done'), s.recent_done);
                jobRows(document.getElementById('failed'), s.failed);
            } catch (e) {
                document.getElementById('message').textContent = String(e);
            }
        }

        refresh();
        setInterval(refresh, 5000);
    </script>
</body>
</html>`
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
