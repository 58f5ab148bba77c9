package logview

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>AutoShot log</title>
    <style>
        body {
            margin: 0;
            padding: 20px;
            background: #1e1e1e;
            color: #e0e0e0;
            font-family: Arial, sans-serif;
        }
        .container {
            max-width: 640px;
            margin: 0 auto;
        }
        .status {
            display: flex;
            justify-content: space-between;
            align-items: center;
            padding: 12px 16px;
            background: #2a2a2a;
            border-radius: 4px;
        }
        .state.running { color: #4CAF50; }
        .state.stopped { color: #888; }
        .settings {
            color: #888;
            font-size: 12px;
            margin: 8px 0 16px;
        }
        #log {
            list-style: none;
            margin: 0;
            padding: 0;
            height: 320px;
            overflow-y: auto;
            background: #2a2a2a;
            border-radius: 4px;
            font-family: monospace;
        }
        #log li {
            padding: 6px 12px;
            border-bottom: 1px solid #333;
        }
        .notice {
            margin-top: 12px;
            padding: 10px;
            border-radius: 4px;
            display: none;
        }
        .notice.info { background: #2196F3; color: white; display: block; }
        .notice.error { background: #f44336; color: white; display: block; }
    </style>
</head>
<body>
    <div class="container">
        <div class="status">
            <strong>AutoShot</strong>
            <span id="state" class="state stopped">stopped</span>
        </div>
        <div id="settings" class="settings"></div>
        <ul id="log"></ul>
        <div id="notice" class="notice"></div>
    </div>
    <script>
        const stateEl = document.getElementById('state');
        const settingsEl = document.getElementById('settings');
        const logEl = document.getElementById('log');
        const noticeEl = document.getElementById('notice');

        function setState(state) {
            stateEl.textContent = state;
            stateEl.className = 'state ' + state;
        }

        function showNotice(text, kind) {
            noticeEl.textContent = text || '';
            noticeEl.className = text ? 'notice ' + kind : 'notice';
        }

        function append(record) {
            const li = document.createElement('li');
            li.textContent = record.file_name;
            li.title = record.path;
            logEl.appendChild(li);
            logEl.scrollTop = logEl.scrollHeight;
        }

        function render(snap) {
            setState(snap.state);
            settingsEl.textContent = snap.folder
                ? snap.folder + ' | every ' + snap.interval_seconds + 's | ' + snap.format
                : '';
            logEl.innerHTML = '';
            (snap.records || []).forEach(append);
            if (snap.error) {
                showNotice(snap.error, 'error');
            } else {
                showNotice(snap.notice, 'info');
            }
        }

        function connect() {
            const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
            ws.onmessage = function(event) {
                const msg = JSON.parse(event.data);
                switch (msg.type) {
                case 'snapshot':
                case 'started':
                    render(msg.snapshot);
                    break;
                case 'captured':
                    append(msg.record);
                    break;
                case 'stopped':
                    setState('stopped');
                    if (msg.error) {
                        showNotice(msg.error, 'error');
                    } else {
                        showNotice(msg.notice, 'info');
                    }
                    break;
                case 'failed':
                    showNotice(msg.error, 'error');
                    break;
                }
            };
            ws.onclose = function() {
                setTimeout(connect, 1000);
            };
        }

        connect();
    </script>
</body>
</html>`
