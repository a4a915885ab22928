package server

import "net/http"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(chatPage))
}

// chatPage is the whole UI. It is deliberately a single static page: all
// state lives server-side in the session transcript, and every action is a
// round trip against the JSON API.
const chatPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>EduGenie – AI Academic Assistant</title>
<style>
  body { margin: 0; font-family: "Segoe UI", sans-serif; background: #0f172a; color: #e2e8f0; display: flex; height: 100vh; }
  #sidebar { width: 240px; padding: 16px; background: #111827; border-right: 1px solid #334155; }
  #sidebar h1 { font-size: 1.2rem; margin: 0 0 4px; }
  #sidebar .caption { color: #94a3b8; font-size: 0.8rem; margin-bottom: 12px; }
  #sidebar button { display: block; width: 100%; margin: 6px 0; padding: 8px; border-radius: 8px; border: 1px solid #38bdf8; background: #1e293b; color: #e2e8f0; cursor: pointer; }
  #sidebar label { font-size: 0.85rem; display: block; margin: 10px 0; }
  #insights { font-size: 0.85rem; color: #94a3b8; }
  #main { flex: 1; display: flex; flex-direction: column; }
  #messages { flex: 1; overflow-y: auto; padding: 20px; }
  .msg { max-width: 70%; margin-bottom: 10px; padding: 10px 14px; border-radius: 14px; white-space: pre-wrap; }
  .user { background: #1d4ed8; margin-left: auto; }
  .assistant { background: #1e293b; border: 1px solid #334155; }
  #chat-form { display: flex; padding: 14px; border-top: 1px solid #334155; }
  #chat-form input { flex: 1; padding: 10px; border-radius: 10px; border: 1px solid #38bdf8; background: #1e293b; color: #e2e8f0; }
  #chat-form button { margin-left: 8px; padding: 10px 18px; border-radius: 10px; border: none; background: #38bdf8; color: #0f172a; cursor: pointer; }
</style>
</head>
<body>
<div id="sidebar">
  <h1>🎓 EduGenie</h1>
  <div class="caption">AI Academic Assistant</div>
  <label><input type="checkbox" id="explain10"> Explain Like I'm 10</label>
  <button onclick="clearChat()">Clear Chat</button>
  <div class="caption">Smart Tools use your latest message as the topic.</div>
  <button onclick="runTool('quiz')">Generate Quiz 📝</button>
  <button onclick="runTool('summary')">Summarize Topic 📚</button>
  <button onclick="runTool('study_plan')">Study Plan 📅</button>
  <h3>Learning Insights</h3>
  <div id="insights">No topics tracked yet.</div>
</div>
<div id="main">
  <div id="messages"></div>
  <form id="chat-form" onsubmit="sendMessage(event)">
    <input id="prompt" autocomplete="off" placeholder="Ask a question about any topic...">
    <button type="submit">Send</button>
  </form>
</div>
<script>
async function refresh() {
  const res = await fetch('/api/messages');
  const data = await res.json();
  const box = document.getElementById('messages');
  box.innerHTML = '';
  for (const m of data.messages) {
    const div = document.createElement('div');
    div.className = 'msg ' + (m.role === 'user' ? 'user' : 'assistant');
    div.textContent = m.content;
    box.appendChild(div);
  }
  box.scrollTop = box.scrollHeight;
  loadInsights();
}

async function loadInsights() {
  const res = await fetch('/api/insights');
  const data = await res.json();
  const el = document.getElementById('insights');
  if (!data.topics.length) { el.textContent = 'No topics tracked yet.'; return; }
  el.innerHTML = data.topics.map(t => '• ' + t.topic + ' (' + t.count + ')').join('<br>');
}

async function sendMessage(event) {
  event.preventDefault();
  const input = document.getElementById('prompt');
  const content = input.value.trim();
  if (!content) return;
  input.value = '';
  await fetch('/api/chat', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({content})
  });
  refresh();
}

async function runTool(tool) {
  await fetch('/api/tools/' + tool, {method: 'POST', headers: {'Content-Type': 'application/json'}, body: '{}'});
  refresh();
}

async function clearChat() {
  await fetch('/api/clear', {method: 'POST'});
  refresh();
}

document.getElementById('explain10').addEventListener('change', async (e) => {
  await fetch('/api/settings', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({explain_like_10: e.target.checked})
  });
});

refresh();
</script>
</body>
</html>
`
