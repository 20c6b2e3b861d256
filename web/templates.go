package web

import (
	"html/template"
	"strconv"
)

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"listPath": listPath,
		"deletePath": func(list string, index int) string {
			return "/delete_task/" + list + "/" + strconv.Itoa(index)
		},
		"completePath": func(list string, index int) string {
			return "/complete_task/" + list + "/" + strconv.Itoa(index)
		},
	}
	tmpl := template.New("layout").Funcs(funcs)
	template.Must(tmpl.Parse(layoutTemplate))
	template.Must(tmpl.New("home").Parse(homeTemplate))
	template.Must(tmpl.New("list").Parse(listTemplate))
	return tmpl
}

const layoutTemplate = `{{define "head"}}<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.}}</title>
  <style>
    :root {
      color-scheme: light;
    }
    body {
      margin: 0;
      font-family: "Charter", "Georgia", serif;
      color: #2b2520;
      background: radial-gradient(circle at top left, #f4efe3 0%, #fcfaf6 55%, #f6f2e8 100%);
    }
    header {
      padding: 16px 24px;
      border-bottom: 1px solid #d7cdbd;
      background: rgba(255, 255, 255, 0.72);
    }
    header h1 {
      margin: 0 0 8px 0;
      font-size: 20px;
      letter-spacing: 0.02em;
    }
    .tabs {
      display: flex;
      gap: 12px;
    }
    .tab {
      padding: 8px 14px;
      border-radius: 999px;
      text-decoration: none;
      color: #5b5148;
      border: 1px solid transparent;
    }
    .tab.active {
      color: #1d1712;
      border-color: #d1c6b6;
      background: #f5efe4;
      font-weight: 600;
    }
    main {
      max-width: 720px;
      padding: 18px 24px 28px;
    }
    .pane {
      background: #ffffff;
      border: 1px solid #d7cdbd;
      border-radius: 14px;
      box-shadow: 0 8px 24px rgba(60, 45, 30, 0.08);
      padding: 16px 20px;
      margin-bottom: 18px;
    }
    .pane h2 {
      margin: 0 0 12px 0;
      font-size: 16px;
    }
    .item-list {
      list-style: none;
      padding: 0;
      margin: 0;
      display: flex;
      flex-direction: column;
      gap: 8px;
    }
    .list-item {
      display: flex;
      align-items: center;
      gap: 12px;
      padding: 10px 12px;
      border-radius: 10px;
      border: 1px solid #ece4d7;
    }
    .list-item[draggable="true"] {
      cursor: grab;
    }
    .list-item.dragging {
      opacity: 0.5;
    }
    .item-title {
      flex: 1;
      font-weight: 600;
    }
    .completed .item-title {
      font-weight: normal;
      text-decoration: line-through;
      color: #72685f;
    }
    .item-meta {
      color: #72685f;
      font-size: 12px;
    }
    .item-actions a {
      margin-left: 8px;
      color: #5b5148;
      font-size: 14px;
    }
    .empty {
      color: #72685f;
      font-style: italic;
    }
    .error {
      padding: 10px 12px;
      border-radius: 10px;
      background: #f4d7d2;
      border: 1px solid #d7a7a1;
      margin-bottom: 18px;
    }
    form.add {
      display: flex;
      gap: 10px;
    }
    input[type="text"] {
      flex: 1;
      padding: 8px 10px;
      border-radius: 8px;
      border: 1px solid #cbbfae;
      font-family: inherit;
      font-size: 14px;
      background: #fffdf9;
    }
    button {
      padding: 8px 14px;
      border-radius: 8px;
      border: 1px solid #bfb3a2;
      background: #efe6d7;
      font-family: inherit;
      cursor: pointer;
    }
    .actions {
      margin-top: 12px;
    }
  </style>
</head>
<body>
{{end}}

{{define "tabs"}}
  <nav class="tabs">
    {{- $current := .List.Name}}
    {{- range .Lists}}
    <a class="tab{{if eq .Name $current}} active{{end}}" href="{{listPath .Name}}">{{.Title}}</a>
    {{- end}}
  </nav>
{{end}}

{{define "foot"}}
</body>
</html>
{{end}}`

const homeTemplate = `{{template "head" "Todo Lists"}}
<header>
  <h1>Todo Lists</h1>
</header>
<main>
  <section class="pane">
    <h2>Lists</h2>
    <ul class="item-list">
      {{- range .Lists}}
      <li class="list-item"><a class="item-title" href="{{listPath .Name}}">{{.Title}}</a></li>
      {{- end}}
    </ul>
  </section>
</main>
{{template "foot"}}`

const listTemplate = `{{template "head" .List.Title}}
{{- $list := .List.Name}}
<header>
  <h1><a href="/" class="tab">&larr;</a> {{.List.Title}}</h1>
  {{template "tabs" .}}
</header>
<main>
  {{- if .Error}}
  <div class="error">{{.Error}}</div>
  {{- end}}
  <section class="pane">
    <form class="add" method="post" action="/add_task/{{$list}}">
      <input type="text" name="task" placeholder="New task" autofocus>
      <button type="submit">Add</button>
    </form>
  </section>

  <section class="pane">
    <h2>Active</h2>
    {{- if .Active}}
    <form id="reorder" method="post" action="/rearrange_tasks/{{$list}}">
      <ul class="item-list" id="active-tasks">
        {{- range $position, $task := .Active}}
        <li class="list-item" draggable="true">
          <input type="hidden" name="task_order[]" value="{{$position}}">
          <span class="item-title">{{$task.Text}}</span>
          <span class="item-meta">{{$task.Timestamp}}</span>
          <span class="item-actions">
            <a href="{{completePath $list $task.Index}}">Complete</a>
            <a href="{{deletePath $list $task.Index}}">Delete</a>
          </span>
        </li>
        {{- end}}
      </ul>
      <div class="actions"><button type="submit">Save order</button></div>
    </form>
    {{- else}}
    <p class="empty">No active tasks.</p>
    {{- end}}
  </section>

  <section class="pane">
    <h2>Completed</h2>
    {{- if .Completed}}
    <ul class="item-list">
      {{- range .Completed}}
      <li class="list-item completed">
        <span class="item-title">{{.Text}}</span>
        <span class="item-meta">{{.Timestamp}}</span>
        <span class="item-actions"><a href="{{deletePath $list .Index}}">Delete</a></span>
      </li>
      {{- end}}
    </ul>
    {{- else}}
    <p class="empty">No completed tasks.</p>
    {{- end}}
  </section>
</main>
<script>
(function () {
  var list = document.getElementById("active-tasks");
  if (!list) {
    return;
  }
  var dragged = null;
  list.addEventListener("dragstart", function (event) {
    dragged = event.target.closest("li");
    if (dragged) {
      dragged.classList.add("dragging");
    }
  });
  list.addEventListener("dragend", function () {
    if (dragged) {
      dragged.classList.remove("dragging");
    }
    dragged = null;
  });
  list.addEventListener("dragover", function (event) {
    event.preventDefault();
    var target = event.target.closest("li");
    if (!dragged || !target || target === dragged) {
      return;
    }
    var rect = target.getBoundingClientRect();
    var after = event.clientY > rect.top + rect.height / 2;
    list.insertBefore(dragged, after ? target.nextSibling : target);
  });
})();
</script>
{{template "foot"}}`
