// ============================================================================
// astview - AST Tree Viewer
// ============================================================================
//
// Package:     render
// Description: Standalone HTML page hosting a rendered tree fragment
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package render

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	mdwerror "github.com/msto63/astview/foundation/core/error"
)

// TreeID is the id of the element that holds the rendered fragment
const TreeID = "tree"

// PageOptions controls the generated page
type PageOptions struct {
	// LiveReload embeds the websocket client of the debug server
	LiveReload bool

	// SocketPath is the websocket endpoint (default "/ws")
	SocketPath string
}

// liveReloadScript replaces the tree on every fragment message and keeps
// sections that were open before the update open afterwards
const liveReloadScript = `(function () {
  var path = document.body.getAttribute("data-socket") || "/ws";
  var scheme = location.protocol === "https:" ? "wss://" : "ws://";
  function connect() {
    var ws = new WebSocket(scheme + location.host + path);
    var timer = setInterval(function () {
      if (ws.readyState === 1) ws.send(JSON.stringify({type: "ping"}));
    }, 30000);
    ws.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      if (msg.type !== "fragment") return;
      var tree = document.getElementById("` + TreeID + `");
      var open = [];
      tree.querySelectorAll("details").forEach(function (d, i) { if (d.open) open.push(i); });
      tree.innerHTML = msg.payload;
      var all = tree.querySelectorAll("details");
      open.forEach(function (i) { if (all[i]) all[i].open = true; });
    };
    ws.onclose = function () { clearInterval(timer); setTimeout(connect, 1000); };
  }
  connect();
})();`

// Page builds an HTML document with the fragment inside <main id="tree">
func Page(title string, fragment *html.Node, opts PageOptions) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	titleNode := element(atom.Title)
	titleNode.AppendChild(text(title))
	head.AppendChild(titleNode)
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)

	container := element(atom.Main)
	container.Attr = []html.Attribute{{Key: "id", Val: TreeID}}
	if fragment != nil {
		container.AppendChild(fragment)
	}
	body.AppendChild(container)

	if opts.LiveReload {
		socketPath := opts.SocketPath
		if socketPath == "" {
			socketPath = "/ws"
		}
		body.Attr = append(body.Attr, html.Attribute{Key: "data-socket", Val: socketPath})

		script := element(atom.Script)
		script.AppendChild(text(liveReloadScript))
		body.AppendChild(script)
	}

	return doc
}

// WritePage serializes a page built by Page
func WritePage(w io.Writer, page *html.Node) error {
	if err := html.Render(w, page); err != nil {
		return mdwerror.Wrap(err, "failed to write HTML page").
			WithCode(mdwerror.CodeRenderFailed).
			WithOperation("render.WritePage")
	}
	return nil
}
