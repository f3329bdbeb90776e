package http

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/aretw0/cardmenu/internal/menu"
	"github.com/aretw0/cardmenu/pkg/binder"
	"github.com/aretw0/cardmenu/pkg/cx"
	"github.com/go-chi/chi/v5"
)

// GetPage handles GET /sessions/{id}/page with a small HTML view whose
// buttons post to the dispatch route.
func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var page templ.Component
	err := s.Sessions.Do(r.Context(), id, func(b *binder.Binder) error {
		var err error
		page, err = s.page(id, b)
		return err
	})
	if err != nil {
		s.fail(w, "Page", err)
		return
	}
	templ.Handler(page).ServeHTTP(w, r)
}

func (s *Server) page(id string, b *binder.Binder) (templ.Component, error) {
	view := b.Snapshot()

	var body strings.Builder
	if s.copy != nil {
		screen, err := s.copy.Screen(b.State())
		if err != nil {
			return nil, err
		}
		if err := writeScreen(&body, screen); err != nil {
			return nil, err
		}
	} else {
		data, err := json.MarshalIndent(view.Data, "", "  ")
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&body, "<pre class=\"data\">%s</pre>\n", html.EscapeString(string(data)))
	}

	mainClass, err := cx.Join("page", map[string]bool{modeClass(view.Mode): true})
	if err != nil {
		return nil, err
	}

	var buttons strings.Builder
	for _, group := range []struct {
		names      []string
		transition bool
	}{
		{view.Actions.Names(), false},
		{view.Transitions.Names(), true},
	} {
		for _, name := range group.names {
			class, err := cx.Join("btn", cx.If("btn--action", !group.transition), cx.If("btn--transition", group.transition))
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(&buttons, "<button class=\"%s\" data-type=\"%s\">%s</button>\n",
				class, html.EscapeString(name), html.EscapeString(name))
		}
	}

	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, pageTemplate,
			html.EscapeString(string(view.Mode)),
			mainClass,
			html.EscapeString(string(view.Mode)),
			body.String(),
			buttons.String(),
			html.EscapeString(id),
		)
		return err
	}), nil
}

func writeScreen(w io.Writer, screen menu.Screen) error {
	fmt.Fprintf(w, "<h2 class=\"title\">%s</h2>\n", html.EscapeString(screen.Title))

	switch screen.Mode {
	case menu.RootMenu:
		fmt.Fprintln(w, "<ul class=\"items\">")
		for _, item := range screen.Items {
			class, err := cx.Join("item", cx.If("item--selected", item.Selected))
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "<li class=\"%s\">%s</li>\n", class, html.EscapeString(item.Label))
		}
		fmt.Fprintln(w, "</ul>")
	case menu.Playing:
		class, err := cx.Join("hand", map[string]bool{"hand--empty": len(screen.Hand) == 0})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "<div class=\"%s\">\n", class)
		for _, c := range screen.Hand {
			img := c.Image(0)
			cardClass, err := cx.Join("card", cx.If("card--red", c.Red()))
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "<img class=\"%s\" width=\"%d\" alt=\"%s\" src=\"%s\">\n",
				cardClass, img.Width, html.EscapeString(img.Alt), html.EscapeString(img.Src))
		}
		fmt.Fprintln(w, "</div>")
		fmt.Fprintf(w, "<p class=\"deck\">%d cards left</p>\n", screen.Remaining)
	case menu.Rules:
		fmt.Fprintf(w, "<pre class=\"rules\">%s</pre>\n", html.EscapeString(screen.Rules))
		fmt.Fprintf(w, "<p class=\"pager\">page %d of %d</p>\n", screen.Page+1, screen.Pages)
	}
	return nil
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<title>%s</title>
</head>
<body>
<main class="%s">
<h1>%s</h1>
%s<nav class="handlers">
%s</nav>
</main>
<script>
document.querySelectorAll("button[data-type]").forEach((btn) => {
  btn.addEventListener("click", async () => {
    await fetch("/sessions/%s/dispatch", {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify({type: btn.dataset.type}),
    });
    location.reload();
  });
});
</script>
</body>
</html>
`
