package web

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/nav"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// renderSections converts every section's markdown to HTML once.
func renderSections() (map[string]string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	out := make(map[string]string, len(content.Sections))
	for id, src := range content.Sections {
		var buf bytes.Buffer
		if err := md.Convert([]byte(src), &buf); err != nil {
			return nil, fmt.Errorf("rendering section %s: %w", id, err)
		}
		out[id] = buf.String()
	}
	return out, nil
}

type pageData struct {
	Active       string
	ScrollTarget string
	Sections     []nav.Section
	HTML         map[string]string
	Contact      g.Node
}

func layout(title string, body ...g.Node) g.Node {
	return h.Doctype(
		h.HTML(h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(title)),
				h.Script(h.Src(htmxSrc)),
			),
			h.Body(body...),
		),
	)
}

func portfolioPage(d pageData) g.Node {
	return layout("Portfolio",
		h.Nav(h.Class("tabs"),
			g.Map(d.Sections, func(s nav.Section) g.Node {
				return h.A(
					h.Href("/?tab="+s.ID+"#"+s.ID),
					g.If(s.ID == d.Active, h.Class("tab active")),
					g.If(s.ID != d.Active, h.Class("tab")),
					g.If(s.ID == d.Active, g.Attr("aria-current", "page")),
					g.Text(s.Label),
				)
			}),
		),
		h.Main(
			g.If(d.ScrollTarget != "", h.Data("scroll-target", d.ScrollTarget)),
			g.Map(d.Sections, func(s nav.Section) g.Node {
				return h.Section(h.ID(s.ID),
					g.Raw(d.HTML[s.ID]),
					g.If(s.ID == "contact", d.Contact),
				)
			}),
		),
		h.Footer(g.Textf("© %d %s", time.Now().Year(), content.Footer)),
	)
}

// contactPanel is the swappable contact form region. values pre-fills the
// fields; notice is shown above the form.
func contactPanel(values map[string]string, notice g.Node) g.Node {
	return h.Div(h.ID("contact-form"),
		notice,
		h.Form(
			h.Method("post"), h.Action("/contact"),
			g.Attr("hx-post", "/contact"),
			g.Attr("hx-target", "#contact-form"),
			g.Attr("hx-swap", "outerHTML"),
			h.Label(h.For("name"), g.Text("Name")),
			h.Input(h.ID("name"), h.Name(contact.FieldName), h.Type("text"), h.Required(), h.Value(values[contact.FieldName])),
			h.Label(h.For("email"), g.Text("Email")),
			h.Input(h.ID("email"), h.Name(contact.FieldEmail), h.Type("email"), h.Required(), h.Value(values[contact.FieldEmail])),
			h.Label(h.For("message"), g.Text("Message")),
			h.Textarea(h.ID("message"), h.Name(contact.FieldMessage), h.Rows("5"), h.Required(), g.Text(values[contact.FieldMessage])),
			h.Button(h.Type("submit"), g.Text("Send")),
		),
	)
}

// successAlert removes itself after ttl by asking the server for an empty
// replacement.
func successAlert(ttl time.Duration) g.Node {
	return h.Div(h.ID("alert"), h.Class("alert success"), h.Role("status"),
		g.Attr("hx-get", "/alert/dismiss"),
		g.Attr("hx-trigger", fmt.Sprintf("load delay:%dms", ttl.Milliseconds())),
		g.Attr("hx-swap", "outerHTML"),
		g.Text("📬 "+contact.SuccessNotice),
	)
}

func failureNotice(msg string) g.Node {
	return h.Div(h.Class("notice error"), h.Role("alert"), g.Text(msg))
}

func messagePage(title, msg string) g.Node {
	return layout(title,
		h.Main(
			h.H1(g.Text(title)),
			h.P(g.Text(msg)),
		),
	)
}

// validationMessage turns binding errors into one visitor-facing line.
func validationMessage(fields []string) string {
	if len(fields) == 0 {
		return "Please check the form and try again."
	}
	return "Please check these fields: " + strings.Join(fields, ", ") + "."
}
