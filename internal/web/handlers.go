package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	g "maragu.dev/gomponents"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/nav"
)

// anchorRegion is a section of the rendered page. The server cannot measure
// layout, so it only remembers where the browser was asked to scroll.
type anchorRegion struct {
	id     string
	target *string
}

func (r anchorRegion) Top() (float64, bool) { return 0, false }
func (r anchorRegion) ScrollIntoView()      { *r.target = r.id }

// navigation builds the page's navigation state with tab selected, if it
// names a section.
func navigation(tab string) (*nav.State, string) {
	state := nav.NewState(nav.Sections)
	var target string
	for _, sec := range nav.Sections {
		state.Register(sec.ID, anchorRegion{id: sec.ID, target: &target})
	}
	if tab != "" {
		state.Select(tab)
	}
	return state, target
}

func (s *Server) page(tab string, contactPanel g.Node) g.Node {
	state, target := navigation(tab)
	return portfolioPage(pageData{
		Active:       state.Active(),
		ScrollTarget: target,
		Sections:     state.Sections(),
		HTML:         s.sections,
		Contact:      contactPanel,
	})
}

func (s *Server) handleIndex(c *gin.Context) {
	render(c, http.StatusOK, s.page(c.Query("tab"), contactPanel(nil, nil)))
}

type contactRequest struct {
	Name    string `form:"name" binding:"required,max=200"`
	Email   string `form:"email" binding:"required,email,max=254"`
	Message string `form:"message" binding:"required,max=5000"`
}

// handleContact relays a contact form post. htmx requests get the contact
// panel fragment back; plain form posts get the whole page.
func (s *Server) handleContact(c *gin.Context) {
	form := contact.NewFieldForm(contact.Fields...)
	for _, f := range contact.Fields {
		form.Set(f, c.PostForm(f))
	}

	var req contactRequest
	if err := c.ShouldBind(&req); err != nil {
		s.respondContact(c, http.StatusUnprocessableEntity,
			contactPanel(form.Values(), failureNotice(validationMessage(invalidFields(err)))))
		return
	}
	form.Set(contact.FieldName, strings.TrimSpace(req.Name))
	form.Set(contact.FieldEmail, strings.TrimSpace(req.Email))

	opts := []contact.Option{
		contact.WithTimeout(s.opts.RelayTimeout),
		contact.WithLogger(s.log),
		contact.WithRelayName(s.opts.RelayName),
	}
	if s.db != nil {
		opts = append(opts, contact.WithJournal(s.db))
	}
	submitter := contact.NewSubmitter(s.relay, nil, opts...)

	if err := submitter.Submit(c.Request.Context(), form); err != nil {
		s.respondContact(c, http.StatusBadGateway, contactPanel(form.Values(), failureNotice(contact.FailureNotice)))
		return
	}
	s.respondContact(c, http.StatusOK, contactPanel(form.Values(), successAlert(s.opts.AlertTTL)))
}

func (s *Server) respondContact(c *gin.Context, status int, panel g.Node) {
	if c.GetHeader("HX-Request") == "true" {
		// htmx only swaps 2xx responses by default.
		render(c, http.StatusOK, panel)
		return
	}
	render(c, status, s.page("contact", panel))
}

func invalidFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return fields
}
