package preview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	invoiceprint "github.com/lajutuju/go-invoiceprint"
)

const localSession = "session"

type keyRequest struct {
	Key string `json:"key"`
}

// listOrders returns the ids of the orders the store can open.
// GET {base}
func (s *Server) listOrders(c *fiber.Ctx) error {
	ids, err := s.store.List()
	if err != nil {
		return err
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(fiber.Map{"orders": ids})
}

// openPreview mounts a new modal for an order and redirects to it.
// POST {base}orders/:id/preview
func (s *Server) openPreview(c *fiber.Ctx) error {
	order, err := s.store.Get(c.Params("id"))
	if errors.Is(err, ErrOrderNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	t := invoiceprint.TemplateLajuTuju
	if name := c.Query("template", c.FormValue("template")); name != "" {
		if t, err = invoiceprint.ParseTemplate(name); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	ss := s.newSession(order, t)
	s.log.Debug().Str("session", ss.id).Str("order", order.ID).Msg("preview opened")
	return c.Redirect(s.sessionURL(ss), fiber.StatusSeeOther)
}

// loadSession resolves :sid for the session routes.
func (s *Server) loadSession(c *fiber.Ctx) error {
	ss, ok := s.session(c.Params("sid"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown preview session")
	}
	c.Locals(localSession, ss)
	return c.Next()
}

func current(c *fiber.Ctx) *session {
	return c.Locals(localSession).(*session)
}

// showSession renders the modal page. ?template= switches the layout first.
// GET {base}sessions/:sid
func (s *Server) showSession(c *fiber.Ctx) error {
	ss := current(c)
	if name := c.Query("template"); name != "" {
		if err := selectByName(ss, name); err != nil {
			return err
		}
	}

	page, err := ss.modal.HTML(s.actions(ss))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(page)
}

// selectTemplate switches the layout and returns to the modal page.
// POST {base}sessions/:sid/template
func (s *Server) selectTemplate(c *fiber.Ctx) error {
	ss := current(c)
	if err := selectByName(ss, c.FormValue("template")); err != nil {
		return err
	}
	return c.Redirect(s.sessionURL(ss), fiber.StatusSeeOther)
}

func selectByName(ss *session, name string) error {
	t, err := invoiceprint.ParseTemplate(name)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ss.modal.SelectTemplate(t)
}

// printInvoice returns the browser-printed invoice inline.
// GET {base}sessions/:sid/print
func (s *Server) printInvoice(c *fiber.Ctx) error {
	ss := current(c)
	pdf, err := ss.modal.Print(c.Context())
	if err != nil {
		return err
	}
	name := invoiceprint.InvoiceFilename(ss.modal.Template(), ss.modal.Order())
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", name))
	return c.Send(pdf)
}

// downloadPDF returns the rasterized invoice as an attachment.
// GET {base}sessions/:sid/pdf
//
// 204 when the invoice container was not ready, 409 while another export
// of the session runs, 500 with the user-facing notice on failure.
func (s *Server) downloadPDF(c *fiber.Ctx) error {
	ss := current(c)
	dl, err := ss.modal.DownloadPDF(c.Context())
	switch {
	case errors.Is(err, invoiceprint.ErrExportInProgress):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case err != nil:
		// Already logged and alerted by the modal.
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(fiber.StatusInternalServerError).SendString(invoiceprint.FailureNotice)
	case dl == nil:
		return c.SendStatus(fiber.StatusNoContent)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set("X-Invoice-Filename", dl.Filename)
	c.Attachment(dl.Filename)
	return c.Send(dl.PDF)
}

// dispatchKey delivers a key press to the session's document.
// POST {base}sessions/:sid/keys
func (s *Server) dispatchKey(c *fiber.Ctx) error {
	var req keyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid key event")
	}
	if strings.TrimSpace(req.Key) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing key")
	}
	current(c).doc.DispatchKey(req.Key)
	return c.SendStatus(fiber.StatusNoContent)
}

// closeSession dismisses the modal.
// POST {base}sessions/:sid/close
func (s *Server) closeSession(c *fiber.Ctx) error {
	current(c).modal.Close()
	return c.SendStatus(fiber.StatusNoContent)
}
