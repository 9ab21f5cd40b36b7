package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// TicketsHandler exposes the ticket lifecycle, listing and summary endpoints.
type TicketsHandler struct {
	tickets *service.TicketService
	summary *service.SummaryService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, summaryService *service.SummaryService) *TicketsHandler {
	return &TicketsHandler{tickets: ticketService, summary: summaryService}
}

// Create POST /api/ticket.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req dto.TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.tickets.Create(c.UserContext(), req.ToDomain(), caller)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Update PUT /api/ticket.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req dto.TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.tickets.Update(c.UserContext(), req.ToDomain(), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// FindByID GET /api/ticket/:id.
func (h *TicketsHandler) FindByID(c *fiber.Ctx) error {
	ticket, err := h.tickets.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Delete DELETE /api/ticket/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	if err := h.tickets.Delete(c.UserContext(), c.Params("id"), caller); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ChangeStatus PUT /api/ticket/:id/:status.
func (h *TicketsHandler) ChangeStatus(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	ticket, err := h.tickets.ChangeStatus(c.UserContext(), c.Params("id"), pathParam(c, "status"), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// List GET /api/ticket/:page/:count and
// GET /api/ticket/:page/:count/:number/:title/:status/:priority/:assigned.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	filter, err := parseListFilter(c)
	if err != nil {
		return err
	}
	page, err := h.tickets.List(c.UserContext(), caller, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketPageResponse(page)})
}

// Summary GET /api/ticket/summary.
func (h *TicketsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.summary.Summarize(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSummaryResponse(summary)})
}

func callerFrom(c *fiber.Ctx) (domain.Caller, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return domain.Caller{}, apperrors.NewUnauthorized("user required")
	}
	return principal.Caller(), nil
}

// parseListFilter reads the listing path. Missing filter segments and the
// "uninformed" placeholder both mean no restriction.
func parseListFilter(c *fiber.Ctx) (service.ListFilter, error) {
	page, count, problems := parsePaging(c)
	filter := service.ListFilter{
		Page:     page,
		PageSize: count,
		Title:    pathParam(c, "title"),
		Status:   pathParam(c, "status"),
		Priority: pathParam(c, "priority"),
	}

	if raw := c.Params("number"); raw != "" && raw != service.Uninformed {
		number, err := strconv.Atoi(raw)
		if err != nil {
			problems = append(problems, "number must be an integer")
		}
		filter.Number = number
	}
	if raw := c.Params("assigned"); raw != "" && raw != service.Uninformed {
		assigned, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, "assigned must be true or false")
		}
		filter.AssignedOnly = assigned
	}

	if err := apperrors.NewValidationErrors(problems); err != nil {
		return service.ListFilter{}, err
	}
	return filter, nil
}

// parsePaging reads the zero-based :page and the :count path params.
func parsePaging(c *fiber.Ctx) (int, int, []string) {
	var problems []string
	page, err := strconv.Atoi(c.Params("page"))
	if err != nil || page < 0 {
		problems = append(problems, "page must be a non-negative integer")
	}
	count, err := strconv.Atoi(c.Params("count"))
	if err != nil || count < 1 {
		problems = append(problems, "count must be a positive integer")
	}
	return page, count, problems
}

func pathParam(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
