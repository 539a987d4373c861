package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/dto"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/middleware"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/tattoo-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/validators"
)

const maxBookingBody = 1 << 20

// ======================================================
// USE CASE PORTS
// ======================================================

type AppointmentCreator interface {
	Execute(ctx context.Context, userID uuid.UUID, in validators.BookingRequest) (*models.Appointment, error)
}

type AppointmentLister interface {
	Execute(ctx context.Context, userID uuid.UUID, in ucAppointment.ListAppointmentsInput) (*ucAppointment.ListAppointmentsOutput, error)
}

type AppointmentGetter interface {
	Execute(ctx context.Context, userID uuid.UUID, appointmentID uuid.UUID) (*models.Appointment, error)
}

type AppointmentStatusUpdater interface {
	Execute(ctx context.Context, userID uuid.UUID, appointmentID uuid.UUID, to domain.Status) (*models.Appointment, error)
}

type DepositCheckoutCreator interface {
	Execute(ctx context.Context, userID uuid.UUID, appointmentID uuid.UUID) (*ucAppointment.Checkout, error)
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create  AppointmentCreator
	list    AppointmentLister
	get     AppointmentGetter
	status  AppointmentStatusUpdater
	deposit DepositCheckoutCreator
}

func NewAppointmentHandler(
	create AppointmentCreator,
	list AppointmentLister,
	get AppointmentGetter,
	status AppointmentStatusUpdater,
	deposit DepositCheckoutCreator,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:  create,
		list:    list,
		get:     get,
		status:  status,
		deposit: deposit,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := middleware.MustUserID(c)

	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBookingBody)
	req, err := validators.ParseBooking(body)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), userID, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.AppointmentCreatedResponse{
		Appointment: ap,
		Message:     "Appointment request created",
	})
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	userID := middleware.MustUserID(c)
	tz := c.DefaultQuery("tz", timezone.Default())

	from, ok1 := optionalTime(c, "from", tz)
	to, ok2 := optionalTime(c, "to", tz)
	if !ok1 || !ok2 {
		httperr.Respond(c, httperr.ErrBusiness("invalid_request"))
		return
	}

	in := ucAppointment.ListAppointmentsInput{From: from, To: to}
	in.Page, in.Limit = pageParams(c)

	if s := c.Query("status"); s != "" {
		status, err := domain.ParseStatus(s)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		in.Status = &status
	}

	out, err := h.list.Execute(c.Request.Context(), userID, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, out.Items, out.Total, out.Page, out.Limit)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id", "appointment_not_found")
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), middleware.MustUserID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c, "id", "appointment_not_found")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.ErrBusiness("invalid_request"))
		return
	}

	to, err := domain.ParseStatus(req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), middleware.MustUserID(c), id, to)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DEPOSIT
// ======================================================

func (h *AppointmentHandler) Deposit(c *gin.Context) {
	id, ok := idParam(c, "id", "appointment_not_found")
	if !ok {
		return
	}

	checkout, err := h.deposit.Execute(c.Request.Context(), middleware.MustUserID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.DepositCheckoutResponse{
		PreferenceID: checkout.PreferenceID,
		CheckoutURL:  checkout.URL,
	})
}
