package patient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ehr/registry/pkg/envelope"
)

type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/patients")
	g.POST("", h.CreatePatient)
	g.GET("", h.ListPatients)
	g.GET("/search", h.SearchPatients)
	g.GET("/email/:email", h.GetPatientByEmail)
	g.GET("/phoneNumber/:phoneNumber", h.GetPatientByPhoneNumber)
	g.GET("/identificationNumber/:identificationNumber", h.GetPatientByIdentificationNumber)
	g.GET("/:id", h.GetPatient)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
			return err
		}
		return envelope.JSON(c, http.StatusBadRequest, envelope.Fail("Failed to create patient: invalid request body"))
	}
	if err := h.svc.CreatePatient(c.Request().Context(), &p); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) || errors.Is(err, ErrDuplicatePatientID) {
			return envelope.JSON(c, http.StatusBadRequest, envelope.Fail("Failed to create patient: "+err.Error()))
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		h.logger.Error().Err(err).Str("patient_id", p.PatientID).Msg("create patient failed")
		return envelope.JSON(c, http.StatusInternalServerError, envelope.Fail("Failed to create patient"))
	}
	return envelope.JSON(c, http.StatusCreated, envelope.OK("Patient created successfully", &p))
}

func (h *Handler) ListPatients(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return envelope.JSON(c, http.StatusBadRequest, envelope.Fail(err.Error()))
	}
	patients, err := h.svc.ListPatients(c.Request().Context(), f)
	if err != nil {
		return h.readFailure(c, err, "Failed to retrieve patients")
	}
	return envelope.JSON(c, http.StatusOK, envelope.List("Patients retrieved successfully", patients))
}

func (h *Handler) GetPatient(c echo.Context) error {
	id := pathParam(c, "id")
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	return h.single(c, p, err, "Patient not found with ID: "+id)
}

func (h *Handler) GetPatientByEmail(c echo.Context) error {
	email := pathParam(c, "email")
	p, err := h.svc.GetPatientByEmail(c.Request().Context(), email)
	return h.single(c, p, err, "Patient not found with email: "+email)
}

func (h *Handler) GetPatientByPhoneNumber(c echo.Context) error {
	phone := pathParam(c, "phoneNumber")
	p, err := h.svc.GetPatientByPhoneNumber(c.Request().Context(), phone)
	return h.single(c, p, err, "Patient not found with phone number: "+phone)
}

func (h *Handler) GetPatientByIdentificationNumber(c echo.Context) error {
	number := pathParam(c, "identificationNumber")
	p, err := h.svc.GetPatientByIdentificationNumber(c.Request().Context(), number)
	return h.single(c, p, err, "Patient not found with identification number: "+number)
}

func (h *Handler) SearchPatients(c echo.Context) error {
	patients, err := h.svc.SearchPatients(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return h.readFailure(c, err, "Failed to search patients")
	}
	return envelope.JSON(c, http.StatusOK, envelope.List("Patients search completed successfully", patients))
}

func (h *Handler) single(c echo.Context, p *Patient, err error, notFound string) error {
	if errors.Is(err, ErrNotFound) {
		return envelope.JSON(c, http.StatusNotFound, envelope.Fail(notFound))
	}
	if err != nil {
		return h.readFailure(c, err, "Failed to retrieve patient")
	}
	return envelope.JSON(c, http.StatusOK, envelope.OK("Patient retrieved successfully", p))
}

func (h *Handler) readFailure(c echo.Context, err error, message string) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return envelope.JSON(c, http.StatusBadRequest, envelope.Fail(err.Error()))
	}
	// Left to the timeout middleware, which answers 504.
	if errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	h.logger.Error().Err(err).Str("path", c.Path()).Msg(message)
	return envelope.JSON(c, http.StatusInternalServerError, envelope.Fail(message+": "+err.Error()))
}

// pathParam returns the decoded value of a path parameter. Phone numbers and
// emails arrive percent-encoded.
func pathParam(c echo.Context, name string) string {
	raw := c.Param(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func filterFromQuery(c echo.Context) (Filter, error) {
	f := Filter{
		Gender:     Gender(strings.ToUpper(c.QueryParam("gender"))),
		BloodGroup: BloodGroup(strings.ToUpper(c.QueryParam("bloodGroup"))),
		City:       strings.TrimSpace(c.QueryParam("city")),
	}
	for _, q := range []struct {
		name string
		dst  **int
	}{{"minAge", &f.MinAge}, {"maxAge", &f.MaxAge}} {
		v := c.QueryParam(q.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Filter{}, newValidationError("%s must be an integer", q.name)
		}
		*q.dst = &n
	}
	return f, nil
}
