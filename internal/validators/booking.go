package validators

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
)

// BookingPayload mirrors the wire format. Every field is a pointer so that
// "absent" and "zero" stay distinguishable until validation.
type BookingPayload struct {
	ArtistID        *string   `json:"artistId"`
	Date            *string   `json:"date"`
	Duration        *float64  `json:"duration"`
	TattooStyle     *string   `json:"tattooStyle"`
	Description     *string   `json:"description"`
	ReferenceImages []*string `json:"referenceImages"`
	EstimatedPrice  *float64  `json:"estimatedPrice"`
	Deposit         *float64  `json:"deposit"`
	Notes           *string   `json:"notes"`
}

// BookingRequest is the normalized result of a successful validation.
type BookingRequest struct {
	ArtistID        uuid.UUID
	Start           time.Time
	DurationMinutes int
	TattooStyle     string
	Description     string
	Notes           string
	ReferenceImages []string
	EstimatedPrice  *decimal.Decimal
	Deposit         *decimal.Decimal
}

// ParseBooking decodes and validates a booking body. Any failure, including
// malformed JSON, comes back as *httperr.ValidationError.
func ParseBooking(r io.Reader) (BookingRequest, error) {
	var p BookingPayload

	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return BookingRequest{}, decodeError(err)
	}

	return ValidateBooking(p)
}

// ParseBookingBytes is ParseBooking for an already-read body.
func ParseBookingBytes(body []byte) (BookingRequest, error) {
	return ParseBooking(bytes.NewReader(body))
}

func ValidateBooking(p BookingPayload) (BookingRequest, error) {
	var artistID uuid.UUID

	err := validation.ValidateStruct(&p,
		validation.Field(&p.ArtistID,
			validation.Required.Error("artistId is required"),
			validation.By(func(value interface{}) error {
				s, ok := value.(*string)
				if !ok || s == nil {
					return nil
				}
				id, err := uuid.Parse(*s)
				if err != nil {
					return errors.New("must be a valid id")
				}
				artistID = id
				return nil
			}),
		),
		validation.Field(&p.Date,
			validation.Required.Error("date is required"),
			validation.By(isoDateTime),
		),
		validation.Field(&p.Duration,
			validation.Required.Error("duration is required"),
			validation.By(wholeNumber),
			validation.Min(float64(domain.MinDurationMinutes)).Error(fmt.Sprintf("must be at least %d minutes", domain.MinDurationMinutes)),
			validation.Max(float64(domain.MaxDurationMinutes)).Error(fmt.Sprintf("must be at most %d minutes", domain.MaxDurationMinutes)),
		),
		validation.Field(&p.ReferenceImages,
			validation.Each(validation.NotNil.Error("must be a string")),
		),
		validation.Field(&p.EstimatedPrice,
			validation.NilOrNotEmpty.Error("must be a positive number"),
			validation.Min(0.0).Exclusive().Error("must be a positive number"),
			validation.By(positiveCents),
		),
		validation.Field(&p.Deposit,
			validation.NilOrNotEmpty.Error("must be a positive number"),
			validation.Min(0.0).Exclusive().Error("must be a positive number"),
			validation.By(positiveCents),
		),
	)
	if err != nil {
		return BookingRequest{}, toValidationError(err)
	}

	start, _ := parseISODateTime(*p.Date)

	req := BookingRequest{
		ArtistID:        artistID,
		Start:           start.UTC(),
		DurationMinutes: int(*p.Duration),
		TattooStyle:     deref(p.TattooStyle),
		Description:     deref(p.Description),
		Notes:           deref(p.Notes),
		ReferenceImages: make([]string, 0, len(p.ReferenceImages)),
		EstimatedPrice:  money(p.EstimatedPrice),
		Deposit:         money(p.Deposit),
	}
	for _, img := range p.ReferenceImages {
		req.ReferenceImages = append(req.ReferenceImages, *img)
	}

	return req, nil
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

func parseISODateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("must be an ISO-8601 date-time")
}

func isoDateTime(value interface{}) error {
	s, ok := value.(*string)
	if !ok || s == nil {
		return nil
	}
	_, err := parseISODateTime(*s)
	return err
}

func wholeNumber(value interface{}) error {
	f, ok := value.(*float64)
	if !ok || f == nil {
		return nil
	}
	if math.IsNaN(*f) || math.IsInf(*f, 0) || math.Trunc(*f) != *f {
		return errors.New("must be a whole number of minutes")
	}
	return nil
}

// positiveCents rejects amounts that round to zero at two decimal places.
func positiveCents(value interface{}) error {
	f, ok := value.(*float64)
	if !ok || f == nil {
		return nil
	}
	if !money(f).IsPositive() {
		return errors.New("must be at least 0.01")
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func money(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f).Round(2)
	return &d
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if i := strings.Index(field, "."); i >= 0 {
			field = field[:i]
		}
		if field == "" {
			field = "body"
		}
		return &httperr.ValidationError{Fields: []httperr.FieldError{{
			Field:   field,
			Message: "must be a " + jsonKind(typeErr.Type.Kind().String()),
		}}}
	}
	return &httperr.ValidationError{Fields: []httperr.FieldError{{
		Field:   "body",
		Message: "must be a JSON object",
	}}}
}

func jsonKind(goKind string) string {
	switch goKind {
	case "float64", "int":
		return "number"
	case "slice":
		return "list"
	case "ptr", "string":
		return "string"
	case "struct", "map":
		return "JSON object"
	}
	return goKind
}

func toValidationError(err error) error {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}

	fields := make([]httperr.FieldError, 0, len(errs))
	for field, fe := range errs {
		fields = append(fields, httperr.FieldError{Field: field, Message: fe.Error()})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })

	return &httperr.ValidationError{Fields: fields}
}
