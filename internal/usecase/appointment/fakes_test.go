package appointment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

// ======================================================
// Repository
// ======================================================

type memRepo struct {
	mu           sync.Mutex
	artists      map[uuid.UUID]*models.Artist
	appointments []models.Appointment
	updateErr    error

	// beforeWrite runs between a use case's read and its write.
	beforeWrite func()
}

func newMemRepo(artists ...*models.Artist) *memRepo {
	r := &memRepo{artists: map[uuid.UUID]*models.Artist{}}
	for _, a := range artists {
		r.artists[a.ID] = a
	}
	return r
}

func (r *memRepo) GetArtist(ctx context.Context, id uuid.UUID) (*models.Artist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.artists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memRepo) CreateIfSlotFree(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var same []models.Appointment
	for _, existing := range r.appointments {
		if existing.ArtistID == ap.ArtistID {
			same = append(same, existing)
		}
	}
	if _, clash := domain.FindConflict(domain.IntervalOf(ap), same); clash {
		return httperr.ErrBusiness("time_conflict")
	}

	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *memRepo) withArtist(ap models.Appointment) *models.Appointment {
	if a, ok := r.artists[ap.ArtistID]; ok {
		ap.Artist = *a
	}
	return &ap
}

func (r *memRepo) GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.appointments {
		if ap.ID == id {
			return r.withArtist(ap), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepo) ListAppointments(ctx context.Context, f domain.ListFilter) ([]models.Appointment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		full := r.withArtist(ap)
		if !f.Scope.Matches(full) {
			continue
		}
		if f.Status != nil && ap.Status != string(*f.Status) {
			continue
		}
		out = append(out, *full)
	}

	total := int64(len(out))
	if f.Offset >= len(out) {
		return []models.Appointment{}, total, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (r *memRepo) ListBusyIntervals(ctx context.Context, artistID uuid.UUID, from, to time.Time) ([]domain.Interval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	window := domain.Interval{Start: from, End: to}
	var out []domain.Interval
	for _, ap := range r.appointments {
		iv := domain.IntervalOf(&ap)
		if ap.ArtistID == artistID && domain.Status(ap.Status).IsBlocking() && iv.Overlaps(window) {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (r *memRepo) UpdateStatus(ctx context.Context, ap *models.Appointment, from domain.Status) error {
	if r.beforeWrite != nil {
		r.beforeWrite()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	for i := range r.appointments {
		if r.appointments[i].ID != ap.ID {
			continue
		}
		if r.appointments[i].Status != string(from) {
			return httperr.ErrBusiness("invalid_state")
		}
		r.appointments[i].Status = ap.Status
		r.appointments[i].CancelledAt = ap.CancelledAt
		r.appointments[i].CompletedAt = ap.CompletedAt
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}

func (r *memRepo) SetDepositPaymentID(ctx context.Context, id uuid.UUID, paymentID string) error {
	if r.beforeWrite != nil {
		r.beforeWrite()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	for i := range r.appointments {
		if r.appointments[i].ID != id {
			continue
		}
		if !domain.Status(r.appointments[i].Status).IsDepositPayable() {
			return httperr.ErrBusiness("invalid_state")
		}
		r.appointments[i].DepositPaymentID = paymentID
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}

// setStatus changes a stored appointment behind the use case's back.
func (r *memRepo) setStatus(id uuid.UUID, s domain.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.appointments {
		if r.appointments[i].ID == id {
			r.appointments[i].Status = string(s)
		}
	}
}

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.appointments)
}

func (r *memRepo) seed(ap models.Appointment) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	if ap.EndTime.IsZero() {
		ap.EndTime = domain.IntervalOf(&ap).End
	}
	r.appointments = append(r.appointments, ap)
	return ap
}

// ======================================================
// Profiles
// ======================================================

type memProfiles struct {
	users   map[uuid.UUID]*models.User
	clients map[uuid.UUID]*models.Client
	artists map[uuid.UUID]*models.Artist
	studios map[uuid.UUID][]models.Studio
}

func newMemProfiles() *memProfiles {
	return &memProfiles{
		users:   map[uuid.UUID]*models.User{},
		clients: map[uuid.UUID]*models.Client{},
		artists: map[uuid.UUID]*models.Artist{},
		studios: map[uuid.UUID][]models.Studio{},
	}
}

func (m *memProfiles) addClient() (uuid.UUID, *models.Client) {
	uid := uuid.New()
	m.users[uid] = &models.User{ID: uid, Role: "CLIENT", Email: uid.String() + "@example.com"}
	c := &models.Client{ID: uuid.New(), UserID: uid, User: *m.users[uid]}
	m.clients[uid] = c
	return uid, c
}

func (m *memProfiles) addArtist(studioID *uuid.UUID) (uuid.UUID, *models.Artist) {
	uid := uuid.New()
	m.users[uid] = &models.User{ID: uid, Role: "ARTIST"}
	a := &models.Artist{ID: uuid.New(), UserID: uid, StudioID: studioID, IsActive: true}
	m.artists[uid] = a
	return uid, a
}

func (m *memProfiles) addStudioOwner() (uuid.UUID, models.Studio) {
	uid := uuid.New()
	m.users[uid] = &models.User{ID: uid, Role: "STUDIO"}
	s := models.Studio{ID: uuid.New(), OwnerID: uid, IsActive: true}
	m.studios[uid] = []models.Studio{s}
	return uid, s
}

func (m *memProfiles) addUser(r string) uuid.UUID {
	uid := uuid.New()
	m.users[uid] = &models.User{ID: uid, Role: r}
	return uid
}

func (m *memProfiles) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memProfiles) GetClientByUser(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	if c, ok := m.clients[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memProfiles) GetArtistByUser(ctx context.Context, id uuid.UUID) (*models.Artist, error) {
	if a, ok := m.artists[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memProfiles) ListStudiosByOwner(ctx context.Context, id uuid.UUID) ([]models.Studio, error) {
	return m.studios[id], nil
}

// ======================================================
// Notifier / payments / audit
// ======================================================

type fakeNotifier struct {
	mu      sync.Mutex
	booked  []uuid.UUID
	changed []string
	err     error
}

func (n *fakeNotifier) AppointmentBooked(ctx context.Context, ap *models.Appointment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.booked = append(n.booked, ap.ID)
	return n.err
}

func (n *fakeNotifier) AppointmentStatusChanged(ctx context.Context, ap *models.Appointment, from string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, from+"->"+ap.Status)
	return n.err
}

type fakePayments struct {
	checkout *Checkout
	err      error
	during   func()
}

func (p *fakePayments) CreateDepositCheckout(ctx context.Context, ap *models.Appointment) (*Checkout, error) {
	if p.during != nil {
		p.during()
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.checkout, nil
}

type auditSink struct {
	mu      sync.Mutex
	actions []string
}

func (s *auditSink) Log(ctx context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, ev.Action)
	return nil
}

func newAudit() (*audit.Dispatcher, *auditSink) {
	sink := &auditSink{}
	return audit.NewDispatcher(sink), sink
}

var errBoom = errors.New("boom")
