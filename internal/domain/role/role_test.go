package role

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

type fakeLookup struct {
	users   map[uuid.UUID]*models.User
	clients map[uuid.UUID]*models.Client
	artists map[uuid.UUID]*models.Artist
	studios map[uuid.UUID][]models.Studio
	err     error
}

func (f *fakeLookup) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLookup) GetClientByUser(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	if c, ok := f.clients[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLookup) GetArtistByUser(ctx context.Context, id uuid.UUID) (*models.Artist, error) {
	if a, ok := f.artists[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLookup) ListStudiosByOwner(ctx context.Context, id uuid.UUID) ([]models.Studio, error) {
	return f.studios[id], nil
}

func TestResolve(t *testing.T) {
	clientUser := uuid.New()
	clientNoEntity := uuid.New()
	artistUser := uuid.New()
	studioUser := uuid.New()
	weird := uuid.New()

	studioID := uuid.New()
	lookup := &fakeLookup{
		users: map[uuid.UUID]*models.User{
			clientUser:     {ID: clientUser, Role: "CLIENT"},
			clientNoEntity: {ID: clientNoEntity, Role: "CLIENT"},
			artistUser:     {ID: artistUser, Role: "ARTIST"},
			studioUser:     {ID: studioUser, Role: "STUDIO"},
			weird:          {ID: weird, Role: "GUEST"},
		},
		clients: map[uuid.UUID]*models.Client{clientUser: {ID: uuid.New(), UserID: clientUser}},
		artists: map[uuid.UUID]*models.Artist{artistUser: {ID: uuid.New(), UserID: artistUser}},
		studios: map[uuid.UUID][]models.Studio{studioUser: {{ID: studioID, OwnerID: studioUser}}},
	}
	ctx := context.Background()

	t.Run("missing profile", func(t *testing.T) {
		_, err := Resolve(ctx, lookup, uuid.New())
		assert.True(t, httperr.IsBusiness(err, "profile_not_found"))
	})

	t.Run("client with entity", func(t *testing.T) {
		p, err := Resolve(ctx, lookup, clientUser)
		require.NoError(t, err)
		assert.Equal(t, Client, p.Role)
		require.NotNil(t, p.Client)
		assert.NoError(t, p.Require(Client))
		assert.Error(t, p.Require(Artist, Admin))
	})

	t.Run("client without entity", func(t *testing.T) {
		p, err := Resolve(ctx, lookup, clientNoEntity)
		require.NoError(t, err)
		assert.Nil(t, p.Client)
		assert.True(t, p.AppointmentScope().IsEmpty())
	})

	t.Run("artist", func(t *testing.T) {
		p, err := Resolve(ctx, lookup, artistUser)
		require.NoError(t, err)
		require.NotNil(t, p.Artist)
		scope := p.AppointmentScope()
		require.NotNil(t, scope.ArtistID)
		assert.Equal(t, p.Artist.ID, *scope.ArtistID)
	})

	t.Run("studio", func(t *testing.T) {
		p, err := Resolve(ctx, lookup, studioUser)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{studioID}, p.AppointmentScope().StudioIDs)
		assert.True(t, p.OwnsStudio(&studioID))
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := Resolve(ctx, lookup, weird)
		assert.True(t, httperr.IsBusiness(err, "forbidden"))
	})

	t.Run("store failure passes through", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := Resolve(ctx, &fakeLookup{err: boom}, clientUser)
		assert.ErrorIs(t, err, boom)
	})
}

func TestScopeMatches(t *testing.T) {
	clientID := uuid.New()
	artistID := uuid.New()
	studioID := uuid.New()

	ap := &models.Appointment{
		ClientID: clientID,
		ArtistID: artistID,
		Artist:   models.Artist{ID: artistID, StudioID: &studioID},
	}

	assert.True(t, Scope{All: true}.Matches(ap))
	assert.True(t, Scope{ClientID: &clientID}.Matches(ap))
	assert.True(t, Scope{ArtistID: &artistID}.Matches(ap))
	assert.True(t, Scope{StudioIDs: []uuid.UUID{uuid.New(), studioID}}.Matches(ap))

	other := uuid.New()
	assert.False(t, Scope{ClientID: &other}.Matches(ap))
	assert.False(t, Scope{}.Matches(ap))
}

func TestCanManage(t *testing.T) {
	artistID := uuid.New()
	studioID := uuid.New()
	ap := &models.Appointment{ArtistID: artistID, Artist: models.Artist{ID: artistID, StudioID: &studioID}}

	assert.True(t, (&Principal{Role: Admin}).CanManage(ap))
	assert.True(t, (&Principal{Role: Artist, Artist: &models.Artist{ID: artistID}}).CanManage(ap))
	assert.False(t, (&Principal{Role: Artist, Artist: &models.Artist{ID: uuid.New()}}).CanManage(ap))
	assert.True(t, (&Principal{Role: Studio, Studios: []models.Studio{{ID: studioID}}}).CanManage(ap))
	assert.False(t, (&Principal{Role: Client, Client: &models.Client{ID: uuid.New()}}).CanManage(ap))
}
