package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
)

// memStore is an in-memory Store used by the unit tests.  It mirrors
// the SQL implementation's locking discipline with one mutex per court,
// held across the existence check, the overlap query and the write.
type memStore struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
	rows  map[uuid.UUID]*model.Reservation
}

func newMemStore() *memStore {
	return &memStore{
		locks: make(map[uuid.UUID]*sync.Mutex),
		rows:  make(map[uuid.UUID]*model.Reservation),
	}
}

func (s *memStore) courtLock(courtUID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[courtUID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[courtUID] = l
	}
	return l
}

func (s *memStore) WithCourtLock(ctx context.Context, courtUID uuid.UUID, fn func(tx StoreTx) error) error {
	l := s.courtLock(courtUID)
	l.Lock()
	defer l.Unlock()
	return fn(&memTx{store: s})
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *memStore) get(uid uuid.UUID) *model.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[uid]
}

type memTx struct {
	store *memStore
}

func (t *memTx) FindOverlapping(ctx context.Context, courtUID uuid.UUID, from, to time.Time) ([]*model.Reservation, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	var out []*model.Reservation
	for _, r := range t.store.rows {
		if r.Court.UID == courtUID && Intersects(from, to, r.FromTime, r.ToTime) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (t *memTx) ExistsByUID(ctx context.Context, uid uuid.UUID) (bool, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	_, ok := t.store.rows[uid]
	return ok, nil
}

func (t *memTx) Create(ctx context.Context, r *model.Reservation) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	cp := *r
	t.store.rows[r.UID] = &cp
	return nil
}

func (t *memTx) Update(ctx context.Context, r *model.Reservation) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	cp := *r
	t.store.rows[r.UID] = &cp
	return nil
}

// ----- fixtures -----

func testCourt(rate string) *model.Court {
	return &model.Court{
		UID:  uuid.New(),
		Name: "Centre court",
		Surface: &model.Surface{
			UID:      uuid.New(),
			Name:     "Clay",
			Price:    decimal.RequireFromString(rate),
			Currency: "CZK",
		},
	}
}

func testUser() *model.User {
	return &model.User{
		UID:         uuid.New(),
		FirstName:   "Jana",
		FamilyName:  "Novakova",
		PhoneNumber: "+420123456789",
		Roles:       []string{model.RoleUser},
	}
}

func testReservation(court *model.Court, user *model.User, from, to time.Time) *model.Reservation {
	return &model.Reservation{
		UID:       uuid.New(),
		Court:     court,
		User:      user,
		FromTime:  from,
		ToTime:    to,
		CreatedAt: time.Now().UTC(),
	}
}

func TestCreateValidation(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	court := testCourt("15.50")
	user := testUser()
	ctx := context.Background()

	tests := []struct {
		name      string
		candidate *model.Reservation
		wantErr   error
	}{
		{name: "nil candidate", candidate: nil, wantErr: ErrMissingReservation},
		{
			name:      "missing uid",
			candidate: &model.Reservation{Court: court, User: user, FromTime: at(10, 0), ToTime: at(11, 0)},
			wantErr:   ErrMissingUID,
		},
		{
			name:      "missing court",
			candidate: &model.Reservation{UID: uuid.New(), User: user, FromTime: at(10, 0), ToTime: at(11, 0)},
			wantErr:   ErrMissingCourt,
		},
		{
			name: "court without surface",
			candidate: &model.Reservation{
				UID: uuid.New(), Court: &model.Court{UID: uuid.New()}, User: user,
				FromTime: at(10, 0), ToTime: at(11, 0),
			},
			wantErr: ErrMissingCourt,
		},
		{
			name:      "equal boundaries",
			candidate: testReservation(court, user, at(10, 0), at(10, 0)),
			wantErr:   ErrInvalidTimeRange,
		},
		{
			name:      "inverted range",
			candidate: testReservation(court, user, at(11, 0), at(10, 0)),
			wantErr:   ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.candidate)
			require.ErrorIs(t, err, tt.wantErr)
			// A rejected attempt leaves the store untouched.
			require.Zero(t, store.count())
		})
	}
}

func TestCreateComputesPrice(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	court := testCourt("15.50")
	user := testUser()
	ctx := context.Background()

	saved, err := svc.Create(ctx, testReservation(court, user, at(10, 0), at(11, 30)))
	require.NoError(t, err)
	require.Equal(t, "1395.00", saved.TotalPrice.Amount.StringFixed(2))
	require.Equal(t, "CZK", saved.TotalPrice.Currency)

	quad := testReservation(court, user, at(13, 0), at(14, 30))
	quad.IsQuadGame = true
	saved, err = svc.Create(ctx, quad)
	require.NoError(t, err)
	require.Equal(t, "2092.50", saved.TotalPrice.Amount.StringFixed(2))

	require.Equal(t, 2, store.count())
}

func TestCreateConflicts(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	court := testCourt("15.50")
	user := testUser()
	ctx := context.Background()

	first, err := svc.Create(ctx, testReservation(court, user, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	tests := []struct {
		name     string
		from, to time.Time
	}{
		{name: "partial overlap", from: at(10, 30), to: at(11, 30)},
		{name: "identical interval", from: at(10, 0), to: at(11, 0)},
		{name: "containing interval", from: at(9, 0), to: at(12, 0)},
		{name: "touching at end", from: at(11, 0), to: at(12, 0)},
		{name: "touching at start", from: at(9, 0), to: at(10, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, testReservation(court, user, tt.from, tt.to))
			require.ErrorIs(t, err, ErrTimeConflict)
			require.Equal(t, 1, store.count())
		})
	}

	// Same interval at another court books fine.
	other := testCourt("12.50")
	_, err = svc.Create(ctx, testReservation(other, user, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	// An existence clash on the UID is reported before any overlap
	// check: the duplicate also overlaps, but ErrAlreadyExists wins.
	dup := testReservation(court, user, at(10, 0), at(11, 0))
	dup.UID = first.UID
	_, err = svc.Create(ctx, dup)
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestUpdate(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	court := testCourt("15.50")
	user := testUser()
	ctx := context.Background()

	created, err := svc.Create(ctx, testReservation(court, user, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	t.Run("unknown uid", func(t *testing.T) {
		_, err := svc.Update(ctx, testReservation(court, user, at(13, 0), at(14, 0)))
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("re-save with unchanged interval", func(t *testing.T) {
		same := testReservation(court, user, at(10, 0), at(11, 0))
		same.UID = created.UID
		_, err := svc.Update(ctx, same)
		require.NoError(t, err)
	})

	t.Run("shift within own window", func(t *testing.T) {
		shifted := testReservation(court, user, at(10, 30), at(11, 30))
		shifted.UID = created.UID
		saved, err := svc.Update(ctx, shifted)
		require.NoError(t, err)
		require.Equal(t, "930.00", saved.TotalPrice.Amount.StringFixed(2))

		stored := store.get(created.UID)
		require.True(t, stored.FromTime.Equal(at(10, 30)))
		require.True(t, stored.ToTime.Equal(at(11, 30)))
	})

	t.Run("update into another reservation conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, testReservation(court, user, at(13, 0), at(14, 0)))
		require.NoError(t, err)

		moved := testReservation(court, user, at(13, 30), at(14, 30))
		moved.UID = created.UID
		_, err = svc.Update(ctx, moved)
		require.ErrorIs(t, err, ErrTimeConflict)
	})
}

func TestConcurrentCreatesSingleWinner(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	court := testCourt("15.50")
	ctx := context.Background()

	const attempts = 32

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, testReservation(court, testUser(), at(10, 0), at(11, 0)))
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, ErrTimeConflict)
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, 1, store.count())
}
