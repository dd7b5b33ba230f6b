package reservation

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"eliteroadways/internal/domain"
	"eliteroadways/internal/utils"
)

// Store is the write-through persistence the engine commits bookings to.
// A store error aborts the operation before any in-memory seat state
// changes, so no rollback of the ownership table is ever needed.
type Store interface {
	CreateBooking(b *domain.Booking) error
	DeleteBookingSeat(bookingID int64, seatID string) error
}

// Notifier sends the booking confirmation. Called fire-and-forget after a
// successful commit; failures are logged and never affect the booking.
type Notifier interface {
	SendBookingConfirmation(userEmail, busNumber string, seats []string, route string, departure time.Time, fare int64) error
}

// busState is the owned, lock-guarded seat-state record for one bus.
// sem serializes writers (and supports context-abortable acquisition);
// mu guards the maps so availability reads never block behind a writer.
type busState struct {
	bus   domain.Bus
	sem   chan struct{}
	mu    sync.RWMutex
	seats map[string]*domain.Booking // seat id -> holding booking
}

// Engine is the ownership table mapping bus id to its seat-state record.
// All reservations and cancellations for one bus serialize on that bus's
// record only; operations on different buses never block each other.
type Engine struct {
	mu       sync.RWMutex
	buses    map[int64]*busState
	store    Store
	notifier Notifier
}

func NewEngine(store Store, notifier Notifier) *Engine {
	return &Engine{
		buses:    make(map[int64]*busState),
		store:    store,
		notifier: notifier,
	}
}

// Register adds a bus and its already-committed bookings to the ownership
// table. Called at startup for persisted buses and when an administrator
// adds a new one. Re-registering replaces the prior record.
func (e *Engine) Register(bus domain.Bus, bookings []domain.Booking) {
	st := &busState{
		bus:   bus,
		sem:   make(chan struct{}, 1),
		seats: make(map[string]*domain.Booking),
	}
	for i := range bookings {
		b := &bookings[i]
		for _, seat := range b.Seats {
			st.seats[seat] = b
		}
	}
	e.mu.Lock()
	e.buses[bus.ID] = st
	e.mu.Unlock()
}

// snapshotBooking copies a committed record so callers never share the
// engine's backing arrays.
func snapshotBooking(b *domain.Booking) domain.Booking {
	out := *b
	out.Seats = append([]string(nil), b.Seats...)
	return out
}

func (e *Engine) state(busID int64) (*busState, error) {
	e.mu.RLock()
	st, ok := e.buses[busID]
	e.mu.RUnlock()
	if !ok {
		return nil, domain.NotFoundError{Resource: "bus"}
	}
	return st, nil
}

// Bus returns the static attributes of a registered bus.
func (e *Engine) Bus(busID int64) (domain.Bus, error) {
	st, err := e.state(busID)
	if err != nil {
		return domain.Bus{}, err
	}
	return st.bus, nil
}

// Buses lists the registered bus ids.
func (e *Engine) Buses() []int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := make([]int64, 0, len(e.buses))
	for id := range e.buses {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// BookedSeats returns a sorted snapshot of the bus's committed seat set.
// The snapshot is display-only: a seat shown free here can still lose a
// race and must be re-validated at commit time.
func (e *Engine) BookedSeats(busID int64) ([]string, error) {
	st, err := e.state(busID)
	if err != nil {
		return nil, err
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]string, 0, len(st.seats))
	for seat := range st.seats {
		out = append(out, seat)
	}
	sort.Strings(out)
	return out, nil
}

// Holder returns the committed booking holding a seat, if any.
func (e *Engine) Holder(busID int64, seatID string) (domain.Booking, bool, error) {
	st, err := e.state(busID)
	if err != nil {
		return domain.Booking{}, false, err
	}
	seat, err := domain.NormalizeSeatID(seatID)
	if err != nil {
		return domain.Booking{}, false, err
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	if b, ok := st.seats[seat]; ok {
		return snapshotBooking(b), true, nil
	}
	return domain.Booking{}, false, nil
}

// Ledger returns every committed booking on the bus, one entry per booking
// record (not per seat), sorted by booking id.
func (e *Engine) Ledger(busID int64) ([]domain.Booking, error) {
	st, err := e.state(busID)
	if err != nil {
		return nil, err
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	seen := make(map[int64]bool, len(st.seats))
	out := make([]domain.Booking, 0, len(st.seats))
	for _, b := range st.seats {
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		out = append(out, snapshotBooking(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Reserve atomically assigns the requested seats on a bus to the requester.
// All-or-nothing: if any seat is already held at commit time the whole
// request fails and no seat state changes. The context can abort the
// attempt only while waiting for the bus's writer slot; once the commit is
// in flight it runs to completion.
func (e *Engine) Reserve(ctx context.Context, busID int64, seatIDs []string, requester domain.Requester, contactNumber, pickupLocation string) (domain.Booking, error) {
	contactNumber = strings.TrimSpace(contactNumber)
	pickupLocation = strings.TrimSpace(pickupLocation)
	if contactNumber == "" {
		return domain.Booking{}, domain.ValidationError{Field: "contactNumber", Msg: "required"}
	}
	if pickupLocation == "" {
		return domain.Booking{}, domain.ValidationError{Field: "pickupLocation", Msg: "required"}
	}
	if len(seatIDs) == 0 {
		return domain.Booking{}, domain.ValidationError{Field: "seats", Msg: "at least one seat required"}
	}

	st, err := e.state(busID)
	if err != nil {
		return domain.Booking{}, err
	}

	seats := make([]string, 0, len(seatIDs))
	seen := make(map[string]bool, len(seatIDs))
	for _, raw := range seatIDs {
		seat, err := domain.NormalizeSeatID(raw)
		if err != nil {
			return domain.Booking{}, err
		}
		if !st.bus.Layout.Valid(seat) {
			return domain.Booking{}, domain.SeatInvalidError{SeatID: seat}
		}
		if seen[seat] {
			return domain.Booking{}, domain.ValidationError{Field: "seats", Msg: "duplicate seat " + seat}
		}
		seen[seat] = true
		seats = append(seats, seat)
	}
	sort.Strings(seats)

	// Writer slot; abort here is the only point a timeout may cancel us.
	select {
	case st.sem <- struct{}{}:
	case <-ctx.Done():
		return domain.Booking{}, domain.UnavailableError{Msg: "reservation aborted", Err: ctx.Err()}
	}
	defer func() { <-st.sem }()

	st.mu.RLock()
	for _, seat := range seats {
		if _, taken := st.seats[seat]; taken {
			st.mu.RUnlock()
			return domain.Booking{}, domain.ConflictError{Resource: "seat", Msg: "seat " + seat + " already booked"}
		}
	}
	st.mu.RUnlock()

	fare, err := domain.Fare(len(seats), st.bus.FarePerSeat)
	if err != nil {
		return domain.Booking{}, err
	}

	booking := &domain.Booking{
		BusID:          busID,
		UserID:         requester.UserID,
		Seats:          seats,
		ContactNumber:  contactNumber,
		PickupLocation: pickupLocation,
		Fare:           fare,
		CreatedAt:      time.Now(),
	}

	// Persist first, then commit the ownership table; a store failure
	// therefore leaves the seat map byte-for-byte unchanged.
	if err := e.store.CreateBooking(booking); err != nil {
		return domain.Booking{}, domain.UnavailableError{Msg: "could not persist booking", Err: err}
	}

	st.mu.Lock()
	for _, seat := range seats {
		st.seats[seat] = booking
	}
	st.mu.Unlock()

	e.dispatchConfirmation(st.bus, *booking, requester.Email)
	return snapshotBooking(booking), nil
}

// Cancel atomically releases one seat. Only the booking's owner or an
// administrator may cancel it. The seat becomes immediately reservable
// once the release commits.
func (e *Engine) Cancel(ctx context.Context, busID int64, seatID string, requester domain.Requester) error {
	st, err := e.state(busID)
	if err != nil {
		return err
	}
	seat, err := domain.NormalizeSeatID(seatID)
	if err != nil {
		return err
	}

	select {
	case st.sem <- struct{}{}:
	case <-ctx.Done():
		return domain.UnavailableError{Msg: "cancellation aborted", Err: ctx.Err()}
	}
	defer func() { <-st.sem }()

	st.mu.RLock()
	booking, ok := st.seats[seat]
	st.mu.RUnlock()
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	if booking.UserID != requester.UserID && !requester.IsAdmin() {
		return domain.NotAuthorizedError{Msg: "booking belongs to another user"}
	}

	if err := e.store.DeleteBookingSeat(booking.ID, seat); err != nil {
		return domain.UnavailableError{Msg: "could not persist cancellation", Err: err}
	}

	// Committed records are never mutated in place: snapshots already
	// handed out must keep the seat set they were committed with. The
	// survivors re-point to a fresh record instead.
	st.mu.Lock()
	delete(st.seats, seat)
	if len(booking.Seats) > 1 {
		updated := *booking
		updated.Seats = make([]string, 0, len(booking.Seats)-1)
		for _, s := range booking.Seats {
			if s != seat {
				updated.Seats = append(updated.Seats, s)
			}
		}
		for _, s := range updated.Seats {
			st.seats[s] = &updated
		}
	}
	st.mu.Unlock()

	utils.LogEvent("", "reservation", "cancel", "bus="+st.bus.Number+" seat="+seat)
	return nil
}

func (e *Engine) dispatchConfirmation(bus domain.Bus, booking domain.Booking, email string) {
	if e.notifier == nil || email == "" {
		return
	}
	seats := append([]string(nil), booking.Seats...)
	go func() {
		if err := e.notifier.SendBookingConfirmation(email, bus.Number, seats, bus.Route(), bus.DepartureTime, booking.Fare); err != nil {
			utils.LogEvent("", "reservation", "notify", "confirmation email failed: "+err.Error())
		}
	}()
}
