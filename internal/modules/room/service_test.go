package room

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"guesthouse/internal/database"
	"guesthouse/internal/domain"
	"guesthouse/internal/events"
	"guesthouse/internal/modules/booking"
	"guesthouse/internal/pkg/clock"
	"guesthouse/internal/pkg/lock"
	"guesthouse/internal/repository"
)

const houseID = "house-1"

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:room_test_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Connect(dsn, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func setupService(t *testing.T) (*Service, *repository.Store, *clock.Fixed) {
	t.Helper()
	return setupServiceOn(t, openDB(t))
}

func setupServiceOn(t *testing.T, db *gorm.DB) (*Service, *repository.Store, *clock.Fixed) {
	t.Helper()
	store := repository.NewStore(db)
	clk := &clock.Fixed{T: time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)}
	require.NoError(t, store.Houses.Create(context.Background(), &domain.House{
		ID: houseID, Name: "Seaside", Owner: "owner-1", CreatedAt: clk.Now(),
	}))
	return NewService(store, clk, zap.NewNop()), store, clk
}

func addRoom(t *testing.T, svc *Service, number string, roomType domain.RoomType, price string) string {
	t.Helper()
	id, err := svc.AddRoom(context.Background(), "owner-1", AddRoomRequest{
		HouseID: houseID, RoomNumber: number, Type: roomType, Price: price,
	})
	require.NoError(t, err)
	return id
}

func TestAddRoom(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	id := addRoom(t, svc, "101", domain.RoomSingle, "100.00")
	room, err := svc.GetRoom(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "101", room.RoomNumber)
	assert.False(t, room.IsBooked)

	_, err = svc.AddRoom(ctx, "owner-1", AddRoomRequest{HouseID: houseID, RoomNumber: "101", Price: "50"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, MsgDuplicateNumber)

	_, err = svc.AddRoom(ctx, "stranger", AddRoomRequest{HouseID: houseID, RoomNumber: "102", Price: "50"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.AddRoom(ctx, "owner-1", AddRoomRequest{HouseID: "missing", RoomNumber: "102", Price: "50"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	for _, price := range []string{"-1", "abc", ""} {
		_, err = svc.AddRoom(ctx, "owner-1", AddRoomRequest{HouseID: houseID, RoomNumber: "103", Price: price})
		assert.ErrorIs(t, err, domain.ErrValidation, "price %q", price)
	}
}

func TestUpdateRoom(t *testing.T) {
	svc, _, clk := setupService(t)
	ctx := context.Background()
	id := addRoom(t, svc, "101", domain.RoomSingle, "100")

	_, err := svc.UpdateRoom(ctx, "stranger", id, UpdateRoomRequest{RoomNumber: "101", Price: "120"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	clk.Advance(time.Minute)
	room, err := svc.UpdateRoom(ctx, "owner-1", id, UpdateRoomRequest{RoomNumber: "201", Type: domain.RoomSuite, Price: "120"})
	require.NoError(t, err)
	assert.Equal(t, "201", room.RoomNumber)
	assert.Equal(t, "120", room.Price)
	require.NotNil(t, room.UpdatedAt)
	assert.True(t, room.UpdatedAt.Equal(clk.Now()))

	_, err = svc.UpdateRoom(ctx, "owner-1", "missing", UpdateRoomRequest{RoomNumber: "1", Price: "1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// bookRoom reserves two nights through the reservation lifecycle.
func bookRoom(t *testing.T, store *repository.Store, clk *clock.Fixed, roomID string) *booking.Result {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Guests.Create(ctx, &domain.Guest{ID: "guest-" + roomID, Name: "Guest", CreatedAt: clk.Now()}))
	bookings := booking.NewService(store, lock.NewLocal(), events.Nop{}, clk, zap.NewNop())
	res, err := bookings.Create(ctx, booking.CreateReservationRequest{
		RoomID:       roomID,
		GuestID:      "guest-" + roomID,
		CheckInDate:  clk.Now().Add(24 * time.Hour),
		CheckOutDate: clk.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	return res
}

func TestUpdateRoom_BookedRoomStaysBooked(t *testing.T) {
	svc, store, clk := setupService(t)
	ctx := context.Background()
	id := addRoom(t, svc, "101", domain.RoomSingle, "100")
	bookRoom(t, store, clk, id)

	room, err := svc.UpdateRoom(ctx, "owner-1", id, UpdateRoomRequest{RoomNumber: "101", Type: domain.RoomDouble, Price: "140"})
	require.NoError(t, err)
	assert.True(t, room.IsBooked)
	assert.Equal(t, "140", room.Price)

	stored, err := svc.GetRoom(ctx, id)
	require.NoError(t, err)
	assert.True(t, stored.IsBooked)
	assert.Equal(t, domain.RoomDouble, stored.Type)
}

func TestUpdateRoom_ReservationBetweenReadAndWrite(t *testing.T) {
	db := openDB(t)
	svc, store, clk := setupServiceOn(t, db)
	ctx := context.Background()
	id := addRoom(t, svc, "101", domain.RoomSingle, "100")

	// Book the room right after UpdateRoom has read it.
	var (
		armed  atomic.Bool
		booked *booking.Result
	)
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:book_after_room_read", func(tx *gorm.DB) {
		if tx.Statement.Table != "rooms" || !armed.CompareAndSwap(true, false) {
			return
		}
		booked = bookRoom(t, store, clk, id)
	}))

	armed.Store(true)
	room, err := svc.UpdateRoom(ctx, "owner-1", id, UpdateRoomRequest{RoomNumber: "102", Type: domain.RoomSingle, Price: "110"})
	require.NoError(t, err)
	require.NotNil(t, booked, "reservation must land between the read and the write")

	assert.Equal(t, "102", room.RoomNumber)
	assert.True(t, room.IsBooked)

	stored, err := store.Rooms.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, stored.IsBooked, "room edit must not clear the booked flag")

	reservations, err := store.Reservations.ListByRoom(ctx, id)
	require.NoError(t, err)
	assert.Len(t, reservations, 1)
}

func TestDeleteRoom_KeepsReservations(t *testing.T) {
	svc, store, clk := setupService(t)
	ctx := context.Background()
	id := addRoom(t, svc, "101", domain.RoomSingle, "100")

	require.NoError(t, store.Reservations.Create(ctx, &domain.Reservation{
		ID: "res-1", HouseID: houseID, RoomID: id, GuestID: "g1",
		CheckInDate: clk.Now(), CheckOutDate: clk.Now().Add(24 * time.Hour), CreatedAt: clk.Now(),
	}))

	_, err := svc.DeleteRoom(ctx, "stranger", id)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	msg, err := svc.DeleteRoom(ctx, "owner-1", id)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("Room with ID: %s deleted successfully", id), msg)

	_, err = svc.GetRoom(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.Reservations.GetByID(ctx, "res-1")
	assert.NoError(t, err)
}

func TestSearchByPriceRange_Inclusive(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()
	addRoom(t, svc, "101", domain.RoomSingle, "80")
	mid := addRoom(t, svc, "102", domain.RoomDouble, "120")
	addRoom(t, svc, "103", domain.RoomSuite, "200")

	rooms, err := svc.SearchAvailableRoomsByPriceRange(ctx, houseID, "90", "130")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, mid, rooms[0].ID)

	rooms, err = svc.SearchAvailableRoomsByPriceRange(ctx, houseID, "80", "120")
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	_, err = svc.SearchAvailableRoomsByPriceRange(ctx, houseID, "300", "400")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, MsgNoRoomsPriceRange)

	_, err = svc.SearchAvailableRoomsByPriceRange(ctx, houseID, "130", "90")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSearchByType(t *testing.T) {
	svc, store, _ := setupService(t)
	ctx := context.Background()
	suite := addRoom(t, svc, "101", domain.RoomSuite, "300")
	booked := addRoom(t, svc, "102", domain.RoomSuite, "300")
	require.NoError(t, store.Rooms.SetBooked(ctx, booked, true))

	rooms, err := svc.SearchAvailableRoomsByType(ctx, houseID, domain.RoomSuite)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, suite, rooms[0].ID)

	_, err = svc.SearchAvailableRoomsByType(ctx, houseID, domain.RoomDouble)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, MsgNoRoomsForType)
}

func TestSearchByDateRange(t *testing.T) {
	svc, store, clk := setupService(t)
	ctx := context.Background()
	free := addRoom(t, svc, "101", domain.RoomSingle, "100")
	taken := addRoom(t, svc, "102", domain.RoomSingle, "100")

	day := 24 * time.Hour
	start := clk.Now()
	// a reservation left on an unbooked room still blocks its dates
	require.NoError(t, store.Reservations.Create(ctx, &domain.Reservation{
		ID: "res-1", HouseID: houseID, RoomID: taken, GuestID: "g1",
		CheckInDate: start, CheckOutDate: start.Add(3 * day), CreatedAt: start,
	}))

	rooms, err := svc.SearchAvailableRoomsByDateRange(ctx, houseID, domain.Interval{Start: start.Add(day), End: start.Add(2 * day)})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, free, rooms[0].ID)

	rooms, err = svc.SearchAvailableRoomsByDateRange(ctx, houseID, domain.Interval{Start: start.Add(3 * day), End: start.Add(4 * day)})
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	_, err = svc.SearchAvailableRoomsByDateRange(ctx, houseID, domain.Interval{Start: start.Add(day), End: start})
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, store.Rooms.SetBooked(ctx, free, true))
	_, err = svc.SearchAvailableRoomsByDateRange(ctx, houseID, domain.Interval{Start: start.Add(day), End: start.Add(2 * day)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, MsgNoRoomsForDates)
}
