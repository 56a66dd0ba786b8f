package rooms

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/oseyili/myspace-dashboard/internal/gateway"
)

const (
	listPathPrefix = "/api/rooms/"
	createPath     = "/api/rooms"
)

// User-facing precondition messages, checked in this order by CreateRoom.
const (
	msgHotelIDRequired = "Enter a Hotel ID first."
	msgTokenRequired   = "Enter a token (required to create rooms)."
	msgNumberRequired  = "Room number is required."
	msgPriceNotNumber  = "Price must be a number."
)

// errPrecondition marks failures that never reached the network.
var errPrecondition = errors.New("precondition failed")

// State is the directory's observable state: the authoritative room list,
// a busy flag and the last operation's error (empty when none).
type State struct {
	Rooms   []Room `json:"rooms"`
	Loading bool   `json:"loading"`
	Error   string `json:"error"`
}

// Draft holds the raw create-room inputs. They are kept across failed
// attempts so the user can correct and resubmit, and cleared only after a
// create succeeds.
type Draft struct {
	RoomNumber string `json:"roomNumber"`
	RoomType   string `json:"roomType"`
	Price      string `json:"price"`
}

// createRequest is the payload sent to the backend. Price is omitted when
// the draft's price input is empty.
type createRequest struct {
	HotelID    string   `json:"hotelId"`
	RoomNumber string   `json:"roomNumber"`
	RoomType   string   `json:"roomType"`
	Price      *float64 `json:"price,omitempty"`
}

// Directory owns the in-memory room collection for one hotel scope. The
// collection is replaced wholesale on every successful list fetch; there is
// no incremental merge. Overlapping operations keep last-response-wins
// semantics.
type Directory struct {
	mu      sync.Mutex
	gateway *gateway.Gateway
	state   State
	draft   Draft
}

func New(gw *gateway.Gateway) *Directory {
	return &Directory{gateway: gw}
}

// State returns a snapshot of the directory state.
func (d *Directory) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	snapshot := d.state
	snapshot.Rooms = append([]Room(nil), d.state.Rooms...)
	return snapshot
}

// Draft returns the current create-room inputs.
func (d *Directory) Draft() Draft {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draft
}

// Reset drops the room list, draft and error. Called when the session ends
// so a logged-out user is not left looking at stale rooms.
func (d *Directory) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = State{}
	d.draft = Draft{}
}

// LoadRooms fetches the room list for the given hotel scope and replaces
// the in-memory collection. The credential is forwarded when present so
// the call works against backends that protect reads.
func (d *Directory) LoadRooms(ctx context.Context, hotelID, credential string) error {
	if strings.TrimSpace(hotelID) == "" {
		d.setError(msgHotelIDRequired)
		return errPrecondition
	}

	d.setLoading(true)
	defer d.setLoading(false)

	payload, err := d.gateway.Get(ctx, listPathPrefix+url.PathEscape(hotelID), credential)
	if err != nil {
		d.setError(err.Error())
		return err
	}

	d.mu.Lock()
	d.state.Rooms = normalizeList(payload)
	d.state.Error = ""
	d.mu.Unlock()
	return nil
}

// CreateRoom validates the draft, posts it, and on success clears the
// inputs and re-syncs the list from the server — the create response itself
// is not trusted as the new source of truth.
func (d *Directory) CreateRoom(ctx context.Context, hotelID, credential string, draft Draft) error {
	d.mu.Lock()
	d.draft = draft
	d.mu.Unlock()

	if strings.TrimSpace(hotelID) == "" {
		d.setError(msgHotelIDRequired)
		return errPrecondition
	}
	if credential == "" {
		d.setError(msgTokenRequired)
		return errPrecondition
	}
	if strings.TrimSpace(draft.RoomNumber) == "" {
		d.setError(msgNumberRequired)
		return errPrecondition
	}

	req := createRequest{
		HotelID:    hotelID,
		RoomNumber: draft.RoomNumber,
		RoomType:   draft.RoomType,
	}
	if strings.TrimSpace(draft.Price) != "" {
		price, err := strconv.ParseFloat(strings.TrimSpace(draft.Price), 64)
		if err != nil {
			d.setError(msgPriceNotNumber)
			return errPrecondition
		}
		req.Price = &price
	}

	d.setLoading(true)
	defer d.setLoading(false)

	if _, err := d.gateway.Post(ctx, createPath, req, credential); err != nil {
		d.setError(err.Error())
		return err
	}

	d.mu.Lock()
	d.draft = Draft{}
	d.state.Error = ""
	d.mu.Unlock()

	return d.LoadRooms(ctx, hotelID, credential)
}

// IsPrecondition reports whether err was a local validation failure that
// never issued a network call.
func IsPrecondition(err error) bool {
	return errors.Is(err, errPrecondition)
}

func (d *Directory) setLoading(loading bool) {
	d.mu.Lock()
	d.state.Loading = loading
	d.mu.Unlock()
}

func (d *Directory) setError(msg string) {
	d.mu.Lock()
	d.state.Error = msg
	d.mu.Unlock()
}
