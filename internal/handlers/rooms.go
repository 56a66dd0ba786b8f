package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oseyili/myspace-dashboard/internal/middleware"
	"github.com/oseyili/myspace-dashboard/internal/rooms"
)

// CreateRoomRequest is the request body for creating a room. Price stays a
// raw string; the directory coerces it.
type CreateRoomRequest struct {
	HotelID    string `json:"hotelId"`
	RoomNumber string `json:"roomNumber"`
	RoomType   string `json:"roomType"`
	Price      string `json:"price"`
}

// DirectoryResponse is the directory state rendered to the dashboard UI.
type DirectoryResponse struct {
	Rooms   []rooms.Room `json:"rooms"`
	Loading bool         `json:"loading"`
	Error   string       `json:"error"`
	Draft   rooms.Draft  `json:"draft"`
}

// LoadRooms fetches the room list for one hotel scope.
func LoadRooms(directory *rooms.Directory, events *EventHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID := c.Param("hotelId")
		credential := middleware.CredentialFrom(c)

		err := directory.LoadRooms(c.Request.Context(), hotelID, credential)
		resp := directoryResponse(directory)
		if err != nil {
			c.JSON(statusForDirectoryError(err), resp)
			return
		}

		events.Broadcast(Event{Type: EventRooms, Rooms: &resp})
		c.JSON(http.StatusOK, resp)
	}
}

// CreateRoom creates a room and re-syncs the list on success.
func CreateRoom(directory *rooms.Directory, events *EventHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		credential := middleware.CredentialFrom(c)
		draft := rooms.Draft{
			RoomNumber: req.RoomNumber,
			RoomType:   req.RoomType,
			Price:      req.Price,
		}

		err := directory.CreateRoom(c.Request.Context(), req.HotelID, credential, draft)
		resp := directoryResponse(directory)
		if err != nil {
			c.JSON(statusForDirectoryError(err), resp)
			return
		}

		events.Broadcast(Event{Type: EventRooms, Rooms: &resp})
		c.JSON(http.StatusCreated, resp)
	}
}

// ExportRooms streams the currently loaded room list as a PDF.
func ExportRooms(directory *rooms.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID := c.Param("hotelId")

		data, filename, err := directory.ExportPDF(hotelID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
			return
		}

		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/pdf", data)
	}
}

func directoryResponse(directory *rooms.Directory) DirectoryResponse {
	state := directory.State()
	return DirectoryResponse{
		Rooms:   state.Rooms,
		Loading: state.Loading,
		Error:   state.Error,
		Draft:   directory.Draft(),
	}
}

// statusForDirectoryError maps local validation failures to 400 and
// anything that reached (or failed to reach) the backend to 502. The
// user-facing message always travels in the directory state either way.
func statusForDirectoryError(err error) int {
	if rooms.IsPrecondition(err) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}
