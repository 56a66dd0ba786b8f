package rooms

import "strconv"

// Room is one bookable unit as reported by the backend.
type Room struct {
	ID         string   `json:"id"`
	RoomNumber string   `json:"roomNumber"`
	RoomType   string   `json:"roomType"`
	Price      *float64 `json:"price,omitempty"`
}

// normalizeList extracts the room collection out of a decoded response
// payload. The backend answers either with a bare array or with an object
// carrying a "rooms" array; anything else normalizes to an empty list.
func normalizeList(payload any) []Room {
	items, ok := payload.([]any)
	if !ok {
		if obj, isObj := payload.(map[string]any); isObj {
			items, _ = obj["rooms"].([]any)
		}
	}

	list := make([]Room, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		list = append(list, roomFromObject(obj))
	}
	return list
}

// roomFromObject builds a Room from one decoded object, tolerating the id
// arriving as a string or a number and under "id" or "_id".
func roomFromObject(obj map[string]any) Room {
	room := Room{
		ID:         stringValue(obj["id"]),
		RoomNumber: stringValue(obj["roomNumber"]),
		RoomType:   stringValue(obj["roomType"]),
	}
	if room.ID == "" {
		room.ID = stringValue(obj["_id"])
	}
	if price, ok := obj["price"].(float64); ok {
		room.Price = &price
	}
	return room
}

func stringValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return ""
	}
}
