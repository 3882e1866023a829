package models

// PickupReminderPayload is the task payload for a scheduled pickup reminder.
type PickupReminderPayload struct {
	RecordID   string `json:"recordId"`
	UserID     string `json:"userId"`
	BookingID  string `json:"bookingId"`
	PickupTime string `json:"pickupTime"`
	Address    string `json:"address"`
}
