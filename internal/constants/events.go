package constants

// EventType tags entries in a car's append-only audit log.
type EventType string

const (
	EventCarCreated       EventType = "car_created"
	EventCarUpdated       EventType = "car_updated"
	EventMileageUpdate    EventType = "mileage_update"
	EventTUVUpdate        EventType = "tuv_update"
	EventInspectionUpdate EventType = "inspection_update"
	EventInsuranceUpdate  EventType = "insurance_update"
	EventTireChange       EventType = "tire_change"
	EventFuelEntry        EventType = "fuel_entry"
)
