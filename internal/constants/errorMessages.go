package constants

const (
	MsgCarNotFound       = "Car not found"
	MsgFuelEntryNotFound = "Fuel entry not found"
	MsgTireNotFound      = "Tire set not found"

	MsgMileageBelowPrev   = "Mileage cannot be lower than an earlier entry"
	MsgMileageAboveNext   = "Mileage cannot be higher than a later entry"
	MsgInvalidMileage     = "Invalid mileage value"
	MsgInvalidLiters      = "Invalid liters value"
	MsgDuplicateTireType  = "An active tire set of this type already exists"
	MsgTireMountedArchive = "A mounted tire set cannot be archived"
	MsgTireArchivedMount  = "An archived tire set cannot be mounted"
)
