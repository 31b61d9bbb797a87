package domain

// Time format constants
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// Fallbacks for booking data the backend may omit
const (
	FallbackTrainerName  = "Trainer to be confirmed"
	FallbackPackageTitle = "Training session"
)

// User-facing messages for client-side policy decisions
const (
	ModificationWindowClosedMessage = "Sessions can only be rescheduled or cancelled more than 24 hours before they start."
	BookingCanceledMessage          = "This booking has been cancelled."
	NoCreditsMessage                = "You have no sessions left on an active subscription. Renew or buy a package to book a session."
	NoAvailabilityMessage           = "There are no free slots to move this session to right now."
	NoSlotsForDayMessage            = "There are no free slots on this day."
)
