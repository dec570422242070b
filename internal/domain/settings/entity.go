package settings

// AttendanceSettings is the admin-configured check-in policy. Times are wall
// clock "HH:MM" strings compared against the UTC clock of the check-in
// instant, matching the UTC day bucketing of attendance records.
type AttendanceSettings struct {
	CheckInWindowStart   string
	CheckInWindowEnd     string
	LateThresholdMinutes int
}

// Defaults applied when no row has been configured yet.
func Default() AttendanceSettings {
	return AttendanceSettings{
		CheckInWindowStart:   "08:00",
		CheckInWindowEnd:     "10:00",
		LateThresholdMinutes: 5,
	}
}
