package cronexpr

// Quartz requires one of day-of-month and day-of-week to be "?" when the
// other is set, so both policies write the pair together.
var (
	WeekdaysOnly = Overrides{DayOfMonth: "?", DayOfWeek: "MON-FRI"}
	EveryDay     = Overrides{DayOfMonth: "*", DayOfWeek: "?"}
)

// DayPolicy returns the overrides for the weekday toggle. The result is a
// fresh map and may be modified by the caller.
func DayPolicy(weekdaysOnly bool) Overrides {
	src := EveryDay
	if weekdaysOnly {
		src = WeekdaysOnly
	}
	o := make(Overrides, len(src))
	for f, v := range src {
		o[f] = v
	}
	return o
}
