package cronexpr

import (
	"errors"
	"fmt"
	"strings"
	"time"

	// Timezone IDs come from the workspace and must resolve without a
	// system zoneinfo database.
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
)

// ErrPreviewUnsupported is returned by Next for Quartz syntax that the
// preview parser would interpret differently.
var ErrPreviewUnsupported = errors.New("cron preview not supported for this expression")

// MaxPreview caps the number of fire times Next returns.
const MaxPreview = 100

var previewParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Next returns the next n fire times of e after the given instant, evaluated
// in timezone. Quartz numbers days of the week from SUN=1 while the preview
// parser starts at SUN=0, so numeric day-of-week tokens are refused.
// n is clamped to MaxPreview.
func Next(e Expression, timezone string, after time.Time, n int) ([]time.Time, error) {
	if strings.ContainsAny(e[DayOfWeek], "0123456789") {
		return nil, fmt.Errorf("%w: numeric day-of-week %q", ErrPreviewUnsupported, e[DayOfWeek])
	}
	sched, err := previewParser.Parse(e.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPreviewUnsupported, err)
	}
	loc := time.UTC
	if timezone != "" {
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone: %w", err)
		}
	}

	n = max(0, min(n, MaxPreview))
	out := make([]time.Time, 0, n)
	t := after.In(loc)
	for i := 0; i < n; i++ {
		t = sched.Next(t)
		if t.IsZero() {
			break
		}
		out = append(out, t)
	}
	return out, nil
}
