package booking

import (
	"fmt"
	"sort"
	"strings"
)

// SlotStep is the grid granularity: candidate start times sit on 15-minute
// boundaries regardless of the service duration.
const SlotStep = 15

// WorkingWindow is one opening window of the salon day, as minute-of-day
// offsets (e.g. 540–780 for 09:00–13:00). Windows separated by a midday gap
// are evaluated independently; no candidate spans the gap.
type WorkingWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ParseWorkingHours parses a comma-separated window spec such as
// "09:00-13:00,16:00-20:00".
func ParseWorkingHours(spec string) ([]WorkingWindow, error) {
	var windows []WorkingWindow
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := strings.Split(part, "-")
		if len(bounds) != 2 {
			return nil, fmt.Errorf("invalid working-hours window %q", part)
		}
		start, err := LabelToMinutes(strings.TrimSpace(bounds[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid working-hours window %q: %w", part, err)
		}
		end, err := LabelToMinutes(strings.TrimSpace(bounds[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid working-hours window %q: %w", part, err)
		}
		if end <= start {
			return nil, fmt.Errorf("invalid working-hours window %q: end before start", part)
		}
		windows = append(windows, WorkingWindow{Start: start, End: end})
	}
	if len(windows) == 0 {
		return nil, fmt.Errorf("no working-hours windows in %q", spec)
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].Start < windows[j].Start })
	return windows, nil
}

// GenerateStartCandidates produces the ordered, de-duplicated start-time
// candidates (minute-of-day) for a booking occupying span minutes. A
// candidate is included only when start+span fits entirely inside a single
// window, so nothing runs past closing time. The result is empty, not an
// error, when no window can fit the span.
func GenerateStartCandidates(windows []WorkingWindow, span int) []int {
	if span <= 0 {
		return nil
	}

	seen := make(map[int]struct{})
	var candidates []int
	for _, w := range windows {
		// First grid boundary at or after the window opens.
		start := ((w.Start + SlotStep - 1) / SlotStep) * SlotStep
		for cur := start; cur+span <= w.End; cur += SlotStep {
			if _, ok := seen[cur]; ok {
				continue
			}
			seen[cur] = struct{}{}
			candidates = append(candidates, cur)
		}
	}
	sort.Ints(candidates)
	return candidates
}

// MinutesToLabel formats a minute-of-day offset as a wall-clock label.
func MinutesToLabel(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// LabelToMinutes parses a "15:04" wall-clock label into a minute-of-day
// offset.
func LabelToMinutes(label string) (int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(label, "%d:%d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("invalid time label %q", label)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time label %q", label)
	}
	return hours*60 + minutes, nil
}
