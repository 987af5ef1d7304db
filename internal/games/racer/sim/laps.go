package sim

import "math"

// LapTracker derives the lap index from distance and records lap times.
type LapTracker struct {
	lapLength float64
	lapCount  int
	lap       int
	lapStart  float64
	records   []LapRecord
	best      float64
	last      float64
}

// NewLapTracker starts tracking at lap 1 with the lap clock at zero.
func NewLapTracker(lapLength float64, lapCount int) *LapTracker {
	return &LapTracker{
		lapLength: lapLength,
		lapCount:  lapCount,
		lap:       1,
	}
}

// LapIndex returns the lap for a distance: floor(d/lapLength)+1, capped at lapCount.
func (lt *LapTracker) LapIndex(distance float64) int {
	idx := int(math.Floor(distance/lt.lapLength)) + 1
	if idx > lt.lapCount {
		idx = lt.lapCount
	}
	if idx < 1 {
		idx = 1
	}
	return idx
}

// Progress returns the fraction of the current lap completed, in [0,1).
func (lt *LapTracker) Progress(distance float64) float64 {
	p := math.Mod(distance, lt.lapLength) / lt.lapLength
	return clampF(p, 0, 1)
}

// Update evaluates the distance at race clock now and returns the records
// appended by this call. Crossing several lap lines at once records each lap.
func (lt *LapTracker) Update(distance, now float64) []LapRecord {
	idx := lt.LapIndex(distance)
	var added []LapRecord
	for lt.lap < idx {
		added = append(added, lt.record(now))
		lt.lap++
	}
	return added
}

// Finish records the final lap when the car crosses the finish line.
// It does nothing once every lap has been recorded.
func (lt *LapTracker) Finish(now float64) (LapRecord, bool) {
	if len(lt.records) >= lt.lapCount {
		return LapRecord{}, false
	}
	return lt.record(now), true
}

func (lt *LapTracker) record(now float64) LapRecord {
	rec := LapRecord{Lap: len(lt.records) + 1, Time: now - lt.lapStart}
	if len(lt.records) == 0 || rec.Time < lt.best {
		lt.best = rec.Time
	}
	lt.last = rec.Time
	lt.records = append(lt.records, rec)
	lt.lapStart = now
	return rec
}

// PersonalBest reports whether rec beat every lap recorded before it.
// The first lap is always a personal best.
func (lt *LapTracker) PersonalBest(rec LapRecord) bool {
	if rec.Lap < 1 || rec.Lap > len(lt.records) {
		return false
	}
	for _, prior := range lt.records[:rec.Lap-1] {
		if prior.Time <= rec.Time {
			return false
		}
	}
	return true
}

// Lap returns the current lap index.
func (lt *LapTracker) Lap() int { return lt.lap }

// LapStart returns the race clock at which the current lap began.
func (lt *LapTracker) LapStart() float64 { return lt.lapStart }

// BestLap returns the best lap time, 0 before the first record.
func (lt *LapTracker) BestLap() float64 { return lt.best }

// LastLap returns the most recent lap time, 0 before the first record.
func (lt *LapTracker) LastLap() float64 { return lt.last }

// Records returns a copy of the lap records.
func (lt *LapTracker) Records() []LapRecord {
	out := make([]LapRecord, len(lt.records))
	copy(out, lt.records)
	return out
}
