package sim

import "errors"

// Setup validation errors. New wraps them with detail; test with errors.Is.
var (
	ErrInvalidLapLength = errors.New("sim: lap length must be a positive finite number")
	ErrNoLaps           = errors.New("sim: lap count must be at least 1")
	ErrNoOpponents      = errors.New("sim: at least one opponent is required")
	ErrInvalidWeather   = errors.New("sim: invalid weather")
	ErrInvalidPitZone   = errors.New("sim: pit zone must satisfy 0 <= start < end <= 1")
	ErrInvalidStats     = errors.New("sim: invalid vehicle stats")
	ErrInvalidTuning    = errors.New("sim: invalid tuning")
	ErrNotInitialized   = errors.New("sim: simulation not initialized")
)
