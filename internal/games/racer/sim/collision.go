package sim

import "math"

// Detect tests the player against every opponent and reports the first one
// inside both the longitudinal and the lateral gate. Opponents are checked in
// slice order; simultaneous contacts with several opponents are not modelled.
//
// Direction is classified longitudinally first (front when the opponent is
// ahead, rear otherwise) and then overridden by the lateral side whenever the
// lateral offset is non-zero.
func Detect(t Tuning, playerDistance, playerLateral float64, opponents []VehicleState) (CollisionEvent, bool) {
	if t.DistanceThreshold <= 0 {
		return CollisionEvent{}, false
	}
	for _, op := range opponents {
		dDist := op.Distance - playerDistance
		if math.Abs(dDist) > t.DistanceThreshold {
			continue
		}
		dLat := op.Lateral - playerLateral
		if math.Abs(dLat) > t.WidthThreshold {
			continue
		}

		dir := DirectionRear
		if dDist > 0 {
			dir = DirectionFront
		}
		if dLat < 0 {
			dir = DirectionLeft
		} else if dLat > 0 {
			dir = DirectionRight
		}

		return CollisionEvent{
			OpponentID: op.ID,
			Severity:   1 - math.Abs(dDist)/t.DistanceThreshold,
			Direction:  dir,
		}, true
	}
	return CollisionEvent{}, false
}

// Resolve applies a newly detected collision to the player and the opponent hit.
func Resolve(t Tuning, ev CollisionEvent, player *VehicleState, op *VehicleState) {
	player.CollisionCooldown = t.PlayerCooldown
	player.Colliding = true
	player.HandlingPenalty = clampF(player.HandlingPenalty+ev.Severity*t.PenaltyPerSeverity, 0, 1)
	player.Speed = math.Max(0, player.Speed*(1-t.SpeedLossPerSeverity*ev.Severity))

	push := 1.0
	if op.Lateral < player.Lateral {
		push = -1.0
	}
	op.Lateral = clampF(op.Lateral+push*ev.Severity*t.OpponentPush, t.OpponentLateralMin, t.OpponentLateralMax)
	op.CollisionCooldown = t.OpponentCooldown
	op.Colliding = true
}

// pushDirection returns the sign of the lateral push the player receives:
// away from the side that was hit.
func pushDirection(d Direction) float64 {
	switch d {
	case DirectionLeft:
		return 1
	case DirectionRight:
		return -1
	default:
		return 0
	}
}
