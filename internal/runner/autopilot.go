package runner

// Pilot decides jumps for unattended sessions.
type Pilot interface {
	ShouldJump(s *Session) bool
}

// Autopilot jumps when a ground hazard is about to reach the player.
// Flying hazards and beams clear a grounded player, so it ignores them.
type Autopilot struct {
	// Lookahead is how many ticks of travel ahead to react. Zero means 8.
	Lookahead float64
}

// ShouldJump implements Pilot.
func (a Autopilot) ShouldJump(s *Session) bool {
	if s == nil || !s.Player.Grounded {
		return false
	}

	look := a.Lookahead
	if look <= 0 {
		look = 8
	}
	reach := s.Speed * look
	front := s.Player.X + s.Player.Width

	for _, o := range s.Obstacles {
		if o.Kind != KindGround {
			continue
		}
		gap := o.X - front
		if gap >= 0 && gap <= reach {
			return true
		}
	}
	return false
}
