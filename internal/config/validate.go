package config

import "fmt"

// ValidationError describes the first configuration check that failed.
type ValidationError struct {
	Code    string
	Message string
}

// Error implements error.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks that a round can be played with this configuration.
// It guarantees that the random ranges used for gap and pickup placement are
// non-empty, so the simulation never has to handle them per tick.
func (c FlightConfig) Validate() error {
	checks := []func() error{
		c.validateBoard,
		c.validatePhysics,
		c.validateObstacles,
		c.validatePlayer,
		c.validateShield,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (c FlightConfig) validateBoard() error {
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return ValidationError{
			Code:    "BOARD_SIZE",
			Message: fmt.Sprintf("board must be positive, got %dx%d", c.Board.Width, c.Board.Height),
		}
	}
	return nil
}

func (c FlightConfig) validatePhysics() error {
	if c.Physics.Gravity <= 0 {
		return ValidationError{Code: "GRAVITY", Message: fmt.Sprintf("gravity must be positive, got %v", c.Physics.Gravity)}
	}
	if c.Physics.Impulse >= 0 {
		return ValidationError{Code: "IMPULSE", Message: fmt.Sprintf("impulse must be negative (upward), got %v", c.Physics.Impulse)}
	}
	if c.Physics.ScrollSpeed <= 0 {
		return ValidationError{Code: "SCROLL_SPEED", Message: fmt.Sprintf("scroll speed must be positive, got %d", c.Physics.ScrollSpeed)}
	}
	if c.Physics.BackgroundSpeed < 0 {
		return ValidationError{Code: "BACKGROUND_SPEED", Message: fmt.Sprintf("background speed must not be negative, got %d", c.Physics.BackgroundSpeed)}
	}
	return nil
}

func (c FlightConfig) validateObstacles() error {
	o := c.Obstacles
	if o.Width <= 0 || o.Spacing <= 0 || o.GapHeight <= 0 || o.Margin < 0 {
		return ValidationError{
			Code:    "OBSTACLE_SIZE",
			Message: fmt.Sprintf("obstacle width, spacing and gap must be positive and margin non-negative, got %+v", o),
		}
	}
	if lo, hi := c.GapTopRange(); hi < lo {
		return ValidationError{
			Code: "GAP_RANGE",
			Message: fmt.Sprintf("gap height %d plus margins 2x%d exceeds board height %d",
				o.GapHeight, o.Margin, c.Board.Height),
		}
	}
	return nil
}

func (c FlightConfig) validatePlayer() error {
	p := c.Player
	if p.Width <= 0 || p.Height <= 0 {
		return ValidationError{Code: "PLAYER_SIZE", Message: fmt.Sprintf("player hitbox must be positive, got %dx%d", p.Width, p.Height)}
	}
	if p.X < 0 || p.X+p.Width > c.Board.Width {
		return ValidationError{Code: "PLAYER_X", Message: fmt.Sprintf("player column %d does not fit board width %d", p.X, c.Board.Width)}
	}
	if p.Height >= c.Board.Height {
		return ValidationError{Code: "PLAYER_SIZE", Message: fmt.Sprintf("player height %d must be below board height %d", p.Height, c.Board.Height)}
	}
	return nil
}

func (c FlightConfig) validateShield() error {
	s := c.Shield
	if s.Size <= 0 || s.SpawnOffset < 0 {
		return ValidationError{Code: "SHIELD_SIZE", Message: fmt.Sprintf("shield size must be positive and offset non-negative, got %+v", s)}
	}
	if s.Duration <= 0 {
		return ValidationError{Code: "SHIELD_DURATION", Message: fmt.Sprintf("shield duration must be positive, got %s", s.Duration)}
	}
	if s.ScoreInterval <= 0 {
		return ValidationError{Code: "SHIELD_INTERVAL", Message: fmt.Sprintf("shield score interval must be positive, got %d", s.ScoreInterval)}
	}
	if lo, hi := c.ShieldYRange(); lo < 0 || hi < lo {
		return ValidationError{Code: "SHIELD_RANGE", Message: fmt.Sprintf("shield spawn range [%d, %d] is empty or off-board", lo, hi)}
	}
	return nil
}
