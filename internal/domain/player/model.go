package player

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

var ErrDuplicateJersey = errors.New("jersey number already taken")

// Position is a fielding position abbreviation.
type Position string

const (
	PositionPitcher       Position = "P"
	PositionCatcher       Position = "C"
	PositionFirstBase     Position = "1B"
	PositionSecondBase    Position = "2B"
	PositionThirdBase     Position = "3B"
	PositionShortstop     Position = "SS"
	PositionLeftField     Position = "LF"
	PositionCenterField   Position = "CF"
	PositionRightField    Position = "RF"
	PositionDesignatedHit Position = "DH"
)

// Positions lists every position in scorebook order.
var Positions = []Position{
	PositionPitcher,
	PositionCatcher,
	PositionFirstBase,
	PositionSecondBase,
	PositionThirdBase,
	PositionShortstop,
	PositionLeftField,
	PositionCenterField,
	PositionRightField,
	PositionDesignatedHit,
}

func ParsePosition(v string) (Position, bool) {
	candidate := Position(strings.ToUpper(strings.TrimSpace(v)))
	for _, p := range Positions {
		if p == candidate {
			return p, true
		}
	}
	return "", false
}

// Player is a member of the team roster.
type Player struct {
	ID           int64
	FirstName    string
	LastName     string
	JerseyNumber int
	Position     Position
	Bio          string
	HeightInches *int
	WeightLbs    *int
	BirthDate    *time.Time
	Active       bool
	PhotoURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// DisplayName prefixes the full name with the jersey number, e.g. "7. Ana Ruiz".
func (p Player) DisplayName() string {
	return strconv.Itoa(p.JerseyNumber) + ". " + p.FullName()
}

func (p Player) Slug() string {
	return slug.Make(strconv.Itoa(p.JerseyNumber) + " " + p.FullName())
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" {
		return fmt.Errorf("first name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("last name is required")
	}
	if p.JerseyNumber < 0 {
		return fmt.Errorf("jersey number must be >= 0")
	}
	if _, ok := ParsePosition(string(p.Position)); !ok {
		return fmt.Errorf("invalid player position: %q", p.Position)
	}
	if p.HeightInches != nil && *p.HeightInches <= 0 {
		return fmt.Errorf("height must be greater than zero")
	}
	if p.WeightLbs != nil && *p.WeightLbs <= 0 {
		return fmt.Errorf("weight must be greater than zero")
	}

	return nil
}
