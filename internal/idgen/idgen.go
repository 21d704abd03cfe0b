// Package idgen issues time-ordered submission identifiers.
package idgen

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sony/sonyflake"
)

// epoch is the fixed sonyflake start time; ids stay comparable across restarts.
var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Generator produces unique identifiers.
type Generator interface {
	NextID() (string, error)
}

type flakeGenerator struct {
	sf *sonyflake.Sonyflake
}

// NewGenerator builds a sonyflake-backed generator for the given machine id.
func NewGenerator(machineID uint16) (Generator, error) {
	sf := sonyflake.NewSonyflake(sonyflake.Settings{
		StartTime: epoch,
		MachineID: func() (uint16, error) {
			return machineID, nil
		},
	})
	if sf == nil {
		return nil, errors.New("idgen: sonyflake initialisation failed")
	}
	return &flakeGenerator{sf: sf}, nil
}

// NextID returns the next id as a decimal string.
func (g *flakeGenerator) NextID() (string, error) {
	id, err := g.sf.NextID()
	if err != nil {
		return "", fmt.Errorf("next id: %w", err)
	}
	return strconv.FormatUint(id, 10), nil
}
