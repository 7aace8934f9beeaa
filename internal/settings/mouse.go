package settings

import (
	"context"
	"fmt"
	"math"

	"github.com/1broseidon/hyprconf/internal/overrides"
)

// Mouse holds the pointer options hyprconf manages.
type Mouse struct {
	Sensitivity  float64 `json:"sensitivity"`
	ForceNoAccel bool    `json:"force_no_accel"`
}

// Sensitivity bounds accepted by Hyprland.
const (
	MinSensitivity = -1.0
	MaxSensitivity = 1.0
)

// MouseSettings reads the current values, defaulting to 0 and false for
// anything hyprctl cannot report.
func (s *Service) MouseSettings(ctx context.Context) Mouse {
	var m Mouse
	if v, err := s.hypr.Sensitivity(ctx); err != nil {
		s.logger.Warn("failed to read sensitivity", "error", err)
	} else {
		m.Sensitivity = v
	}
	if v, err := s.hypr.ForceNoAccel(ctx); err != nil {
		s.logger.Warn("failed to read force_no_accel", "error", err)
	} else {
		m.ForceNoAccel = v
	}
	return m
}

// SetMouse writes both pointer lines.
func (s *Service) SetMouse(m Mouse) error {
	if math.IsNaN(m.Sensitivity) || m.Sensitivity < MinSensitivity || m.Sensitivity > MaxSensitivity {
		return fmt.Errorf("sensitivity %v out of range [%v, %v]", m.Sensitivity, MinSensitivity, MaxSensitivity)
	}
	if err := s.upsertAll(
		overrides.SensitivityLine(m.Sensitivity),
		overrides.ForceNoAccelLine(m.ForceNoAccel),
	); err != nil {
		return err
	}
	s.logger.Info("mouse settings written", "sensitivity", m.Sensitivity, "force_no_accel", m.ForceNoAccel)
	return nil
}

// SensitivityToPercent maps -1..1 onto a 0..100 slider.
func SensitivityToPercent(sensitivity float64) float64 {
	return (sensitivity + 1) * 50
}

// PercentToSensitivity maps a 0..100 slider back onto -1..1, rounded to two
// decimals so the written line stays short.
func PercentToSensitivity(percent float64) float64 {
	return math.Round((percent/50-1)*100) / 100
}
