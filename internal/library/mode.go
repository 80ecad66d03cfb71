// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import "fmt"

// Mode selects the discovery defaults the CLI applies: casual favors broad
// browsing, academic favors full-text availability and recent material.
type Mode string

const (
	ModeCasual   Mode = "casual"
	ModeAcademic Mode = "academic"
)

// PrefMode is the prefs key holding the persisted mode.
const PrefMode = "mode"

// ParseMode validates a user-supplied mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCasual, ModeAcademic:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unsupported mode %q: use casual or academic", s)
}
