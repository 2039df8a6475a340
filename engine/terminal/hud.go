package terminal

import (
	"fmt"
	"math"
	"strings"

	"github.com/Carmen-Shannon/skyfolio/engine/event"
	"github.com/Carmen-Shannon/skyfolio/engine/island"
)

const help = "W/A/S/D or arrows fly  space up  c down  1/2/3 navigate  k skip  x cancel  q quit"

// hudLines lays out the HUD text for one refresh.
func hudLines(snap island.Snapshot, logs []string) []string {
	f := snap.Frame
	mode := "manual"
	if f.Mode != nil {
		mode = f.Mode.String()
	}

	lines := []string{
		"skyfolio",
		help,
		"",
		fmt.Sprintf("tick %-8d mode %-15s step %s", snap.Tick, mode, snap.Step),
		fmt.Sprintf("pos  %7.2f %7.2f %7.2f   yaw %6.1f°  tilt %5.1f°",
			f.Position[0], f.Position[1], f.Position[2], degrees(f.Yaw), degrees(f.Tilt)),
		fmt.Sprintf("vel  %7.2f %7.2f %7.2f   fade %.2f", f.Velocity[0], f.Velocity[1], f.Velocity[2], f.Fade),
		fmt.Sprintf("markers %d/%d %s %3.0f%%", len(snap.Collected), snap.Total, progressBar(snap.Progress, 20), snap.Progress),
	}
	if snap.CanSkip {
		lines = append(lines, "flying: press k to skip to the destination")
	}

	var zones []string
	for _, z := range snap.Zones {
		mark := " "
		switch {
		case z.Inside:
			mark = "*"
		case z.Visited:
			mark = "+"
		}
		zones = append(zones, fmt.Sprintf("[%s] %s", mark, z.Name))
	}
	if len(zones) > 0 {
		lines = append(lines, "zones "+strings.Join(zones, "  "))
	}

	lines = append(lines, "", "events")
	for _, l := range logs {
		lines = append(lines, "  "+l)
	}
	return lines
}

func degrees(rad float32) float64 {
	return float64(rad) * 180 / math.Pi
}

func progressBar(pct float32, width int) string {
	filled := int(float32(width) * pct / 100)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// describe renders a bus event as one log line.
func describe(e event.Event) string {
	switch p := e.Payload.(type) {
	case event.ModePayload:
		return fmt.Sprintf("%d %s %s", e.Tick, e.Type, p.Mode)
	case event.DestinationPayload:
		return fmt.Sprintf("%d %s %s", e.Tick, e.Type, p.Destination)
	case event.WaypointPayload:
		return fmt.Sprintf("%d %s #%d", e.Tick, e.Type, p.Index)
	case event.CollectedPayload:
		return fmt.Sprintf("%d %s marker %d (%d/%d)", e.Tick, e.Type, p.ID, p.Count, p.Total)
	case event.ZonePayload:
		return fmt.Sprintf("%d %s %s", e.Tick, e.Type, p.Name)
	}
	return fmt.Sprintf("%d %s", e.Tick, e.Type)
}
