// Package display tracks the physical monitors and decides which one shows
// the audience output and which one hosts the presenter console.
//
// # Overview
//
// A [Topology] combines three collaborators:
//
//   - An [Enumerator] lists the connected displays and reports hotplug
//     events. [X11Enumerator] asks the X server through RandR;
//     [StaticEnumerator] is an in-memory list used for tests and for
//     machines without a display server.
//   - Two [Window] values, one per surface, that can be moved, resized and
//     switched between fullscreen and normal. [VirtualWindow] records
//     placements in memory.
//   - The current [Assignment] of audience and console to displays.
//
// # Stable Identity
//
// Display indices are positional: unplugging the second of three monitors
// renumbers the third. The topology therefore remembers each surface by
// [Identity] (output name plus geometry) and resolves it to an index only
// when asked. After a refresh an identity that no longer exists is
// re-resolved from the window's current position.
//
// # Collision Handling
//
// With two or more displays, the audience and console never share one.
// [Topology.AssignAudience] moves the console out of the way first: to the
// display the audience is leaving, or else to the first other display,
// where the console is re-centered at its default size.
// [Topology.AssignConsole] does not check for collisions; moving the
// console is always a deliberate user choice.
//
//	topo := display.NewTopology(enum, audienceWin, consoleWin, display.Options{})
//	if err := topo.Refresh(ctx); err != nil {
//		return err
//	}
//	topo.Place(ctx, display.Preferences{})
//	topo.AssignAudience(ctx, 2)
//
// # Controls
//
// [VisibilityFor] tells the UI which control fits the display count: none
// for a single monitor, a swap button for two, and the drag map from the
// [selector] package for three or more.
//
// [selector]: github.com/matzehuels/podium/pkg/display/selector
package display
