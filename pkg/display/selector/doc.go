// Package selector implements the miniature display map used to move the
// audience and console surfaces between three or more monitors.
//
// The widget scales the union of all display geometries into its own
// bounds and draws an "A" marker on the audience display and a "C" marker
// on the console display. Dragging a marker onto another display and
// releasing it produces a [Change]; the owner applies it to the
// [display.Topology] and feeds the resulting assignment back through
// [Widget.SetTopology].
//
// The drag state is either idle or dragging one target with a preview
// index, so a half-started drag cannot exist.
//
// [display.Topology]: github.com/matzehuels/podium/pkg/display#Topology
package selector
