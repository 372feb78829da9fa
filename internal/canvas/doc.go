// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

/*
Package canvas implements the interactive side of the interest graph: the
viewport transform, pointer interaction for nodes and background, and the
per-node visual style.

# Viewport

A Viewport owns the pan offset and the uniform scale. All position math is a
pure function of the current Transform:

	world = (screen - offset) / scale
	screen = world*scale + offset

ZoomAt keeps the world point under the cursor fixed while the scale changes.
The scale is always clamped to [Config.MinScale, Config.MaxScale].

# Inertia

After a pan is released with enough speed, the viewport keeps moving with
a velocity that decays by Config.Friction each frame until it falls below
Config.MinSpeed. Frames are driven by a Scheduler so tests can step them by
hand. Only one inertia task exists per viewport, and any new pan or node drag
cancels it. A generation counter guarantees that a frame belonging to a
cancelled task never moves the viewport.

# Interaction

Interaction routes pointer events either to a node drag or to viewport
panning. A node press that moves less than the drag threshold is a click;
anything further is a drag and never produces a click.

# Visuals

Node colors come from an eight-slot palette indexed by HashColorIndex, so a
node's color depends only on its label. VisualFor renders a palette slot for
the Dark or Light theme.
*/
package canvas
