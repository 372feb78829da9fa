// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package config

import (
	"fmt"

	"github.com/tomtom215/horizon/internal/graph"
	"github.com/tomtom215/horizon/internal/validation"
)

// Validate checks field rules and the cross-field constraints the tags
// cannot express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if err := c.validateCanvas(); err != nil {
		return err
	}
	if err := c.validateLayout(); err != nil {
		return err
	}
	return c.validateEdges()
}

func (c *Config) validateCanvas() error {
	cv := c.Canvas
	if cv.MinScale <= 0 {
		return fmt.Errorf("canvas.min_scale must be positive, got %v", cv.MinScale)
	}
	if cv.MinScale >= cv.MaxScale {
		return fmt.Errorf("canvas.min_scale (%v) must be below canvas.max_scale (%v)", cv.MinScale, cv.MaxScale)
	}
	if cv.Friction <= 0 || cv.Friction >= 1 {
		return fmt.Errorf("canvas.friction must be in (0,1), got %v", cv.Friction)
	}
	return nil
}

func (c *Config) validateLayout() error {
	if c.Layout.MinRadius > c.Layout.MaxRadius {
		return fmt.Errorf("layout.min_radius (%v) exceeds layout.max_radius (%v)", c.Layout.MinRadius, c.Layout.MaxRadius)
	}
	return nil
}

func (c *Config) validateEdges() error {
	n := c.Edges.MaxEdgesPerNode
	if n < graph.MinPathEdgesPerNode || n > graph.MaxEdgesPerNode {
		return fmt.Errorf("edges.max_edges_per_node must be %d..%d, got %d", graph.MinPathEdgesPerNode, graph.MaxEdgesPerNode, n)
	}
	return nil
}
