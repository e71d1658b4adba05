// Package render owns the live view: one renderer instance per genome load,
// bound to exactly one container, driving the scene, the pointer/zoom
// interaction state, and the export hooks.
package render

import "github.com/jjovelc/CheckleyS-ButterA-EcoliGen/internal/scene"

// Container is the host surface a renderer draws into. The host passes an
// explicit container at construction; the renderer fully clears it before
// every render pass, so content never accumulates across reloads.
type Container interface {
	// SetScene replaces the container's content with a new scene.
	SetScene(s *scene.Scene)
	// Clear removes all content and event bindings.
	Clear()
}

// MemoryContainer is an in-process container for headless use and tests.
type MemoryContainer struct {
	scene *scene.Scene
}

// NewMemoryContainer creates an empty in-process container.
func NewMemoryContainer() *MemoryContainer {
	return &MemoryContainer{}
}

// SetScene implements Container.
func (c *MemoryContainer) SetScene(s *scene.Scene) {
	c.scene = s
}

// Clear implements Container.
func (c *MemoryContainer) Clear() {
	c.scene = nil
}

// Scene returns the currently mounted scene, nil when cleared.
func (c *MemoryContainer) Scene() *scene.Scene {
	return c.scene
}
