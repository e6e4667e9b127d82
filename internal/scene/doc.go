// Package scene holds the retained 2-D scene graph that hosts draw.
//
// The vocabulary has two shapes:
//
//   - [Circle]: center, radius and fill color (atoms and photon markers)
//   - [Line]: two endpoints, stroke color and stroke width (bond lines)
//
// Shapes are added as pointers and may be mutated in place by their owner
// between frames. Hosts walk the scene in insertion order through a
// [Painter], so later shapes are drawn on top of earlier ones.
package scene
