// Package element defines the drawable primitives that make up a scene.
//
// Elements arrive as loosely shaped JSON from clients. They are decoded at this
// boundary into a closed set of kinds (rectangle, diamond, ellipse, arrow, line,
// freedraw, text, image, frame) that share a common Header. Anything outside that
// set is rejected with ErrInvalidElement, so downstream code (reconciliation,
// persistence) only ever deals with validated elements and their headers.
//
// A Scene is an ordered slice of elements; order is the rendering stack order.
package element
