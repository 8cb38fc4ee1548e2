// Package rider provides the Rider aggregate (availability and capacity
// slots) and the rider Location value kept by the location tracker.
//
// Key business rules:
//   - A rider holds at most capacity orders at once
//   - Only online riders take new orders; going offline keeps held orders
//   - A location overwrites the stored one only when strictly newer
package rider
