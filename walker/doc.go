// Package walker moves objects along curves at a controlled speed.
//
// A [Walker] tracks its progress along a [Curve] as a parameter in [0, 1].
// Each call to [Walker.Update] converts the configured speed into a distance
// along the curve, hands the new position to a [Sink], optionally orients the
// object along the curve's tangent, and applies the [TravelMode] when an end
// of the curve is reached:
//
//   - [Once] stops at the end.
//   - [Loop] continues from the opposite end.
//   - [PingPong] bounces back, mirroring any overshoot.
//
// Listeners registered with [Walker.OnPathCompleted] are notified once per
// arrival at an end. Staying at that end doesn't notify them again; moving
// away from it, seeking with [Walker.SetProgress], or replacing the curve
// re-arms the notification.
//
// Walkers don't schedule themselves. The host calls Update once per frame
// with the time elapsed since the previous frame:
//
//	s, _ := spline.NewFromPoints(points, false)
//	w := walker.New(walker.DefaultConfig(), walker.WithCurve(s), walker.WithSink(obj))
//	w.OnPathCompleted(func() { fmt.Println("arrived") })
//	for range ticker.C {
//		w.Update(dt)
//	}
//
// Orientations are [r3.Rotation] values. [LookRotation] points the local +Z
// axis along the direction of travel, keeping +Y close to the configured up
// vector.
//
// [r3.Rotation]: https://pkg.go.dev/gonum.org/v1/gonum/spatial/r3#Rotation
package walker
