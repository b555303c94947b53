// Package sample provides the generic append-only container used to
// store a device's measurement history.
//
// # Key Type
//
//   - Series[T]: an ordered, append-only sequence with O(1) append,
//     lazy insertion-order traversal, and deep copying.
//
// # Usage
//
//	var s sample.Series[float64]
//	s.Append(25.5)
//	s.Append(20.0)
//
//	for v := range s.All() {
//	    fmt.Println(v)
//	}
//
//	cpy := s.Clone() // fully independent copy
//
// # Ownership
//
// A Series is exclusively owned by the device record that holds it.
// Values are immutable once appended; there is no remove operation.
// Traversal via All is read-only with respect to the container.
package sample
