// Package line defines the types produced by the hyperstreamline tracer.
//
// # Types
//
//   - Point: position, sampled direction and per-point metadata
//   - Line: points in traversal order plus the termination reason of each direction
//   - Result: a Line and the index of the seed (within a batch) that produced it
//   - TerminationReason: why integration stopped in one direction
//
// A Line always holds at least its seed point. Points are ordered backward
// end first, then the seed, then the forward points:
//
//	for _, p := range res.Line.Forward() {
//	    fmt.Println(p.Position, p.Vector)
//	}
//	if res.Line.ForwardTermination == line.OutOfDomain {
//	    // the line left the field
//	}
package line
