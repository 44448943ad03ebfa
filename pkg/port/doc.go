// Package port models an 8-bit I/O port register.
//
// A Register is a plain byte value. The bit helpers return the updated
// register rather than mutating in place so a sequence of operations reads
// like the register transfer it simulates:
//
//	r := port.Register(0)
//	r = r.Set(2)    // 0x04
//	r = r.Toggle(3) // 0x0C
//	r = r.Clear(2)  // 0x08
//
// Bit indices outside 0..7 are ignored.
package port
