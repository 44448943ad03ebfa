// Package eeprom simulates a single non-volatile EEPROM cell backed by a file.
//
// The cell holds one signed 32-bit integer stored as exactly four bytes in
// the host's native byte order, with no header or checksum. Every write
// truncates the file; every read opens it afresh. Failures are reported as
// *IOError values naming the failed operation, so callers can tell a missing
// file apart from a short read.
//
// The store assumes a single process per file. The mutex only makes one
// Store value safe to share between goroutines; it does not coordinate
// separate processes.
package eeprom
