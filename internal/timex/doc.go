// Package timex is the single translation boundary between integer Unix
// timestamps found in wire JSON and time.Time values used by the rest of the
// program.
//
// Two resolutions are in use and every wire field declares which one it
// carries:
//
//   - ticks: 100-nanosecond intervals since 1970-01-01T00:00:00Z
//     (order timestamps, token expiry fields), see TickTime;
//   - seconds: whole seconds since the same epoch (session identifier
//     suffix), see ToSeconds.
//
// All decoded values are in UTC. Encoding a time that does not fit into an
// int64 tick count fails with ErrOutOfRange instead of wrapping.
package timex
