// Package timeline estimates how the cumulative size of a set of files evolved
// over time from their creation and modification timestamps.
//
// Each file is modelled as growing linearly from zero bytes at its creation
// time to its final size at its modification time. Files whose growth spans
// overlap contribute to the total simultaneously. A file with no growth span
// appears as an instantaneous jump, expressed as two samples one representable
// instant apart so that the series stays a function of time.
package timeline
