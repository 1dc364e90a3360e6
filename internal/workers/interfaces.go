// Package workers runs the application's background workers, currently the
// mail dispatcher, behind a single aggregate so main can start and stop
// them together.
package workers

// Worker is a background job with a blocking Run method. Implementations
// either block for the duration of their work or spawn goroutines and wait
// on them internally.
type Worker interface {
	Run()
}
