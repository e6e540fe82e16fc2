/*
Package workflow holds the dashboard's state machine.

A Controller owns one State and changes it only through two flows:

	generate: idle -> loading -> success (results replaced)
	                          -> error   (results empty, status Error)
	probe:    any status -> Connected | Disconnected

Each flow runs on its own goroutine and returns a Task. The flows write disjoint
fields (Results/IsLoading versus APIStatus), so they may overlap freely. Two
overlapping generate calls are not serialized: whichever reply arrives last
determines Results. Presentation layers are expected to block the action while
IsLoading is set.

Readers use Snapshot, Stats and UniqueTypes; the returned values never alias the
controller's state.
*/
package workflow
